package routes

import (
	"net/http"

	"sangamtransport/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handle(pattern string, h http.HandlerFunc) {
	http.Handle(pattern, withCORS(http.HandlerFunc(handlers.RecoverWrapper(h))))
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	searchHandler *handlers.SearchHandler,
	selectionHandler *handlers.SelectionHandler,
	billHandler *handlers.BillHandler,
	challanHandler *handlers.ChallanHandler,
	rateHandler *handlers.RateHandler,
	exportHandler *handlers.ExportHandler,
	biltyHandler *handlers.BiltyHandler,
	lookupHandler *handlers.LookupHandler,
) {
	// User routes
	handle("/signup", userHandler.Signup)
	handle("/login", userHandler.Login)

	// Search and godown
	handle("/bilty/search", searchHandler.SearchBilty)
	handle("/godown", searchHandler.GodownStock)

	// Station bilty entry and consignment images
	handle("/bilty/station", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			biltyHandler.CreateStationBilty(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/bilty/image", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			biltyHandler.UploadImage(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Selection workbench
	handle("/selection", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			selectionHandler.GetSelection(w, r)
		case http.MethodPost:
			selectionHandler.UpdateSelection(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Monthly bills
	handle("/bill/generate", billHandler.GenerateBill)
	handle("/bill", billHandler.ListBills)

	// Challan routes
	handle("/challan", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			challanHandler.CreateChallan(w, r)
		case http.MethodGet:
			challanHandler.ListChallans(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/challan/dispatch", challanHandler.DispatchChallan)
	handle("/challan/pdf", challanHandler.ChallanPDF)

	// Get challan by ID
	handle("/challan/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/challan/"):]
		if id != "" {
			challanHandler.GetChallanByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	// Transit details
	handle("/transit", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			challanHandler.AddTransitDetail(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/transit/flags", challanHandler.UpdateTransitFlags)

	// Kaat rates
	handle("/rates", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rateHandler.ListRates(w, r)
		case http.MethodPost:
			rateHandler.CreateRate(w, r)
		case http.MethodPut:
			rateHandler.UpdateRate(w, r)
		case http.MethodDelete:
			rateHandler.DeleteRate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/rates/quote", rateHandler.QuoteRate)

	// Exports
	handle("/export/csv", exportHandler.ExportCSV)
	handle("/export/clipboard", exportHandler.ExportClipboard)

	// Reference lists
	handle("/lookup/cities", lookupHandler.Cities)
	handle("/lookup/branches", lookupHandler.Branches)
	handle("/lookup/transports", lookupHandler.Transports)
	handle("/lookup/staff", lookupHandler.Staff)
	handle("/lookup/trucks", lookupHandler.Trucks)
}
