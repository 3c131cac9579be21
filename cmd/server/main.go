package main

import (
	"fmt"
	"net/http"

	"sangamtransport/cache"
	"sangamtransport/config"
	"sangamtransport/db"
	"sangamtransport/db/mongo"
	"sangamtransport/db/postgres"
	"sangamtransport/handlers"
	"sangamtransport/repository"
	"sangamtransport/routes"
	"sangamtransport/search"
	"sangamtransport/selection"
)

func main() {
	// Load config from .env or environment
	cfg := config.LoadConfig()

	var biltyRepo repository.BiltyRepository
	var userRepo repository.UserRepository
	var challanRepo repository.ChallanRepository
	var rateRepo repository.RateRepository
	var billRepo repository.BillRepository
	var lookupRepo repository.LookupRepository

	switch cfg.DBType {
	case "postgres":
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		biltyRepo = repository.NewPostgresBiltyRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		challanRepo = repository.NewPostgresChallanRepo(pg.Conn)
		rateRepo = repository.NewPostgresRateRepo(pg.Conn)
		billRepo = repository.NewPostgresBillRepo(pg.Conn)
		lookupRepo = repository.NewPostgresLookupRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		biltyRepo = repository.NewMongoBiltyRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)
		challanRepo = repository.NewMongoChallanRepo(mg.Client)
		rateRepo = repository.NewMongoRateRepo(mg.Client)
		billRepo = repository.NewMongoBillRepo(mg.Client)
		lookupRepo = repository.NewMongoLookupRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// Shared services
	searchService := search.NewService(biltyRepo, lookupRepo, challanRepo)
	selectionStore, err := selection.NewStore(cfg.SelectionDir)
	if err != nil {
		panic(err)
	}
	challanCache := cache.New(handlers.ChallanCacheTTL)

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	searchHandler := &handlers.SearchHandler{Service: searchService}
	selectionHandler := &handlers.SelectionHandler{Store: selectionStore, Service: searchService}
	billHandler := &handlers.BillHandler{
		Bills:   billRepo,
		Lookup:  lookupRepo,
		Store:   selectionStore,
		Service: searchService,
	}
	challanHandler := &handlers.ChallanHandler{
		Repo:    challanRepo,
		Lookup:  lookupRepo,
		Service: searchService,
		Cache:   challanCache,
	}
	rateHandler := &handlers.RateHandler{Repo: rateRepo}
	exportHandler := &handlers.ExportHandler{
		Users:   userRepo,
		Store:   selectionStore,
		Service: searchService,
	}
	biltyHandler := &handlers.BiltyHandler{Repo: biltyRepo}
	lookupHandler := &handlers.LookupHandler{Repo: lookupRepo}

	routes.SetupRoutes(
		userHandler,
		searchHandler,
		selectionHandler,
		billHandler,
		challanHandler,
		rateHandler,
		exportHandler,
		biltyHandler,
		lookupHandler,
	)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
