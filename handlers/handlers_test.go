package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sangamtransport/models"
	"sangamtransport/search"
	"sangamtransport/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------ fakes ------------------------

type stubBiltyRepo struct {
	regular []*models.Bilty
	station []*models.StationBilty
}

func (f *stubBiltyRepo) SearchRegular(fil models.BiltySearchFilters, cityIDs []int64, limit int) ([]*models.Bilty, error) {
	return f.regular, nil
}
func (f *stubBiltyRepo) SearchStation(fil models.BiltySearchFilters, cityCodes []string, fallback string, limit int) ([]*models.StationBilty, error) {
	return f.station, nil
}
func (f *stubBiltyRepo) GetRegularByIDs(ids []int64) ([]*models.Bilty, error) {
	var out []*models.Bilty
	for _, b := range f.regular {
		for _, id := range ids {
			if b.ID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}
func (f *stubBiltyRepo) GetStationByIDs(ids []int64) ([]*models.StationBilty, error) {
	var out []*models.StationBilty
	for _, s := range f.station {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}
func (f *stubBiltyRepo) GetRegularByGRNos(grNos []int64) ([]*models.Bilty, error)        { return nil, nil }
func (f *stubBiltyRepo) GetStationByGRNos(grNos []int64) ([]*models.StationBilty, error) { return nil, nil }
func (f *stubBiltyRepo) RegularPendingAtBranch(branchID int64) ([]*models.Bilty, error) {
	return f.regular, nil
}
func (f *stubBiltyRepo) StationPendingAtStation(code string) ([]*models.StationBilty, error) {
	return f.station, nil
}
func (f *stubBiltyRepo) CreateStationBilty(s *models.StationBilty) error { return nil }
func (f *stubBiltyRepo) UpdateImageURL(t models.ConsignmentType, id int64, url string) error {
	return nil
}

type stubLookupRepo struct{}

func (stubLookupRepo) FindCitiesByName(name string) ([]*models.City, error) { return nil, nil }
func (stubLookupRepo) AllCities() ([]*models.City, error)                   { return nil, nil }
func (stubLookupRepo) AllBranches() ([]*models.Branch, error)               { return nil, nil }
func (stubLookupRepo) GetBranchByID(id int64) (*models.Branch, error)       { return nil, nil }
func (stubLookupRepo) AllTransports() ([]*models.Transport, error)          { return nil, nil }
func (stubLookupRepo) StaffByRole(role string) ([]*models.Staff, error)     { return nil, nil }
func (stubLookupRepo) AllTrucks() ([]*models.Truck, error)                  { return nil, nil }

type stubChallanRepo struct{}

func (stubChallanRepo) CreateChallan(c *models.Challan) error                      { return nil }
func (stubChallanRepo) ListChallans(limit, offset int) ([]*models.Challan, error)  { return nil, nil }
func (stubChallanRepo) GetChallanByID(id int64) (*models.Challan, error)           { return nil, nil }
func (stubChallanRepo) MarkDispatched(id int64, date time.Time) error              { return nil }
func (stubChallanRepo) AddTransitDetail(d *models.TransitDetail) error             { return nil }
func (stubChallanRepo) TransitByChallan(id int64) ([]models.TransitDetail, error)  { return nil, nil }
func (stubChallanRepo) UpdateTransitFlags(id int64, a, b, c *bool) error           { return nil }
func (stubChallanRepo) DispatchInfoByGR(grNos []int64) (map[int64]models.DispatchInfo, error) {
	return map[int64]models.DispatchInfo{}, nil
}

type stubUserRepo struct {
	users map[string]*models.AppUser
}

func (f *stubUserRepo) CreateUser(user *models.AppUser) error { return nil }
func (f *stubUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	return f.users[email], nil
}

func testService(b *stubBiltyRepo) *search.Service {
	return search.NewService(b, stubLookupRepo{}, stubChallanRepo{})
}

func sampleBilty(id int64) *models.Bilty {
	return &models.Bilty{
		ID: id, GRNo: 100 + id,
		BiltyDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Consignor: "A", Consignee: "B", PaymentMode: "paid", Total: 100,
	}
}

// ------------------------ selection handler ------------------------

func TestSelectionAddAndToggleRoundTrip(t *testing.T) {
	store, err := selection.NewStore(t.TempDir())
	require.NoError(t, err)
	h := &SelectionHandler{Store: store, Service: testService(&stubBiltyRepo{})}

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/selection", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		h.UpdateSelection(rec, req)
		return rec
	}

	rec := post(`{"user_id":1,"op":"add","keys":[{"type":"regular","id":5},{"type":"station","id":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Keys []models.ConsignmentKey `json:"keys"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Keys, 2)

	rec = post(`{"user_id":1,"op":"toggle","keys":[{"type":"regular","id":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Keys, 1)

	rec = post(`{"user_id":1,"op":"toggle","keys":[{"type":"regular","id":5},{"type":"station","id":9}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "toggle takes exactly one key")

	rec = post(`{"user_id":1,"op":"clear"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Keys)
}

func TestSelectionUnknownOpRejected(t *testing.T) {
	store, err := selection.NewStore(t.TempDir())
	require.NoError(t, err)
	h := &SelectionHandler{Store: store, Service: testService(&stubBiltyRepo{})}

	req := httptest.NewRequest(http.MethodPost, "/selection", bytes.NewBufferString(`{"user_id":1,"op":"merge"}`))
	rec := httptest.NewRecorder()
	h.UpdateSelection(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ------------------------ export handler ------------------------

func newExportHandler(t *testing.T, bilty *stubBiltyRepo) *ExportHandler {
	t.Helper()
	store, err := selection.NewStore(t.TempDir())
	require.NoError(t, err)
	return &ExportHandler{
		Users: &stubUserRepo{users: map[string]*models.AppUser{
			"admin@sangam.in": {ID: 1, Email: "admin@sangam.in", Role: "admin"},
			"clerk@sangam.in": {ID: 2, Email: "clerk@sangam.in", Role: "operator"},
		}},
		Store:   store,
		Service: testService(bilty),
	}
}

func TestExportCSVRejectsNonAdmin(t *testing.T) {
	h := newExportHandler(t, &stubBiltyRepo{})

	req := httptest.NewRequest(http.MethodGet, "/export/csv?email=clerk@sangam.in&user_id=2", nil)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "contact administrator")
}

func TestExportCSVForAdmin(t *testing.T) {
	bilty := &stubBiltyRepo{regular: []*models.Bilty{sampleBilty(5)}}
	h := newExportHandler(t, bilty)
	_, err := h.Store.Add(1, models.ConsignmentKey{Type: models.ConsignmentRegular, ID: 5})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/export/csv?email=admin@sangam.in&user_id=1", nil)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "GR No,"))
	assert.True(t, strings.HasPrefix(lines[1], "105,"))
}

func TestExportWithEmptySelectionFails(t *testing.T) {
	h := newExportHandler(t, &stubBiltyRepo{})

	req := httptest.NewRequest(http.MethodGet, "/export/clipboard?email=admin@sangam.in&user_id=1", nil)
	rec := httptest.NewRecorder()
	h.ExportClipboard(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ------------------------ bill handler ------------------------

type stubBillRepo struct {
	inserted []*models.MonthlyBill
}

func (f *stubBillRepo) InsertBill(b *models.MonthlyBill) error {
	b.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, b)
	return nil
}
func (f *stubBillRepo) ListBillsByUser(userID int64) ([]*models.MonthlyBill, error) {
	return f.inserted, nil
}

func newBillHandler(t *testing.T, bilty *stubBiltyRepo, bills *stubBillRepo) *BillHandler {
	t.Helper()
	store, err := selection.NewStore(t.TempDir())
	require.NoError(t, err)
	return &BillHandler{
		Bills:     bills,
		Lookup:    stubLookupRepo{},
		Store:     store,
		Service:   testService(bilty),
		SkipStore: true,
	}
}

func TestGenerateBillStreamsPDF(t *testing.T) {
	bilty := &stubBiltyRepo{regular: []*models.Bilty{sampleBilty(1), sampleBilty(2)}}
	h := newBillHandler(t, bilty, &stubBillRepo{})

	body := `{"user_id":1,"keys":[{"type":"regular","id":1},{"type":"regular","id":2}],"options":{"bill_type":"monthly","template":"portrait"},"save":false}`
	req := httptest.NewRequest(http.MethodPost, "/bill/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.GenerateBill(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateBillSaveInsertsRecord(t *testing.T) {
	bilty := &stubBiltyRepo{regular: []*models.Bilty{sampleBilty(1)}}
	bills := &stubBillRepo{}
	h := newBillHandler(t, bilty, bills)

	body := `{"user_id":1,"keys":[{"type":"regular","id":1}],"options":{"bill_type":"monthly"},"save":true}`
	req := httptest.NewRequest(http.MethodPost, "/bill/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.GenerateBill(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, bills.inserted, 1)
	saved := bills.inserted[0]
	assert.Equal(t, 1, saved.RowCount)
	assert.Equal(t, 100.0, saved.TotalAmount)
	assert.Equal(t, 100.0, saved.PaidAmount)
	assert.Equal(t, int64(1), saved.CreatedBy)
	assert.NotEmpty(t, saved.PDFURL)
}

func TestGenerateBillEmptySelectionFails(t *testing.T) {
	h := newBillHandler(t, &stubBiltyRepo{}, &stubBillRepo{})

	body := `{"user_id":1,"options":{"bill_type":"monthly"},"save":false}`
	req := httptest.NewRequest(http.MethodPost, "/bill/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.GenerateBill(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ------------------------ search handler ------------------------

func TestSearchBiltyPaginatesEnvelope(t *testing.T) {
	bilty := &stubBiltyRepo{}
	for i := int64(1); i <= 30; i++ {
		bilty.regular = append(bilty.regular, sampleBilty(i))
	}
	h := &SearchHandler{Service: testService(bilty)}

	req := httptest.NewRequest(http.MethodGet, "/bilty/search?page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	h.SearchBilty(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Rows       []models.Consignment `json:"rows"`
			Pagination search.Pagination    `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Rows, 10)
	assert.Equal(t, 2, resp.Data.Pagination.Page)
	assert.Equal(t, 30, resp.Data.Pagination.Total)
	assert.Equal(t, 3, resp.Data.Pagination.TotalPages)
}

func TestSearchBiltyRejectsNonGet(t *testing.T) {
	h := &SearchHandler{Service: testService(&stubBiltyRepo{})}
	req := httptest.NewRequest(http.MethodPost, "/bilty/search", nil)
	rec := httptest.NewRecorder()
	h.SearchBilty(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
