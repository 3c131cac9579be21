package search

import (
	"errors"
	"testing"
	"time"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------ fakes ------------------------

type fakeBiltyRepo struct {
	regular []*models.Bilty
	station []*models.StationBilty

	regularErr error
	stationErr error

	regularCalls  int
	stationCalls  int
	gotCityIDs    []int64
	gotCityCodes  []string
	gotFallback   string
	gotRegularFil models.BiltySearchFilters
}

func (f *fakeBiltyRepo) SearchRegular(fil models.BiltySearchFilters, cityIDs []int64, limit int) ([]*models.Bilty, error) {
	f.regularCalls++
	f.gotCityIDs = cityIDs
	f.gotRegularFil = fil
	return f.regular, f.regularErr
}

func (f *fakeBiltyRepo) SearchStation(fil models.BiltySearchFilters, cityCodes []string, stationFallback string, limit int) ([]*models.StationBilty, error) {
	f.stationCalls++
	f.gotCityCodes = cityCodes
	f.gotFallback = stationFallback
	return f.station, f.stationErr
}

func (f *fakeBiltyRepo) GetRegularByIDs(ids []int64) ([]*models.Bilty, error) {
	var out []*models.Bilty
	for _, b := range f.regular {
		for _, id := range ids {
			if b.ID == id {
				out = append(out, b)
			}
		}
	}
	return out, f.regularErr
}

func (f *fakeBiltyRepo) GetStationByIDs(ids []int64) ([]*models.StationBilty, error) {
	var out []*models.StationBilty
	for _, s := range f.station {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, f.stationErr
}

func (f *fakeBiltyRepo) GetRegularByGRNos(grNos []int64) ([]*models.Bilty, error) {
	var out []*models.Bilty
	for _, b := range f.regular {
		for _, gr := range grNos {
			if b.GRNo == gr {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (f *fakeBiltyRepo) GetStationByGRNos(grNos []int64) ([]*models.StationBilty, error) {
	var out []*models.StationBilty
	for _, s := range f.station {
		for _, gr := range grNos {
			if s.GRNo == gr {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeBiltyRepo) RegularPendingAtBranch(branchID int64) ([]*models.Bilty, error) {
	return f.regular, f.regularErr
}

func (f *fakeBiltyRepo) StationPendingAtStation(code string) ([]*models.StationBilty, error) {
	return f.station, f.stationErr
}

func (f *fakeBiltyRepo) CreateStationBilty(s *models.StationBilty) error { return nil }

func (f *fakeBiltyRepo) UpdateImageURL(t models.ConsignmentType, id int64, url string) error {
	return nil
}

type fakeLookupRepo struct {
	cities   []*models.City
	branches []*models.Branch

	findErr error
	allErr  error
}

func (f *fakeLookupRepo) FindCitiesByName(name string) ([]*models.City, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*models.City
	for _, c := range f.cities {
		if containsFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	if len(sub) > len(s) {
		return false
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := 0; j < len(sub); j++ {
			a, b := s[i+j], sub[j]
			if 'A' <= a && a <= 'Z' {
				a += 'a' - 'A'
			}
			if 'A' <= b && b <= 'Z' {
				b += 'a' - 'A'
			}
			if a != b {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (f *fakeLookupRepo) AllCities() ([]*models.City, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.cities, nil
}

func (f *fakeLookupRepo) AllBranches() ([]*models.Branch, error) { return f.branches, nil }

func (f *fakeLookupRepo) GetBranchByID(id int64) (*models.Branch, error) {
	for _, b := range f.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeLookupRepo) AllTransports() ([]*models.Transport, error) { return nil, nil }
func (f *fakeLookupRepo) StaffByRole(role string) ([]*models.Staff, error) {
	return nil, nil
}
func (f *fakeLookupRepo) AllTrucks() ([]*models.Truck, error) { return nil, nil }

type fakeChallanRepo struct {
	dispatch map[int64]models.DispatchInfo
	err      error
}

func (f *fakeChallanRepo) CreateChallan(c *models.Challan) error                  { return nil }
func (f *fakeChallanRepo) ListChallans(limit, offset int) ([]*models.Challan, error) {
	return nil, nil
}
func (f *fakeChallanRepo) GetChallanByID(id int64) (*models.Challan, error) { return nil, nil }
func (f *fakeChallanRepo) MarkDispatched(id int64, date time.Time) error    { return nil }
func (f *fakeChallanRepo) AddTransitDetail(d *models.TransitDetail) error   { return nil }
func (f *fakeChallanRepo) TransitByChallan(challanID int64) ([]models.TransitDetail, error) {
	return nil, nil
}
func (f *fakeChallanRepo) UpdateTransitFlags(id int64, a, b, c *bool) error { return nil }

func (f *fakeChallanRepo) DispatchInfoByGR(grNos []int64) (map[int64]models.DispatchInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.dispatch == nil {
		return map[int64]models.DispatchInfo{}, nil
	}
	return f.dispatch, nil
}

// ------------------------ helpers ------------------------

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func regularBilty(id, gr int64, created time.Time) *models.Bilty {
	return &models.Bilty{
		ID: id, GRNo: gr, BiltyDate: created, CreatedAt: created,
		Consignor: "Agrawal Traders", Consignee: "Sharma & Sons",
		ToCityID: 1, WeightKG: 120, NoOfPackets: 4,
		PaymentMode: "to-pay", Total: 950,
	}
}

func stationBilty(id, gr int64, created time.Time) *models.StationBilty {
	return &models.StationBilty{
		ID: id, GRNo: gr, Station: "NGP", BiltyDate: created, CreatedAt: &created,
		ConsignorName: "Verma Textiles", ConsigneeName: "Gupta Stores",
		WeightKG: 60, NoOfPackets: 2, PaymentStatus: "paid", Amount: 400,
	}
}

func newTestService(b *fakeBiltyRepo, l *fakeLookupRepo, c *fakeChallanRepo) *Service {
	if l == nil {
		l = &fakeLookupRepo{}
	}
	if c == nil {
		c = &fakeChallanRepo{}
	}
	return NewService(b, l, c)
}

// ------------------------ tests ------------------------

func TestSearchMergesBothSourcesByRecency(t *testing.T) {
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{
			regularBilty(1, 101, day(3)),
			regularBilty(2, 102, day(1)),
		},
		station: []*models.StationBilty{
			stationBilty(10, 201, day(2)),
		},
	}
	svc := newTestService(bilty, nil, nil)

	res, err := svc.Search(models.BiltySearchFilters{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	assert.Equal(t, int64(101), res.Rows[0].GRNo)
	assert.Equal(t, int64(201), res.Rows[1].GRNo)
	assert.Equal(t, int64(102), res.Rows[2].GRNo)
}

func TestSearchEqualTimestampsKeepRegularBeforeStation(t *testing.T) {
	same := day(5)
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{regularBilty(1, 101, same)},
		station: []*models.StationBilty{stationBilty(10, 201, same)},
	}
	svc := newTestService(bilty, nil, nil)

	res, err := svc.Search(models.BiltySearchFilters{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, models.ConsignmentRegular, res.Rows[0].Type)
	assert.Equal(t, models.ConsignmentStation, res.Rows[1].Type)
}

func TestSearchCityWithNoMatchSkipsRegularQuery(t *testing.T) {
	bilty := &fakeBiltyRepo{
		station: []*models.StationBilty{stationBilty(10, 201, day(2))},
	}
	lookup := &fakeLookupRepo{cities: []*models.City{{ID: 1, Name: "Nagpur", Code: "NGP"}}}
	svc := newTestService(bilty, lookup, nil)

	res, err := svc.Search(models.BiltySearchFilters{CityName: "Zanzibar"})
	require.NoError(t, err)

	assert.Equal(t, 0, bilty.regularCalls, "regular source must not be queried when the city resolves to nothing")
	assert.Equal(t, 1, bilty.stationCalls)
	assert.Equal(t, "Zanzibar", bilty.gotFallback)
	assert.Empty(t, bilty.gotCityCodes)
	require.Len(t, res.Rows, 1)
}

func TestSearchCityMatchPassesResolvedIDs(t *testing.T) {
	bilty := &fakeBiltyRepo{}
	lookup := &fakeLookupRepo{cities: []*models.City{
		{ID: 1, Name: "Nagpur", Code: "NGP"},
		{ID: 2, Name: "Nagaur", Code: "NGR"},
	}}
	svc := newTestService(bilty, lookup, nil)

	_, err := svc.Search(models.BiltySearchFilters{CityName: "nag"})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, bilty.gotCityIDs)
	assert.Equal(t, []string{"NGP", "NGR"}, bilty.gotCityCodes)
	assert.Empty(t, bilty.gotFallback)
}

func TestSearchCityLookupErrorFailsWholeSearch(t *testing.T) {
	bilty := &fakeBiltyRepo{}
	lookup := &fakeLookupRepo{findErr: errors.New("db down")}
	svc := newTestService(bilty, lookup, nil)

	_, err := svc.Search(models.BiltySearchFilters{CityName: "nag"})
	require.Error(t, err)
	assert.Equal(t, 0, bilty.regularCalls)
	assert.Equal(t, 0, bilty.stationCalls)
}

func TestSearchOneSourceFailingDegradesToWarning(t *testing.T) {
	bilty := &fakeBiltyRepo{
		regular:    []*models.Bilty{regularBilty(1, 101, day(3))},
		stationErr: errors.New("station table unreachable"),
	}
	svc := newTestService(bilty, nil, nil)

	res, err := svc.Search(models.BiltySearchFilters{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "station bilty search failed")
}

func TestSearchBiltyTypeLimitsSources(t *testing.T) {
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{regularBilty(1, 101, day(3))},
		station: []*models.StationBilty{stationBilty(10, 201, day(2))},
	}
	svc := newTestService(bilty, nil, nil)

	res, err := svc.Search(models.BiltySearchFilters{BiltyType: "regular"})
	require.NoError(t, err)
	assert.Equal(t, 1, bilty.regularCalls)
	assert.Equal(t, 0, bilty.stationCalls)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, models.ConsignmentRegular, res.Rows[0].Type)
}

// January date filter with city-name enrichment on the merged result.
func TestSearchJanuaryWindowEnrichesCityNames(t *testing.T) {
	from, to := day(1), day(31)
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{regularBilty(1, 101, day(14))},
		station: []*models.StationBilty{stationBilty(10, 201, day(20))},
	}
	lookup := &fakeLookupRepo{cities: []*models.City{{ID: 1, Name: "Nagpur", Code: "NGP"}}}
	challan := &fakeChallanRepo{dispatch: map[int64]models.DispatchInfo{
		101: {ChallanNo: "CH-77", DispatchDate: timePtr(day(15))},
	}}
	svc := newTestService(bilty, lookup, challan)

	res, err := svc.Search(models.BiltySearchFilters{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, from, *bilty.gotRegularFil.DateFrom)
	assert.Equal(t, to, *bilty.gotRegularFil.DateTo)

	// Station row first (Jan 20), regular second (Jan 14).
	assert.Equal(t, "Nagpur", res.Rows[0].CityName)
	assert.Equal(t, "NGP", res.Rows[0].CityCode)
	assert.Equal(t, "Nagpur", res.Rows[1].CityName)
	assert.Equal(t, "CH-77", res.Rows[1].ChallanNo)
	require.NotNil(t, res.Rows[1].DispatchDate)
	assert.Equal(t, day(15), *res.Rows[1].DispatchDate)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestSearchEnrichmentFailureFallsBackToSentinels(t *testing.T) {
	bilty := &fakeBiltyRepo{regular: []*models.Bilty{regularBilty(1, 101, day(3))}}
	lookup := &fakeLookupRepo{allErr: errors.New("cities unavailable")}
	challan := &fakeChallanRepo{err: errors.New("challans unavailable")}
	svc := newTestService(bilty, lookup, challan)

	res, err := svc.Search(models.BiltySearchFilters{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, models.NotAvailable, res.Rows[0].CityName)
	assert.Equal(t, models.NotAvailable, res.Rows[0].ChallanNo)
	assert.Nil(t, res.Rows[0].DispatchDate)
	assert.Len(t, res.Warnings, 2)
}

func TestGodownUnknownBranchFails(t *testing.T) {
	svc := newTestService(&fakeBiltyRepo{}, &fakeLookupRepo{}, nil)
	_, err := svc.Godown(42)
	require.Error(t, err)
}

func TestGodownMergesPendingAtBranch(t *testing.T) {
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{regularBilty(1, 101, day(3))},
		station: []*models.StationBilty{stationBilty(10, 201, day(4))},
	}
	lookup := &fakeLookupRepo{branches: []*models.Branch{{ID: 7, Name: "Itwari", Code: "NGP"}}}
	svc := newTestService(bilty, lookup, nil)

	res, err := svc.Godown(7)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, int64(201), res.Rows[0].GRNo)
	assert.Equal(t, int64(101), res.Rows[1].GRNo)
}

func TestSelectedConsignmentsResolvesCompositeKeys(t *testing.T) {
	// Regular id 5 and station id 5 are distinct records.
	bilty := &fakeBiltyRepo{
		regular: []*models.Bilty{regularBilty(5, 101, day(3))},
		station: []*models.StationBilty{stationBilty(5, 201, day(2))},
	}
	svc := newTestService(bilty, nil, nil)

	rows, _, err := svc.SelectedConsignments([]models.ConsignmentKey{
		{Type: models.ConsignmentRegular, ID: 5},
		{Type: models.ConsignmentStation, ID: 5},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].Type, rows[1].Type)
}
