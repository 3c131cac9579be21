// Package search implements the multi-source bilty search: predicate
// push-down to the two consignment tables, city-name pre-resolution,
// allow-partial-failure parallel fetch, enrichment from lookup maps and a
// stable recency merge. Pagination over the merged rows is purely in-memory.
package search

import (
	"fmt"
	"sync"

	"sangamtransport/models"
	"sangamtransport/repository"
)

type Service struct {
	Bilty   repository.BiltyRepository
	Lookup  repository.LookupRepository
	Challan repository.ChallanRepository
}

func NewService(b repository.BiltyRepository, l repository.LookupRepository, c repository.ChallanRepository) *Service {
	return &Service{Bilty: b, Lookup: l, Challan: c}
}

// Result is one merged search batch. HasMore flags expose the "load more"
// affordance: a source that filled its batch cap may have further rows at the
// next offset.
type Result struct {
	Rows           []models.Consignment `json:"rows"`
	Warnings       []string             `json:"warnings,omitempty"`
	HasMoreRegular bool                 `json:"has_more_regular"`
	HasMoreStation bool                 `json:"has_more_station"`
}

// fetchOutcome is one parallel source fetch folded into success or failure.
// Failed sources contribute an empty slice plus a surfaced warning; they never
// abort the other source.
type fetchOutcome struct {
	regular []*models.Bilty
	station []*models.StationBilty
	err     error
	label   string
}

func (s *Service) Search(f models.BiltySearchFilters) (*Result, error) {
	res := &Result{Rows: []models.Consignment{}}

	wantRegular := f.BiltyType == "" || f.BiltyType == "all" || f.BiltyType == "regular"
	wantStation := f.BiltyType == "" || f.BiltyType == "all" || f.BiltyType == "station"

	// Resolve the city-name filter before touching the main tables.
	var cityIDs []int64
	var cityCodes []string
	stationFallback := ""
	if f.CityName != "" {
		cities, err := s.Lookup.FindCitiesByName(f.CityName)
		if err != nil {
			return nil, fmt.Errorf("city lookup: %w", err)
		}
		if len(cities) == 0 {
			// Zero matches: the regular source returns empty without issuing
			// its query; the station source falls back to a substring match
			// on the station code.
			wantRegular = false
			stationFallback = f.CityName
		} else {
			cityIDs = make([]int64, 0, len(cities))
			cityCodes = make([]string, 0, len(cities))
			for _, c := range cities {
				cityIDs = append(cityIDs, c.ID)
				cityCodes = append(cityCodes, c.Code)
			}
		}
	}

	outcomes := make([]fetchOutcome, 0, 2)
	var mu sync.Mutex
	var wg sync.WaitGroup

	if wantRegular {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := s.Bilty.SearchRegular(f, cityIDs, repository.SearchBatchSize)
			mu.Lock()
			outcomes = append(outcomes, fetchOutcome{regular: rows, err: err, label: "regular bilty search"})
			mu.Unlock()
		}()
	}
	if wantStation {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := s.Bilty.SearchStation(f, cityCodes, stationFallback, repository.SearchBatchSize)
			mu.Lock()
			outcomes = append(outcomes, fetchOutcome{station: rows, err: err, label: "station bilty search"})
			mu.Unlock()
		}()
	}
	wg.Wait()

	var regular []*models.Bilty
	var station []*models.StationBilty
	for _, o := range outcomes {
		if o.err != nil {
			res.Warnings = append(res.Warnings, o.label+" failed: "+o.err.Error())
			continue
		}
		if o.regular != nil {
			regular = o.regular
		}
		if o.station != nil {
			station = o.station
		}
	}
	res.HasMoreRegular = len(regular) == repository.SearchBatchSize
	res.HasMoreStation = len(station) == repository.SearchBatchSize

	rows := normalizeAll(regular, station)
	res.Warnings = append(res.Warnings, s.enrich(rows)...)
	res.Rows = MergeByRecency(rows)
	return res, nil
}

// Godown lists merged consignments waiting at a branch, through the same
// normalization and enrichment path as the search.
func (s *Service) Godown(branchID int64) (*Result, error) {
	branch, err := s.Lookup.GetBranchByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("branch %d not found", branchID)
	}

	res := &Result{Rows: []models.Consignment{}}

	var regular []*models.Bilty
	var station []*models.StationBilty
	var regularErr, stationErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		regular, regularErr = s.Bilty.RegularPendingAtBranch(branchID)
	}()
	go func() {
		defer wg.Done()
		station, stationErr = s.Bilty.StationPendingAtStation(branch.Code)
	}()
	wg.Wait()

	if regularErr != nil {
		res.Warnings = append(res.Warnings, "godown regular fetch failed: "+regularErr.Error())
		regular = nil
	}
	if stationErr != nil {
		res.Warnings = append(res.Warnings, "godown station fetch failed: "+stationErr.Error())
		station = nil
	}

	rows := normalizeAll(regular, station)
	res.Warnings = append(res.Warnings, s.enrich(rows)...)
	res.Rows = MergeByRecency(rows)
	return res, nil
}

// SelectedConsignments loads the current working set by composite key, for
// the workbench and the bill generator.
func (s *Service) SelectedConsignments(keys []models.ConsignmentKey) ([]models.Consignment, []string, error) {
	var regularIDs, stationIDs []int64
	for _, k := range keys {
		switch k.Type {
		case models.ConsignmentRegular:
			regularIDs = append(regularIDs, k.ID)
		case models.ConsignmentStation:
			stationIDs = append(stationIDs, k.ID)
		}
	}

	regular, err := s.Bilty.GetRegularByIDs(regularIDs)
	if err != nil {
		return nil, nil, err
	}
	station, err := s.Bilty.GetStationByIDs(stationIDs)
	if err != nil {
		return nil, nil, err
	}

	rows := normalizeAll(regular, station)
	warnings := s.enrich(rows)
	return MergeByRecency(rows), warnings, nil
}

// ConsignmentsForChallan resolves a challan's transit rows back to full
// consignment rows for the manifest PDF.
func (s *Service) ConsignmentsForChallan(details []models.TransitDetail) ([]models.Consignment, []string, error) {
	var regularGRs, stationGRs []int64
	for _, d := range details {
		if d.BiltyType == string(models.ConsignmentStation) {
			stationGRs = append(stationGRs, d.GRNo)
		} else {
			regularGRs = append(regularGRs, d.GRNo)
		}
	}

	regular, err := s.Bilty.GetRegularByGRNos(regularGRs)
	if err != nil {
		return nil, nil, err
	}
	station, err := s.Bilty.GetStationByGRNos(stationGRs)
	if err != nil {
		return nil, nil, err
	}

	rows := normalizeAll(regular, station)
	warnings := s.enrich(rows)
	return MergeByRecency(rows), warnings, nil
}

func normalizeAll(regular []*models.Bilty, station []*models.StationBilty) []models.Consignment {
	rows := make([]models.Consignment, 0, len(regular)+len(station))
	for _, b := range regular {
		rows = append(rows, models.NormalizeRegular(b))
	}
	for _, s := range station {
		rows = append(rows, models.NormalizeStation(s))
	}
	return rows
}

// enrich joins city names and dispatch info onto the normalized rows via
// in-memory lookup maps. A failed enrichment query degrades to the N/A
// sentinels already present and surfaces a warning, never an error.
func (s *Service) enrich(rows []models.Consignment) []string {
	if len(rows) == 0 {
		return nil
	}
	var warnings []string

	cities, err := s.Lookup.AllCities()
	if err != nil {
		warnings = append(warnings, "city enrichment failed: "+err.Error())
	} else {
		byID := make(map[int64]*models.City, len(cities))
		byCode := make(map[string]*models.City, len(cities))
		for _, c := range cities {
			byID[c.ID] = c
			byCode[c.Code] = c
		}
		for i := range rows {
			switch rows[i].Type {
			case models.ConsignmentRegular:
				if c, ok := byID[rows[i].CityID]; ok {
					rows[i].CityName = c.Name
					rows[i].CityCode = c.Code
				}
			case models.ConsignmentStation:
				if c, ok := byCode[rows[i].CityCode]; ok {
					rows[i].CityName = c.Name
				}
			}
		}
	}

	grNos := make([]int64, 0, len(rows))
	for _, r := range rows {
		grNos = append(grNos, r.GRNo)
	}
	dispatch, err := s.Challan.DispatchInfoByGR(grNos)
	if err != nil {
		warnings = append(warnings, "dispatch enrichment failed: "+err.Error())
		return warnings
	}
	for i := range rows {
		if info, ok := dispatch[rows[i].GRNo]; ok {
			rows[i].ChallanNo = info.ChallanNo
			rows[i].DispatchDate = info.DispatchDate
		}
	}
	return warnings
}
