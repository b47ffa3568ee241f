package services

import (
	"context"
	"sort"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/models/dtos"
	gormModels "skylane/concourse/internal/models/gorm"
	"skylane/concourse/internal/pricing"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SortKey orders search results.
type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDuration  SortKey = "duration"
	SortByDeparture SortKey = "departure"
)

// SearchParams is a parsed, validated search query.
type SearchParams struct {
	Origin      string
	Destination string
	Date        *time.Time
	Passengers  int
	Tier        *constants.CabinTier
	SortBy      SortKey
	Page        int
	PageSize    int
}

// SearchService filters and prices the flight catalog. Fares are
// computed per request from the latest committed demand index and seat
// counts; nothing here takes locks, so a returned fare may be stale by
// the time a hold lands, which the booking pipeline's drift check covers.
type SearchService struct {
	flights *repositories.FlightRepository
	catalog Catalog
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

func NewSearchService(flights *repositories.FlightRepository, catalog Catalog, metricsReg *metrics.MetricsRegistry) *SearchService {
	return &SearchService{
		flights: flights,
		catalog: catalog,
		metrics: metricsReg,
		now:     time.Now,
	}
}

// SetClock overrides the service clock. Test hook.
func (s *SearchService) SetClock(now func() time.Time) { s.now = now }

// Search returns priced flight summaries. Cancelled flights are the only
// ones excluded; a flight with too few seats for the party still shows,
// the UI decides what to do with it.
func (s *SearchService) Search(ctx context.Context, params SearchParams) (*dtos.SearchResponse, error) {
	if params.Passengers < 1 {
		return nil, common.NewError(constants.KindInvalidArgument, "passenger count must be at least 1")
	}
	if params.Tier != nil && !params.Tier.Valid() {
		return nil, common.NewError(constants.KindInvalidArgument, "invalid tier %q", *params.Tier)
	}

	if _, err := s.catalog.Airport(ctx, params.Origin); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Airport(ctx, params.Destination); err != nil {
		return nil, err
	}

	flights, err := s.flights.Search(ctx, params.Origin, params.Destination, params.Date)
	if err != nil {
		return nil, err
	}

	flightIDs := make([]int64, len(flights))
	for i, f := range flights {
		flightIDs[i] = f.ID
	}
	counts, err := s.flights.SeatCounts(ctx, flightIDs)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	summaries := make([]dtos.FlightSummary, 0, len(flights))
	for _, f := range flights {
		summaries = append(summaries, s.summarize(f, counts[f.ID], params.Tier, now))
	}

	s.sortSummaries(summaries, params)

	total := len(summaries)
	page, size := normalizePage(params.Page, params.PageSize)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &dtos.SearchResponse{
		Flights:  summaries[start:end],
		Page:     page,
		PageSize: size,
		Total:    total,
	}, nil
}

// Summary builds the priced view of one flight (shared with the get-
// flight endpoint).
func (s *SearchService) Summary(ctx context.Context, flightID int64) (*dtos.FlightSummary, error) {
	flight, err := s.flights.FindByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, common.NewError(constants.KindNotFound, "flight %d not found", flightID)
	}
	counts, err := s.flights.SeatCounts(ctx, []int64{flightID})
	if err != nil {
		return nil, err
	}
	summary := s.summarize(*flight, counts[flightID], nil, s.now().UTC())
	return &summary, nil
}

func (s *SearchService) summarize(f gormModels.Flight, counts map[constants.CabinTier][2]int, tierFilter *constants.CabinTier, now time.Time) dtos.FlightSummary {
	summary := dtos.FlightSummary{
		ID:              f.ID,
		FlightNumber:    f.FlightNumber,
		AirlineCode:     f.AirlineCode,
		OriginCode:      f.OriginCode,
		DestinationCode: f.DestinationCode,
		DepartureTime:   f.DepartureTime,
		ArrivalTime:     f.ArrivalTime,
		DurationMinutes: f.DurationMinutes(),
		Status:          f.Status,
		Gate:            f.Gate,
		DelayMinutes:    f.DelayMinutes,
		DelayReason:     f.DelayReason,
		Remarks:         f.Remarks,
		AircraftModel:   f.Aircraft.Model,
		PriceMap:        make(map[constants.CabinTier]float64),
		SeatsByClass:    make(map[constants.CabinTier]int),
	}

	for tier, c := range counts {
		if tierFilter != nil && tier != *tierFilter {
			continue
		}
		available, total := c[0], c[1]
		summary.SeatsByClass[tier] = available

		fare, err := pricing.Fare(pricing.Snapshot{
			BaseFares:      f.BaseFares,
			SeatsAvailable: available,
			SeatsTotal:     total,
			DepartureTime:  f.DepartureTime,
			DemandIndex:    f.DemandIndex,
		}, now, tier)
		if err != nil {
			// A cabin with no base fare is simply unpriced, not an error.
			continue
		}
		summary.PriceMap[tier] = fare
		if s.metrics != nil {
			s.metrics.FareComputationsTotal.Inc()
		}
	}
	return summary
}

// sortSummaries orders by the requested key, stable with id as the
// secondary key.
func (s *SearchService) sortSummaries(summaries []dtos.FlightSummary, params SearchParams) {
	less := func(a, b dtos.FlightSummary) bool { return a.DepartureTime.Before(b.DepartureTime) }

	switch params.SortBy {
	case SortByPrice:
		less = func(a, b dtos.FlightSummary) bool {
			return sortPrice(a, params.Tier) < sortPrice(b, params.Tier)
		}
	case SortByDuration:
		less = func(a, b dtos.FlightSummary) bool { return a.DurationMinutes < b.DurationMinutes }
	case SortByDeparture, "":
		// default departure ordering
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}

// sortPrice picks the comparable fare for one summary: the filtered
// tier's fare when set, otherwise the cheapest priced cabin.
func sortPrice(s dtos.FlightSummary, tier *constants.CabinTier) float64 {
	if tier != nil {
		if fare, ok := s.PriceMap[*tier]; ok {
			return fare
		}
		return 0
	}
	cheapest := 0.0
	first := true
	for _, fare := range s.PriceMap {
		if first || fare < cheapest {
			cheapest = fare
			first = false
		}
	}
	return cheapest
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
