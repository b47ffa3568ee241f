package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/models/dtos"
)

const feedCacheTTL = 60 * time.Second

// FeedService serves the synthetic schedule feed: a deterministic
// projection of the flight catalog for one airline. Not used by the
// booking pipeline; exists for API parity with real carrier feeds.
type FeedService struct {
	flights  *repositories.FlightRepository
	airlines *repositories.AirlineRepository
	cache    common.CacheInterface
	now      func() time.Time
}

func NewFeedService(flights *repositories.FlightRepository, airlines *repositories.AirlineRepository, cache common.CacheInterface) *FeedService {
	return &FeedService{
		flights:  flights,
		airlines: airlines,
		cache:    cache,
		now:      time.Now,
	}
}

// Schedule returns the airline's upcoming flights. Projections are
// cached briefly; the feed promises freshness only to the minute.
func (s *FeedService) Schedule(ctx context.Context, airlineCode string) (*dtos.FeedResponse, error) {
	airline, err := s.airlines.FindByCode(ctx, airlineCode)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, common.NewError(constants.KindNotFound, "unknown airline code %q", airlineCode)
	}

	key := fmt.Sprintf("feed:%s", airline.Code)
	if val, found := s.cache.Get(key); found {
		switch v := val.(type) {
		case *dtos.FeedResponse:
			return v, nil
		case []byte:
			var resp dtos.FeedResponse
			if err := json.Unmarshal(v, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	flights, err := s.flights.UpcomingByAirline(ctx, airline.Code, s.now().UTC())
	if err != nil {
		return nil, err
	}

	resp := &dtos.FeedResponse{
		AirlineCode: airline.Code,
		GeneratedAt: s.now().UTC(),
		Flights:     make([]dtos.FeedEntry, 0, len(flights)),
	}
	for _, f := range flights {
		resp.Flights = append(resp.Flights, dtos.FeedEntry{
			FlightNumber:    f.FlightNumber,
			OriginCode:      f.OriginCode,
			DestinationCode: f.DestinationCode,
			DepartureTime:   f.DepartureTime,
			ArrivalTime:     f.ArrivalTime,
			Status:          f.Status,
			Gate:            f.Gate,
		})
	}

	s.cache.Set(key, resp, feedCacheTTL)
	return resp, nil
}
