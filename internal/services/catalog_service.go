package services

import (
	"context"
	"fmt"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/models/gorm"
)

// Catalog resolves read-mostly reference data for the booking pipeline.
// Kept as an interface so the transactional core stays testable without
// a catalog database behind it.
type Catalog interface {
	Airport(ctx context.Context, code string) (*gorm.Airport, error)
	AirlineName(ctx context.Context, code string) (string, error)
}

const catalogCacheTTL = 10 * time.Minute

// CatalogService is the production Catalog: gorm repositories fronted by
// the process cache. Airports and airlines change rarely enough that a
// short TTL is plenty.
type CatalogService struct {
	airports *repositories.AirportRepository
	airlines *repositories.AirlineRepository
	cache    common.CacheInterface
}

var _ Catalog = (*CatalogService)(nil)

func NewCatalogService(airports *repositories.AirportRepository, airlines *repositories.AirlineRepository, cache common.CacheInterface) *CatalogService {
	return &CatalogService{airports: airports, airlines: airlines, cache: cache}
}

func (s *CatalogService) Airport(ctx context.Context, code string) (*gorm.Airport, error) {
	key := fmt.Sprintf("airport:%s", code)
	if val, found := s.cache.Get(key); found {
		if ap, ok := val.(*gorm.Airport); ok {
			return ap, nil
		}
	}

	ap, err := s.airports.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, common.NewError(constants.KindNotFound, "unknown airport code %q", code)
	}

	s.cache.Set(key, ap, catalogCacheTTL)
	return ap, nil
}

func (s *CatalogService) AirlineName(ctx context.Context, code string) (string, error) {
	key := fmt.Sprintf("airline:%s", code)
	if val, found := s.cache.Get(key); found {
		if name, ok := val.(string); ok {
			return name, nil
		}
	}

	al, err := s.airlines.FindByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if al == nil {
		return "", common.NewError(constants.KindNotFound, "unknown airline code %q", code)
	}

	s.cache.Set(key, al.Name, catalogCacheTTL)
	return al.Name, nil
}
