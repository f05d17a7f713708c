package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
)

const locationResource = "location"

type LocationService struct {
	log       *log.Logger
	locations domain.LocationsRepo
	cache     domain.Cache
}

func NewLocationService(logger *log.Logger, locations domain.LocationsRepo, cache domain.Cache) *LocationService {
	return &LocationService{log: logger, locations: locations, cache: cache}
}

type CreateLocationInput struct {
	Name        string
	Country     string
	Region      string
	Description string
	Status      string
}

type LocationsPage struct {
	Locations  []domain.Location `json:"locations"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s *LocationService) Create(ctx context.Context, in CreateLocationInput) (domain.Location, error) {
	missing := domain.MissingFields(
		domain.Field{Name: "name", Value: in.Name},
		domain.Field{Name: "country", Value: in.Country},
	)
	if len(missing) > 0 {
		return domain.Location{}, fmt.Errorf("%w: missing required fields: %s",
			domain.ErrBadParams, strings.Join(missing, ", "))
	}

	if in.Status == "" {
		in.Status = domain.LocationStatusActive
	}
	if !domain.ValidLocationStatus(in.Status) {
		return domain.Location{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, in.Status)
	}

	// уникальность пары имя+страна (case-insensitive)
	if _, err := s.locations.LocationByNameCountry(ctx, in.Name, in.Country, nil); err == nil {
		return domain.Location{}, fmt.Errorf("%w: location with this name already exists in this country", domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Location{}, err
	}

	l, err := s.locations.CreateLocation(ctx, domain.Location{
		Name:        strings.TrimSpace(in.Name),
		Country:     strings.TrimSpace(in.Country),
		Region:      strings.TrimSpace(in.Region),
		Description: strings.TrimSpace(in.Description),
		Status:      in.Status,
	})
	if err != nil {
		return domain.Location{}, err
	}

	s.invalidate(ctx, l.ID)
	return l, nil
}

func (s *LocationService) GetByID(ctx context.Context, id domain.LocationID) (domain.Location, error) {
	key := domain.CacheKeyLocation(id)

	var cached domain.Location
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	l, err := s.locations.LocationByID(ctx, id)
	if err != nil {
		return domain.Location{}, err
	}
	putCached(ctx, s.log, s.cache, key, l)
	return l, nil
}

func (s *LocationService) List(ctx context.Context, f domain.ListFilter) (LocationsPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	key := domain.CacheKeyList(locationResource, f.Page, f.Limit, f.Search)

	var cached LocationsPage
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	items, total, err := s.locations.LocationsList(ctx, f)
	if err != nil {
		return LocationsPage{}, err
	}
	page := LocationsPage{Locations: items, Pagination: paginate(total, f.Page, f.Limit)}
	putCached(ctx, s.log, s.cache, key, page)
	return page, nil
}

func (s *LocationService) Active(ctx context.Context) ([]domain.Location, error) {
	var cached []domain.Location
	if getCached(ctx, s.log, s.cache, domain.CacheKeyLocationsActive, &cached) {
		return cached, nil
	}

	items, err := s.locations.LocationsByStatus(ctx, domain.LocationStatusActive)
	if err != nil {
		return nil, err
	}
	putCached(ctx, s.log, s.cache, domain.CacheKeyLocationsActive, items)
	return items, nil
}

func (s *LocationService) Update(ctx context.Context, id domain.LocationID, p domain.LocationPatch) (domain.Location, error) {
	if p.Status != nil && !domain.ValidLocationStatus(*p.Status) {
		return domain.Location{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, *p.Status)
	}
	if p.Name != nil || p.Country != nil {
		// пару имя+страна проверяем по итоговым значениям
		cur, err := s.locations.LocationByID(ctx, id)
		if err != nil {
			return domain.Location{}, err
		}
		name, country := cur.Name, cur.Country
		if p.Name != nil {
			name = *p.Name
		}
		if p.Country != nil {
			country = *p.Country
		}
		if _, err := s.locations.LocationByNameCountry(ctx, name, country, &id); err == nil {
			return domain.Location{}, fmt.Errorf("%w: location with this name already exists in this country", domain.ErrDuplicate)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Location{}, err
		}
	}
	trimPtr(p.Name)
	trimPtr(p.Country)
	trimPtr(p.Region)
	trimPtr(p.Description)

	l, err := s.locations.UpdateLocation(ctx, id, p)
	if err != nil {
		return domain.Location{}, err
	}

	s.invalidate(ctx, l.ID)
	return l, nil
}

func (s *LocationService) UpdateStatus(ctx context.Context, id domain.LocationID, status string) (domain.Location, error) {
	if !domain.ValidLocationStatus(status) {
		return domain.Location{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, status)
	}
	l, err := s.locations.UpdateLocationStatus(ctx, id, status)
	if err != nil {
		return domain.Location{}, err
	}

	s.invalidate(ctx, l.ID)
	return l, nil
}

func (s *LocationService) Delete(ctx context.Context, id domain.LocationID) error {
	if err := s.locations.DeleteLocation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *LocationService) invalidate(ctx context.Context, id domain.LocationID) {
	if err := s.cache.Del(ctx, domain.CacheKeyLocation(id), domain.CacheKeyLocationsActive); err != nil {
		s.log.Printf("invalidate location %s: %v", id, err)
	}
	if err := s.cache.DelPattern(ctx, domain.CacheKeyListPattern(locationResource)); err != nil {
		s.log.Printf("invalidate location lists: %v", err)
	}
}
