package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/EgorLis/news-cms/internal/domain"
)

const epaperResource = "epaper"

type EPaperService struct {
	log     *log.Logger
	epapers domain.EPapersRepo
	cache   domain.Cache
}

func NewEPaperService(logger *log.Logger, epapers domain.EPapersRepo, cache domain.Cache) *EPaperService {
	return &EPaperService{log: logger, epapers: epapers, cache: cache}
}

type CreateEPaperInput struct {
	PublicationName string
	PublicationDate time.Time
	City            string
	Pages           []domain.EPaperPage
}

type EPapersPage struct {
	EPapers    []domain.EPaper   `json:"epapers"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s *EPaperService) Create(ctx context.Context, in CreateEPaperInput) (domain.EPaper, error) {
	missing := domain.MissingFields(
		domain.Field{Name: "publicationName", Value: in.PublicationName},
		domain.Field{Name: "city", Value: in.City},
	)
	if in.PublicationDate.IsZero() {
		missing = append(missing, "publicationDate")
	}
	if len(missing) > 0 {
		return domain.EPaper{}, fmt.Errorf("%w: missing required fields: %s",
			domain.ErrBadParams, strings.Join(missing, ", "))
	}
	if len(in.Pages) == 0 {
		return domain.EPaper{}, fmt.Errorf("%w: at least one page is required", domain.ErrBadParams)
	}
	pages, err := normalizePages(in.Pages)
	if err != nil {
		return domain.EPaper{}, err
	}

	// на дату и город — не больше одного выпуска
	date := in.PublicationDate.Truncate(24 * time.Hour)
	if _, err := s.epapers.EPaperByDateCity(ctx, date, in.City); err == nil {
		return domain.EPaper{}, fmt.Errorf("%w: e-paper for this date and city already exists", domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.EPaper{}, err
	}

	e, err := s.epapers.CreateEPaper(ctx, domain.EPaper{
		PublicationName: strings.TrimSpace(in.PublicationName),
		PublicationDate: date,
		City:            strings.TrimSpace(in.City),
		Pages:           pages,
	})
	if err != nil {
		return domain.EPaper{}, err
	}

	s.invalidate(ctx, e.ID)
	return e, nil
}

func (s *EPaperService) GetByID(ctx context.Context, id domain.EPaperID) (domain.EPaper, error) {
	key := domain.CacheKeyEPaper(id)

	var cached domain.EPaper
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	e, err := s.epapers.EPaperByID(ctx, id)
	if err != nil {
		return domain.EPaper{}, err
	}
	putCached(ctx, s.log, s.cache, key, e)
	return e, nil
}

func (s *EPaperService) List(ctx context.Context, f domain.ListFilter) (EPapersPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	key := domain.CacheKeyList(epaperResource, f.Page, f.Limit, f.Search)

	var cached EPapersPage
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	items, total, err := s.epapers.EPapersList(ctx, f)
	if err != nil {
		return EPapersPage{}, err
	}
	page := EPapersPage{EPapers: items, Pagination: paginate(total, f.Page, f.Limit)}
	putCached(ctx, s.log, s.cache, key, page)
	return page, nil
}

func (s *EPaperService) Update(ctx context.Context, id domain.EPaperID, p domain.EPaperPatch) (domain.EPaper, error) {
	if p.Pages != nil {
		if len(*p.Pages) == 0 {
			return domain.EPaper{}, fmt.Errorf("%w: at least one page is required", domain.ErrBadParams)
		}
		pages, err := normalizePages(*p.Pages)
		if err != nil {
			return domain.EPaper{}, err
		}
		p.Pages = &pages
	}
	if p.PublicationDate != nil {
		d := p.PublicationDate.Truncate(24 * time.Hour)
		p.PublicationDate = &d
	}
	trimPtr(p.PublicationName)
	trimPtr(p.City)

	e, err := s.epapers.UpdateEPaper(ctx, id, p)
	if err != nil {
		return domain.EPaper{}, err
	}

	s.invalidate(ctx, e.ID)
	return e, nil
}

func (s *EPaperService) Delete(ctx context.Context, id domain.EPaperID) error {
	if err := s.epapers.DeleteEPaper(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *EPaperService) invalidate(ctx context.Context, id domain.EPaperID) {
	if err := s.cache.Del(ctx, domain.CacheKeyEPaper(id)); err != nil {
		s.log.Printf("invalidate epaper %s: %v", id, err)
	}
	if err := s.cache.DelPattern(ctx, domain.CacheKeyListPattern(epaperResource)); err != nil {
		s.log.Printf("invalidate epaper lists: %v", err)
	}
}

// normalizePages сортирует страницы по номеру и проверяет
// положительность номеров, наличие файлов и отсутствие дубликатов
func normalizePages(pages []domain.EPaperPage) ([]domain.EPaperPage, error) {
	out := make([]domain.EPaperPage, len(pages))
	copy(out, pages)
	sort.Slice(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })

	seen := make(map[int]bool, len(out))
	for _, p := range out {
		if p.PageNumber < 1 {
			return nil, fmt.Errorf("%w: page numbers must be positive", domain.ErrBadParams)
		}
		if strings.TrimSpace(p.FileURL) == "" {
			return nil, fmt.Errorf("%w: page %d has no file url", domain.ErrBadParams, p.PageNumber)
		}
		if seen[p.PageNumber] {
			return nil, fmt.Errorf("%w: duplicate page number %d", domain.ErrBadParams, p.PageNumber)
		}
		seen[p.PageNumber] = true
	}
	return out, nil
}
