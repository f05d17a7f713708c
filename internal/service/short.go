package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
)

const shortResource = "short"

type ShortService struct {
	log        *log.Logger
	shorts     domain.ShortsRepo
	categories domain.CategoriesRepo
	cache      domain.Cache
}

func NewShortService(logger *log.Logger, shorts domain.ShortsRepo,
	categories domain.CategoriesRepo, cache domain.Cache) *ShortService {
	return &ShortService{log: logger, shorts: shorts, categories: categories, cache: cache}
}

type CreateShortInput struct {
	Title          string
	VideoImage     string
	ThumbnailImage string
	Description    string
	CategoryID     domain.CategoryID
	Tags           []string
	RelatedLinks   []domain.RelatedLink
}

type ShortsPage struct {
	Shorts     []domain.Short    `json:"shorts"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s *ShortService) Create(ctx context.Context, in CreateShortInput) (domain.Short, error) {
	missing := domain.MissingFields(
		domain.Field{Name: "title", Value: in.Title},
		domain.Field{Name: "videoImage", Value: in.VideoImage},
		domain.Field{Name: "thumbnailImage", Value: in.ThumbnailImage},
		domain.Field{Name: "description", Value: in.Description},
	)
	if in.CategoryID == (domain.CategoryID{}) {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return domain.Short{}, fmt.Errorf("%w: missing required fields: %s",
			domain.ErrBadParams, strings.Join(missing, ", "))
	}

	if _, err := s.categories.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Short{}, fmt.Errorf("%w: invalid category id", domain.ErrBadParams)
		}
		return domain.Short{}, err
	}

	// у связанных ссылок url обязателен
	for _, l := range in.RelatedLinks {
		if strings.TrimSpace(l.URL) == "" {
			return domain.Short{}, fmt.Errorf("%w: related link url is required", domain.ErrBadParams)
		}
	}

	out, err := s.shorts.CreateShort(ctx, domain.Short{
		Title:          strings.TrimSpace(in.Title),
		VideoImage:     strings.TrimSpace(in.VideoImage),
		ThumbnailImage: strings.TrimSpace(in.ThumbnailImage),
		Description:    strings.TrimSpace(in.Description),
		CategoryID:     in.CategoryID,
		Tags:           in.Tags,
		RelatedLinks:   in.RelatedLinks,
	})
	if err != nil {
		return domain.Short{}, err
	}

	s.invalidate(ctx, out.ID)
	return out, nil
}

func (s *ShortService) GetByID(ctx context.Context, id domain.ShortID) (domain.Short, error) {
	key := domain.CacheKeyShort(id)

	var cached domain.Short
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	out, err := s.shorts.ShortByID(ctx, id)
	if err != nil {
		return domain.Short{}, err
	}
	putCached(ctx, s.log, s.cache, key, out)
	return out, nil
}

func (s *ShortService) List(ctx context.Context, f domain.ListFilter) (ShortsPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	key := domain.CacheKeyList(shortResource, f.Page, f.Limit, f.Search)

	var cached ShortsPage
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	items, total, err := s.shorts.ShortsList(ctx, f)
	if err != nil {
		return ShortsPage{}, err
	}
	page := ShortsPage{Shorts: items, Pagination: paginate(total, f.Page, f.Limit)}
	putCached(ctx, s.log, s.cache, key, page)
	return page, nil
}

func (s *ShortService) Update(ctx context.Context, id domain.ShortID, p domain.ShortPatch) (domain.Short, error) {
	if p.CategoryID != nil {
		if _, err := s.categories.CategoryByID(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Short{}, fmt.Errorf("%w: invalid category id", domain.ErrBadParams)
			}
			return domain.Short{}, err
		}
	}
	if p.RelatedLinks != nil {
		for _, l := range *p.RelatedLinks {
			if strings.TrimSpace(l.URL) == "" {
				return domain.Short{}, fmt.Errorf("%w: related link url is required", domain.ErrBadParams)
			}
		}
	}
	trimPtr(p.Title)
	trimPtr(p.VideoImage)
	trimPtr(p.ThumbnailImage)
	trimPtr(p.Description)

	out, err := s.shorts.UpdateShort(ctx, id, p)
	if err != nil {
		return domain.Short{}, err
	}

	s.invalidate(ctx, out.ID)
	return out, nil
}

func (s *ShortService) Delete(ctx context.Context, id domain.ShortID) error {
	if err := s.shorts.DeleteShort(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ShortService) invalidate(ctx context.Context, id domain.ShortID) {
	if err := s.cache.Del(ctx, domain.CacheKeyShort(id)); err != nil {
		s.log.Printf("invalidate short %s: %v", id, err)
	}
	if err := s.cache.DelPattern(ctx, domain.CacheKeyListPattern(shortResource)); err != nil {
		s.log.Printf("invalidate short lists: %v", err)
	}
}
