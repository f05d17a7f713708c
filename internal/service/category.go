package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
)

const categoryResource = "category"

type CategoryService struct {
	log        *log.Logger
	categories domain.CategoriesRepo
	cache      domain.Cache
}

func NewCategoryService(logger *log.Logger, categories domain.CategoriesRepo, cache domain.Cache) *CategoryService {
	return &CategoryService{log: logger, categories: categories, cache: cache}
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
}

type CategoriesPage struct {
	Categories []domain.Category `json:"categories"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (domain.Category, error) {
	if missing := domain.MissingFields(domain.Field{Name: "name", Value: in.Name}); len(missing) > 0 {
		return domain.Category{}, fmt.Errorf("%w: missing required fields: %s",
			domain.ErrBadParams, strings.Join(missing, ", "))
	}
	if in.Color != "" && !domain.ValidColor(in.Color) {
		return domain.Category{}, fmt.Errorf("%w: color must be a hex value like #8B5CF6", domain.ErrBadParams)
	}

	if _, err := s.categories.CategoryByName(ctx, in.Name, nil); err == nil {
		return domain.Category{}, fmt.Errorf("%w: category with this name already exists", domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Category{}, err
	}

	c, err := s.categories.CreateCategory(ctx, domain.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Color:       strings.TrimSpace(in.Color),
	})
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidate(ctx, c.ID)
	return c, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	key := domain.CacheKeyCategory(id)

	var cached domain.Category
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	c, err := s.categories.CategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	putCached(ctx, s.log, s.cache, key, c)
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, f domain.ListFilter) (CategoriesPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	key := domain.CacheKeyList(categoryResource, f.Page, f.Limit, f.Search)

	var cached CategoriesPage
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	items, total, err := s.categories.CategoriesList(ctx, f)
	if err != nil {
		return CategoriesPage{}, err
	}
	page := CategoriesPage{Categories: items, Pagination: paginate(total, f.Page, f.Limit)}
	putCached(ctx, s.log, s.cache, key, page)
	return page, nil
}

// Active — все рубрики без пагинации, для публичной навигации
func (s *CategoryService) Active(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if getCached(ctx, s.log, s.cache, domain.CacheKeyCategoriesActive, &cached) {
		return cached, nil
	}

	items, err := s.categories.CategoriesAll(ctx)
	if err != nil {
		return nil, err
	}
	putCached(ctx, s.log, s.cache, domain.CacheKeyCategoriesActive, items)
	return items, nil
}

func (s *CategoryService) Update(ctx context.Context, id domain.CategoryID, p domain.CategoryPatch) (domain.Category, error) {
	if p.Name != nil {
		if _, err := s.categories.CategoryByName(ctx, *p.Name, &id); err == nil {
			return domain.Category{}, fmt.Errorf("%w: category with this name already exists", domain.ErrDuplicate)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Category{}, err
		}
		trimPtr(p.Name)
	}
	if p.Color != nil && *p.Color != "" && !domain.ValidColor(*p.Color) {
		return domain.Category{}, fmt.Errorf("%w: color must be a hex value like #8B5CF6", domain.ErrBadParams)
	}
	trimPtr(p.Description)
	trimPtr(p.Color)

	c, err := s.categories.UpdateCategory(ctx, id, p)
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidate(ctx, c.ID)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id domain.CategoryID) error {
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, id domain.CategoryID) {
	if err := s.cache.Del(ctx, domain.CacheKeyCategory(id), domain.CacheKeyCategoriesActive); err != nil {
		s.log.Printf("invalidate category %s: %v", id, err)
	}
	if err := s.cache.DelPattern(ctx, domain.CacheKeyListPattern(categoryResource)); err != nil {
		s.log.Printf("invalidate category lists: %v", err)
	}
}
