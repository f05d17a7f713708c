package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
)

const articleResource = "article"

type ArticleService struct {
	log        *log.Logger
	articles   domain.ArticlesRepo
	categories domain.CategoriesRepo
	cache      domain.Cache
}

func NewArticleService(logger *log.Logger, articles domain.ArticlesRepo,
	categories domain.CategoriesRepo, cache domain.Cache) *ArticleService {
	return &ArticleService{log: logger, articles: articles, categories: categories, cache: cache}
}

type CreateArticleInput struct {
	ColoredHeading string
	RestHeading    string
	ArticleTitle   string
	Author         string
	CategoryID     domain.CategoryID
	Status         string
	FeaturedImage  string
	Excerpt        string
	Content        string
}

type ArticlesPage struct {
	Articles   []domain.Article  `json:"articles"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (domain.Article, error) {
	missing := domain.MissingFields(
		domain.Field{Name: "coloredHeading", Value: in.ColoredHeading},
		domain.Field{Name: "restHeading", Value: in.RestHeading},
		domain.Field{Name: "articleTitle", Value: in.ArticleTitle},
		domain.Field{Name: "author", Value: in.Author},
		domain.Field{Name: "featuredImage", Value: in.FeaturedImage},
		domain.Field{Name: "excerpt", Value: in.Excerpt},
		domain.Field{Name: "content", Value: in.Content},
	)
	if in.CategoryID == (domain.CategoryID{}) {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return domain.Article{}, fmt.Errorf("%w: missing required fields: %s",
			domain.ErrBadParams, strings.Join(missing, ", "))
	}

	if in.Status == "" {
		in.Status = domain.ArticleStatusDraft
	}
	if !domain.ValidArticleStatus(in.Status) {
		return domain.Article{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, in.Status)
	}

	// рубрика должна существовать
	if _, err := s.categories.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Article{}, fmt.Errorf("%w: invalid category id", domain.ErrBadParams)
		}
		return domain.Article{}, err
	}

	// заголовок уникален (case-insensitive)
	if _, err := s.articles.ArticleByTitle(ctx, in.ArticleTitle, nil); err == nil {
		return domain.Article{}, fmt.Errorf("%w: article with this title already exists", domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Article{}, err
	}

	a, err := s.articles.CreateArticle(ctx, domain.Article{
		ColoredHeading: strings.TrimSpace(in.ColoredHeading),
		RestHeading:    strings.TrimSpace(in.RestHeading),
		ArticleTitle:   strings.TrimSpace(in.ArticleTitle),
		Author:         strings.TrimSpace(in.Author),
		CategoryID:     in.CategoryID,
		Status:         in.Status,
		FeaturedImage:  strings.TrimSpace(in.FeaturedImage),
		Excerpt:        strings.TrimSpace(in.Excerpt),
		Content:        in.Content,
	})
	if err != nil {
		return domain.Article{}, err
	}

	s.invalidate(ctx, a.ID)
	return a, nil
}

// GetByID — точечное чтение через кеш: hit отдаём как есть,
// на промахе идём в репозиторий и заполняем ключ
func (s *ArticleService) GetByID(ctx context.Context, id domain.ArticleID) (domain.Article, error) {
	key := domain.CacheKeyArticle(id)

	var cached domain.Article
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	a, err := s.articles.ArticleByID(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	putCached(ctx, s.log, s.cache, key, a)
	return a, nil
}

// List — кеш по составному ключу: каждый параметр, влияющий на выдачу,
// входит в ключ
func (s *ArticleService) List(ctx context.Context, f domain.ArticleFilter) (ArticlesPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	if f.Status != "" && !domain.ValidArticleStatus(f.Status) {
		return ArticlesPage{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, f.Status)
	}

	key := domain.CacheKeyList(articleResource, f.Page, f.Limit, f.Search)
	if f.Status != "" {
		key += ":" + f.Status
	}

	var cached ArticlesPage
	if getCached(ctx, s.log, s.cache, key, &cached) {
		return cached, nil
	}

	items, total, err := s.articles.ArticlesList(ctx, f)
	if err != nil {
		return ArticlesPage{}, err
	}
	page := ArticlesPage{Articles: items, Pagination: paginate(total, f.Page, f.Limit)}
	putCached(ctx, s.log, s.cache, key, page)
	return page, nil
}

func (s *ArticleService) Published(ctx context.Context) ([]domain.Article, error) {
	var cached []domain.Article
	if getCached(ctx, s.log, s.cache, domain.CacheKeyArticlesPublished, &cached) {
		return cached, nil
	}

	items, err := s.articles.ArticlesByStatus(ctx, domain.ArticleStatusPublished)
	if err != nil {
		return nil, err
	}
	putCached(ctx, s.log, s.cache, domain.CacheKeyArticlesPublished, items)
	return items, nil
}

func (s *ArticleService) Search(ctx context.Context, term, status string) ([]domain.Article, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", domain.ErrBadParams)
	}
	if status != "" && !domain.ValidArticleStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, status)
	}
	return s.articles.SearchArticles(ctx, term, status)
}

func (s *ArticleService) Update(ctx context.Context, id domain.ArticleID, p domain.ArticlePatch) (domain.Article, error) {
	if p.ArticleTitle != nil {
		// другой статьи с таким же заголовком быть не должно
		if _, err := s.articles.ArticleByTitle(ctx, *p.ArticleTitle, &id); err == nil {
			return domain.Article{}, fmt.Errorf("%w: article with this title already exists", domain.ErrDuplicate)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Article{}, err
		}
		t := strings.TrimSpace(*p.ArticleTitle)
		p.ArticleTitle = &t
	}
	if p.Status != nil && !domain.ValidArticleStatus(*p.Status) {
		return domain.Article{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, *p.Status)
	}
	if p.CategoryID != nil {
		if _, err := s.categories.CategoryByID(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Article{}, fmt.Errorf("%w: invalid category id", domain.ErrBadParams)
			}
			return domain.Article{}, err
		}
	}
	trimPtr(p.ColoredHeading)
	trimPtr(p.RestHeading)
	trimPtr(p.Author)
	trimPtr(p.FeaturedImage)
	trimPtr(p.Excerpt)

	a, err := s.articles.UpdateArticle(ctx, id, p)
	if err != nil {
		return domain.Article{}, err
	}

	s.invalidate(ctx, a.ID)
	return a, nil
}

func (s *ArticleService) UpdateStatus(ctx context.Context, id domain.ArticleID, status string) (domain.Article, error) {
	if !domain.ValidArticleStatus(status) {
		return domain.Article{}, fmt.Errorf("%w: invalid status %q", domain.ErrBadParams, status)
	}
	a, err := s.articles.UpdateArticleStatus(ctx, id, status)
	if err != nil {
		return domain.Article{}, err
	}

	s.invalidate(ctx, a.ID)
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id domain.ArticleID) error {
	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate — грубая инвалидация после любой записи:
// точечный ключ, все списочные ключи, производная выборка published
func (s *ArticleService) invalidate(ctx context.Context, id domain.ArticleID) {
	if err := s.cache.Del(ctx, domain.CacheKeyArticle(id), domain.CacheKeyArticlesPublished); err != nil {
		s.log.Printf("invalidate article %s: %v", id, err)
	}
	if err := s.cache.DelPattern(ctx, domain.CacheKeyListPattern(articleResource)); err != nil {
		s.log.Printf("invalidate article lists: %v", err)
	}
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
