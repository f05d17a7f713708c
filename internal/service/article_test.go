package service

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

// memCache — in-memory реализация domain.Cache для тестов
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	return nil
}

func (c *memCache) SetNX(_ context.Context, key string, val []byte, _ int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = val
	return true, nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DelPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close()                     {}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// fakeArticles — ArticlesRepo поверх map, считает обращения
type fakeArticles struct {
	mu       sync.Mutex
	articles map[domain.ArticleID]domain.Article
	reads    int
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{articles: make(map[domain.ArticleID]domain.Article)}
}

func (f *fakeArticles) CreateArticle(_ context.Context, a domain.Article) (domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.New()
	f.articles[a.ID] = a
	return a, nil
}

func (f *fakeArticles) ArticleByID(_ context.Context, id domain.ArticleID) (domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	a, ok := f.articles[id]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeArticles) ArticleByTitle(_ context.Context, title string, exclude *domain.ArticleID) (domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		if strings.EqualFold(a.ArticleTitle, title) {
			return a, nil
		}
	}
	return domain.Article{}, domain.ErrNotFound
}

func (f *fakeArticles) ArticlesList(_ context.Context, _ domain.ArticleFilter) ([]domain.Article, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	out := make([]domain.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeArticles) ArticlesByStatus(_ context.Context, status string) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var out []domain.Article
	for _, a := range f.articles {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArticles) SearchArticles(_ context.Context, term, status string) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var out []domain.Article
	for _, a := range f.articles {
		if !strings.Contains(strings.ToLower(a.ArticleTitle), strings.ToLower(term)) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeArticles) UpdateArticle(_ context.Context, id domain.ArticleID, p domain.ArticlePatch) (domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.articles[id]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	if p.ArticleTitle != nil {
		a.ArticleTitle = *p.ArticleTitle
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	f.articles[id] = a
	return a, nil
}

func (f *fakeArticles) UpdateArticleStatus(_ context.Context, id domain.ArticleID, status string) (domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.articles[id]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	a.Status = status
	f.articles[id] = a
	return a, nil
}

func (f *fakeArticles) DeleteArticle(_ context.Context, id domain.ArticleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.articles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticles) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// fakeCategories — только то, что нужно ArticleService
type fakeCategories struct {
	known map[domain.CategoryID]bool
}

func (f *fakeCategories) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	panic("not used")
}
func (f *fakeCategories) CategoryByID(_ context.Context, id domain.CategoryID) (domain.Category, error) {
	if f.known[id] {
		return domain.Category{ID: id}, nil
	}
	return domain.Category{}, domain.ErrNotFound
}
func (f *fakeCategories) CategoryByName(context.Context, string, *domain.CategoryID) (domain.Category, error) {
	panic("not used")
}
func (f *fakeCategories) CategoriesList(context.Context, domain.ListFilter) ([]domain.Category, int, error) {
	panic("not used")
}
func (f *fakeCategories) CategoriesAll(context.Context) ([]domain.Category, error) { panic("not used") }
func (f *fakeCategories) UpdateCategory(context.Context, domain.CategoryID, domain.CategoryPatch) (domain.Category, error) {
	panic("not used")
}
func (f *fakeCategories) DeleteCategory(context.Context, domain.CategoryID) error { panic("not used") }

func newArticleEnv() (*ArticleService, *fakeArticles, *memCache, domain.CategoryID) {
	repo := newFakeArticles()
	cache := newMemCache()
	catID := uuid.New()
	cats := &fakeCategories{known: map[domain.CategoryID]bool{catID: true}}
	svc := NewArticleService(log.New(io.Discard, "", 0), repo, cats, cache)
	return svc, repo, cache, catID
}

func validInput(catID domain.CategoryID) CreateArticleInput {
	return CreateArticleInput{
		ColoredHeading: "Breaking",
		RestHeading:    "news of the day",
		ArticleTitle:   "City council votes",
		Author:         "Jane Doe",
		CategoryID:     catID,
		FeaturedImage:  "https://cdn.example.com/img.jpg",
		Excerpt:        "Short summary",
		Content:        "Full text",
	}
}

func TestCreateArticleMissingFields(t *testing.T) {
	t.Parallel()
	svc, _, _, catID := newArticleEnv()

	in := validInput(catID)
	in.Author = ""
	in.Excerpt = " "

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrBadParams)
	assert.Contains(t, err.Error(), "author")
	assert.Contains(t, err.Error(), "excerpt")
}

func TestCreateArticleUnknownCategory(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newArticleEnv()

	in := validInput(uuid.New())
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrBadParams)
}

func TestCreateArticleDuplicateTitle(t *testing.T) {
	t.Parallel()
	svc, _, _, catID := newArticleEnv()

	_, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	in := validInput(catID)
	in.ArticleTitle = "CITY COUNCIL VOTES" // регистр не спасает
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateArticleDefaultsToDraft(t *testing.T) {
	t.Parallel()
	svc, _, _, catID := newArticleEnv()

	a, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStatusDraft, a.Status)
}

func TestGetByIDReadThrough(t *testing.T) {
	t.Parallel()
	svc, repo, cache, catID := newArticleEnv()

	a, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	before := repo.readCount()
	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, before+1, repo.readCount())
	assert.True(t, cache.has(domain.CacheKeyArticle(a.ID)))

	// второе чтение — из кеша, репозиторий не трогаем
	_, err = svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, repo.readCount())
}

func TestListCachedThenInvalidatedByUpdate(t *testing.T) {
	t.Parallel()
	svc, repo, _, catID := newArticleEnv()

	a, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	f := domain.ArticleFilter{Page: 1, Limit: 10}
	_, err = svc.List(context.Background(), f)
	require.NoError(t, err)
	after1 := repo.readCount()

	// повтор — из кеша
	_, err = svc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, after1, repo.readCount())

	// запись инвалидирует списки
	author := "New Author"
	_, err = svc.Update(context.Background(), a.ID, domain.ArticlePatch{Author: &author})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Greater(t, repo.readCount(), after1)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "New Author", page.Articles[0].Author)
}

func TestPublishedInvalidatedByStatusChange(t *testing.T) {
	t.Parallel()
	svc, _, cache, catID := newArticleEnv()

	a, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	items, err := svc.Published(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, cache.has(domain.CacheKeyArticlesPublished))

	_, err = svc.UpdateStatus(context.Background(), a.ID, domain.ArticleStatusPublished)
	require.NoError(t, err)
	assert.False(t, cache.has(domain.CacheKeyArticlesPublished))

	items, err = svc.Published(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestDeleteInvalidatesPointKey(t *testing.T) {
	t.Parallel()
	svc, _, cache, catID := newArticleEnv()

	a, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.True(t, cache.has(domain.CacheKeyArticle(a.ID)))

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.False(t, cache.has(domain.CacheKeyArticle(a.ID)))

	_, err = svc.GetByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchBypassesCache(t *testing.T) {
	t.Parallel()
	svc, repo, _, catID := newArticleEnv()

	_, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	before := repo.readCount()
	_, err = svc.Search(context.Background(), "council", "")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "council", "")
	require.NoError(t, err)
	assert.Equal(t, before+2, repo.readCount())

	_, err = svc.Search(context.Background(), "  ", "")
	assert.ErrorIs(t, err, domain.ErrBadParams)
}

func TestListStatusInKey(t *testing.T) {
	t.Parallel()
	svc, _, cache, catID := newArticleEnv()

	_, err := svc.Create(context.Background(), validInput(catID))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), domain.ArticleFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), domain.ArticleFilter{Page: 1, Limit: 10, Status: domain.ArticleStatusDraft})
	require.NoError(t, err)

	// разные выборки — разные ключи
	assert.True(t, cache.has("articles:all:1:10:"))
	assert.True(t, cache.has("articles:all:1:10::draft"))
}
