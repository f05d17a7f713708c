package domain

import (
	"context"
	"time"
)

// Фильтр списков статей: каждый параметр, влияющий на выдачу,
// участвует и в ключе кеша
type ArticleFilter struct {
	Status string // "" — любые
	Search string // подстрока в articleTitle (case-insensitive)
	Page   int
	Limit  int
}

func (f ArticleFilter) Skip() int { return (f.Page - 1) * f.Limit }

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

func (f ListFilter) Skip() int { return (f.Page - 1) * f.Limit }

// Частичные обновления: nil — поле не трогаем
type ArticlePatch struct {
	ColoredHeading *string
	RestHeading    *string
	ArticleTitle   *string
	Author         *string
	CategoryID     *CategoryID
	Status         *string
	FeaturedImage  *string
	Excerpt        *string
	Content        *string
}

type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
}

type LocationPatch struct {
	Name        *string
	Country     *string
	Region      *string
	Description *string
	Status      *string
}

type ShortPatch struct {
	Title          *string
	VideoImage     *string
	ThumbnailImage *string
	Description    *string
	CategoryID     *CategoryID
	Tags           *[]string
	RelatedLinks   *[]RelatedLink
}

type EPaperPatch struct {
	PublicationName *string
	PublicationDate *time.Time
	City            *string
	Pages           *[]EPaperPage
}

type AdminsRepo interface {
	Close()
	Ping(context.Context) error
	CreateAdmin(ctx context.Context, email string, passHash []byte, roles []string) (Admin, error)
	AdminByEmail(ctx context.Context, email string) (Admin, error)
	AdminByID(ctx context.Context, id AdminID) (Admin, error)
}

type ArticlesRepo interface {
	CreateArticle(ctx context.Context, a Article) (Article, error)
	ArticleByID(ctx context.Context, id ArticleID) (Article, error)
	// Для проверки уникальности заголовка (case-insensitive);
	// exclude — id, который не считается конфликтом (при update)
	ArticleByTitle(ctx context.Context, title string, exclude *ArticleID) (Article, error)
	ArticlesList(ctx context.Context, f ArticleFilter) ([]Article, int, error)
	ArticlesByStatus(ctx context.Context, status string) ([]Article, error)
	SearchArticles(ctx context.Context, term, status string) ([]Article, error)
	UpdateArticle(ctx context.Context, id ArticleID, p ArticlePatch) (Article, error)
	UpdateArticleStatus(ctx context.Context, id ArticleID, status string) (Article, error)
	DeleteArticle(ctx context.Context, id ArticleID) error
}

type CategoriesRepo interface {
	CreateCategory(ctx context.Context, c Category) (Category, error)
	CategoryByID(ctx context.Context, id CategoryID) (Category, error)
	CategoryByName(ctx context.Context, name string, exclude *CategoryID) (Category, error)
	CategoriesList(ctx context.Context, f ListFilter) ([]Category, int, error)
	CategoriesAll(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, id CategoryID, p CategoryPatch) (Category, error)
	DeleteCategory(ctx context.Context, id CategoryID) error
}

type LocationsRepo interface {
	CreateLocation(ctx context.Context, l Location) (Location, error)
	LocationByID(ctx context.Context, id LocationID) (Location, error)
	LocationByNameCountry(ctx context.Context, name, country string, exclude *LocationID) (Location, error)
	LocationsList(ctx context.Context, f ListFilter) ([]Location, int, error)
	LocationsByStatus(ctx context.Context, status string) ([]Location, error)
	UpdateLocation(ctx context.Context, id LocationID, p LocationPatch) (Location, error)
	UpdateLocationStatus(ctx context.Context, id LocationID, status string) (Location, error)
	DeleteLocation(ctx context.Context, id LocationID) error
}

type ShortsRepo interface {
	CreateShort(ctx context.Context, s Short) (Short, error)
	ShortByID(ctx context.Context, id ShortID) (Short, error)
	ShortsList(ctx context.Context, f ListFilter) ([]Short, int, error)
	UpdateShort(ctx context.Context, id ShortID, p ShortPatch) (Short, error)
	DeleteShort(ctx context.Context, id ShortID) error
}

type EPapersRepo interface {
	CreateEPaper(ctx context.Context, e EPaper) (EPaper, error)
	EPaperByID(ctx context.Context, id EPaperID) (EPaper, error)
	EPapersList(ctx context.Context, f ListFilter) ([]EPaper, int, error)
	EPaperByDateCity(ctx context.Context, date time.Time, city string) (EPaper, error)
	UpdateEPaper(ctx context.Context, id EPaperID, p EPaperPatch) (EPaper, error)
	DeleteEPaper(ctx context.Context, id EPaperID) error
}
