package article

import (
	"log"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/service"
)

type Handler struct {
	Log      *log.Logger
	Articles *service.ArticleService
}

type articleRequest struct {
	ColoredHeading string            `json:"coloredHeading"`
	RestHeading    string            `json:"restHeading"`
	ArticleTitle   string            `json:"articleTitle"`
	Author         string            `json:"author"`
	Category       domain.CategoryID `json:"category"`
	Status         string            `json:"status"`
	FeaturedImage  string            `json:"featuredImage"`
	Excerpt        string            `json:"excerpt"`
	Content        string            `json:"content"`
}

type articlePatchRequest struct {
	ColoredHeading *string            `json:"coloredHeading"`
	RestHeading    *string            `json:"restHeading"`
	ArticleTitle   *string            `json:"articleTitle"`
	Author         *string            `json:"author"`
	Category       *domain.CategoryID `json:"category"`
	Status         *string            `json:"status"`
	FeaturedImage  *string            `json:"featuredImage"`
	Excerpt        *string            `json:"excerpt"`
	Content        *string            `json:"content"`
}

func (p articlePatchRequest) patch() domain.ArticlePatch {
	return domain.ArticlePatch{
		ColoredHeading: p.ColoredHeading,
		RestHeading:    p.RestHeading,
		ArticleTitle:   p.ArticleTitle,
		Author:         p.Author,
		CategoryID:     p.Category,
		Status:         p.Status,
		FeaturedImage:  p.FeaturedImage,
		Excerpt:        p.Excerpt,
		Content:        p.Content,
	}
}

type articleResponse struct {
	Article domain.Article `json:"article"`
}
