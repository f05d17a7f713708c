package web

import (
	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/service"
)

type Services struct {
	Admins     *service.AdminService
	Articles   *service.ArticleService
	Categories *service.CategoryService
	Locations  *service.LocationService
	Shorts     *service.ShortService
	EPapers    *service.EPaperService
}

type AuthDeps struct {
	Sessions domain.SessionManager
}
