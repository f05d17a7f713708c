package web

import (
	"log"
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/admin"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/article"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/category"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/epaper"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/health"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/location"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/short"
	"github.com/EgorLis/news-cms/internal/transport/web/v1/upload"
)

type routerDeps struct {
	health   *health.Handler
	admin    *admin.Handler
	article  *article.Handler
	category *category.Handler
	location *location.Handler
	short    *short.Handler
	epaper   *epaper.Handler
	upload   *upload.Handler
	gate     mw.AuthDeps
}

func newRouter(d routerDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// защищённые маршруты: авто-рефреш сессии + роль admin
	protected := func(h http.HandlerFunc) http.Handler {
		return mw.AutoRefresh(d.gate, mw.RequireRole(domain.RoleAdmin, h))
	}

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// admin / сессии
	mux.HandleFunc("POST /v1/admin/signup", d.admin.Signup)
	mux.HandleFunc("POST /v1/admin/login", d.admin.Login)
	mux.HandleFunc("POST /v1/admin/logout", d.admin.Logout)
	mux.Handle("GET /v1/admin/me", protected(d.admin.Me))

	// статьи: чтение публичное, запись под шлюзом
	mux.HandleFunc("GET /v1/articles", d.article.List)
	mux.HandleFunc("GET /v1/articles/published", d.article.Published)
	mux.HandleFunc("GET /v1/articles/search", d.article.Search)
	mux.HandleFunc("GET /v1/articles/{id}", d.article.GetOne)
	mux.Handle("POST /v1/articles", protected(d.article.Create))
	mux.Handle("PUT /v1/articles/{id}", protected(d.article.Update))
	mux.Handle("PATCH /v1/articles/{id}/status", protected(d.article.UpdateStatus))
	mux.Handle("DELETE /v1/articles/{id}", protected(d.article.Delete))

	// рубрики
	mux.HandleFunc("GET /v1/categories", d.category.List)
	mux.HandleFunc("GET /v1/categories/active", d.category.Active)
	mux.HandleFunc("GET /v1/categories/{id}", d.category.GetOne)
	mux.Handle("POST /v1/categories", protected(d.category.Create))
	mux.Handle("PUT /v1/categories/{id}", protected(d.category.Update))
	mux.Handle("DELETE /v1/categories/{id}", protected(d.category.Delete))

	// локации
	mux.HandleFunc("GET /v1/locations", d.location.List)
	mux.HandleFunc("GET /v1/locations/active", d.location.Active)
	mux.HandleFunc("GET /v1/locations/{id}", d.location.GetOne)
	mux.Handle("POST /v1/locations", protected(d.location.Create))
	mux.Handle("PUT /v1/locations/{id}", protected(d.location.Update))
	mux.Handle("PATCH /v1/locations/{id}/status", protected(d.location.UpdateStatus))
	mux.Handle("DELETE /v1/locations/{id}", protected(d.location.Delete))

	// шорты
	mux.HandleFunc("GET /v1/shorts", d.short.List)
	mux.HandleFunc("GET /v1/shorts/{id}", d.short.GetOne)
	mux.Handle("POST /v1/shorts", protected(d.short.Create))
	mux.Handle("PUT /v1/shorts/{id}", protected(d.short.Update))
	mux.Handle("DELETE /v1/shorts/{id}", protected(d.short.Delete))

	// электронные газеты
	mux.HandleFunc("GET /v1/epapers", d.epaper.List)
	mux.HandleFunc("GET /v1/epapers/{id}", d.epaper.GetOne)
	mux.Handle("POST /v1/epapers", protected(d.epaper.Create))
	mux.Handle("PUT /v1/epapers/{id}", protected(d.epaper.Update))
	mux.Handle("DELETE /v1/epapers/{id}", protected(d.epaper.Delete))

	// загрузка файлов
	mux.Handle("POST /v1/upload", protected(limitBody(64<<20, d.upload.Upload))) // 64MB лимит
	mux.Handle("DELETE /v1/upload", protected(d.upload.Delete))                  // ?key=uploads%2F...

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
