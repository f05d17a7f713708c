package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/news-cms/internal/config"
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

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, svcs Services, auth AuthDeps,
	storage domain.BlobStorage, db, cache health.Pinger) *Server {

	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	healthHandler := &health.Handler{Log: sub("health"), DB: db, Cache: cache}
	adminHandler := &admin.Handler{Log: sub("admin"), Admins: svcs.Admins, Sessions: auth.Sessions}
	articleHandler := &article.Handler{Log: sub("article"), Articles: svcs.Articles}
	categoryHandler := &category.Handler{Log: sub("category"), Categories: svcs.Categories}
	locationHandler := &location.Handler{Log: sub("location"), Locations: svcs.Locations}
	shortHandler := &short.Handler{Log: sub("short"), Shorts: svcs.Shorts}
	epaperHandler := &epaper.Handler{Log: sub("epaper"), EPapers: svcs.EPapers}
	uploadHandler := &upload.Handler{Log: sub("upload"), Storage: storage}

	gate := mw.AuthDeps{Log: sub("auth"), Sessions: auth.Sessions}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:   healthHandler,
			admin:    adminHandler,
			article:  articleHandler,
			category: categoryHandler,
			location: locationHandler,
			short:    shortHandler,
			epaper:   epaperHandler,
			upload:   uploadHandler,
			gate:     gate,
		}, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
