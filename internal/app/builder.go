package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/news-cms/internal/auth/blacklist"
	"github.com/EgorLis/news-cms/internal/auth/password"
	"github.com/EgorLis/news-cms/internal/auth/session"
	"github.com/EgorLis/news-cms/internal/auth/token"
	"github.com/EgorLis/news-cms/internal/config"
	"github.com/EgorLis/news-cms/internal/domain"
	redisx "github.com/EgorLis/news-cms/internal/infra/cache/redis"
	"github.com/EgorLis/news-cms/internal/infra/database/postgres"
	s3storage "github.com/EgorLis/news-cms/internal/infra/storage/s3"
	"github.com/EgorLis/news-cms/internal/service"
	"github.com/EgorLis/news-cms/internal/transport/web"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	storage domain.BlobStorage
	cache   domain.Cache
	repo    *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	authLog := log.New(base.Writer(), base.Prefix()+"[auth] ", base.Flags())
	svcLog := log.New(base.Writer(), base.Prefix()+"[service] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
		PublicURL: cfg.S3PublicURL,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	codec := token.New(cfg.AuthAccessSecret, cfg.AuthRefreshSecret, cfg.AuthIssuer,
		cfg.AuthAccessTTL, cfg.AuthRefreshTTL)
	black := blacklist.NewStore(rc)
	sessions := session.New(authLog, codec, pgRepo, black, pgRepo, cfg.AuthKeepAdminAccess)

	base.Println("init services")
	svcs := web.Services{
		Admins:     service.NewAdminService(svcLog, pgRepo, hasher, sessions),
		Articles:   service.NewArticleService(svcLog, pgRepo, pgRepo, rc),
		Categories: service.NewCategoryService(svcLog, pgRepo, rc),
		Locations:  service.NewLocationService(svcLog, pgRepo, rc),
		Shorts:     service.NewShortService(svcLog, pgRepo, pgRepo, rc),
		EPapers:    service.NewEPaperService(svcLog, pgRepo, rc),
	}

	base.Println("init Server")
	server := web.New(serverLog, cfg, svcs, web.AuthDeps{Sessions: sessions}, s3, pgRepo, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		storage: s3,
		repo:    pgRepo,
		cache:   rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
