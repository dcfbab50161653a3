package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"altaviva-site/internal/background"
	"altaviva-site/internal/config"
	"altaviva-site/internal/content"
	"altaviva-site/internal/handlers"
	"altaviva-site/internal/live"
	"altaviva-site/internal/middleware"
	"altaviva-site/internal/models"
	"altaviva-site/internal/prefstore"
	"altaviva-site/internal/repository"
	"altaviva-site/internal/ui"
	"altaviva-site/pkg/cache"
	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/navigation"
	"altaviva-site/pkg/utils"
	"altaviva-site/web"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	preferences repository.PreferenceRepository
	provider    prefstore.Provider
	pages       *content.Service

	handlers    handlerContainer
	rateLimiter *middleware.RateLimitManager
	scheduler   *background.Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	router *gin.Engine
	server *http.Server
}

type handlerContainer struct {
	Template   *handlers.TemplateHandler
	Theme      *handlers.ThemeHandler
	Navigation *handlers.NavigationHandler
	Live       *live.Handler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := app.init(); err != nil {
		cancel()
		app.closeStores()
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) init() error {
	if a.cfg.NeedsDatabase() {
		if err := a.initDatabase(); err != nil {
			return err
		}
		if err := a.runMigrations(); err != nil {
			return err
		}
		a.preferences = repository.NewPreferenceRepository(a.db)
	}

	if err := a.initCache(); err != nil {
		return err
	}

	provider, err := prefstore.New(a.cfg, a.cache, a.preferences)
	if err != nil {
		return err
	}
	a.provider = provider
	logger.Info("Preference store ready", map[string]interface{}{"store": provider.Name()})

	fsys, err := content.DefaultFS(a.cfg.ContentDir)
	if err != nil {
		return err
	}
	a.pages = content.NewService(fsys, a.cache)

	if err := a.initHandlers(); err != nil {
		return err
	}

	a.rateLimiter = middleware.NewRateLimitManager(a.ctx)
	a.initScheduler()

	return a.initRouter()
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"theme_store": a.cfg.ThemeStore,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.handlers.Live != nil {
		a.handlers.Live.Close()
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			logger.Error(err, "Background jobs did not stop in time", nil)
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	a.cancel()
	a.closeStores()
	return nil
}

func (a *Application) closeStores() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(&models.Preference{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.NeedsRedis())
	if err != nil {
		return err
	}
	a.cache = c
	return nil
}

func (a *Application) initHandlers() error {
	templates, err := utils.LoadTemplates(web.Templates(), utils.GetTemplateFuncs(web.AssetModTime))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", nil)

	templateHandler, err := handlers.NewTemplateHandler(a.cfg, templates, a.pages, a.provider)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}
	templateHandler.SetPrimitives(ui.Primitives())

	entries := navigation.Entries()
	templateHandler.SetNavigation(entries)

	a.handlers = handlerContainer{
		Template:   templateHandler,
		Theme:      handlers.NewThemeHandler(a.provider),
		Navigation: handlers.NewNavigationHandler(entries),
	}

	if a.cfg.EnableLive {
		a.handlers.Live = live.NewHandler(a.provider, live.Options{
			Entries:        entries,
			CookieMaxAge:   a.cfg.ThemeCookieMaxAge,
			AllowedOrigins: a.cfg.CORSOrigins,
		})
	}
	return nil
}

func (a *Application) initScheduler() {
	a.scheduler = background.NewScheduler(background.SchedulerConfig{WorkerCount: 1, QueueSize: 8})
	a.scheduler.Start(a.ctx)

	if a.cfg.ContentDir != "" && a.cfg.ContentRefreshInterval > 0 {
		interval := time.Duration(a.cfg.ContentRefreshInterval) * time.Second
		if err := a.scheduler.Every(background.ContentRefreshJob(a.pages), interval); err != nil {
			logger.Error(err, "Failed to schedule content refresh", nil)
		}
	}

	if a.preferences != nil && a.cfg.PreferenceRetentionDays > 0 {
		retention := time.Duration(a.cfg.PreferenceRetentionDays) * 24 * time.Hour
		if err := a.scheduler.Every(background.PreferencePruneJob(a.preferences, retention, nil), 24*time.Hour); err != nil {
			logger.Error(err, "Failed to schedule preference pruning", nil)
		}
	}
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(func(c *gin.Context) {
		c.Set(middleware.RateLimitManagerKey, a.rateLimiter)
		c.Next()
	})
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(a.cfg))
	router.Use(middleware.SecurityHeadersMiddleware(a.cfg.CORSOrigins...))
	router.Use(middleware.VisitorMiddleware(middleware.VisitorOptions{
		MaxAge: a.cfg.ThemeCookieMaxAge,
		Secure: a.cfg.IsProduction(),
	}))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	static := router.Group("/static", middleware.StaticProtection())
	static.StaticFS("/", http.FS(web.Static()))

	router.GET("/", a.handlers.Template.RenderIndex)
	router.GET("/:page", a.handlers.Template.RenderPage)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.NoIndexMiddleware())
	v1.Use(middleware.SameOriginMiddleware(a.cfg.CORSOrigins))
	{
		v1.GET("/theme", a.handlers.Theme.Get)
		v1.POST("/theme/toggle",
			middleware.OperationRateLimitMiddleware("theme", 30, 60),
			a.handlers.Theme.Toggle,
		)
		v1.PUT("/theme",
			middleware.OperationRateLimitMiddleware("theme", 30, 60),
			a.handlers.Theme.Set,
		)
		v1.GET("/navigation", a.handlers.Navigation.List)
	}

	if a.handlers.Live != nil {
		router.GET("/live",
			middleware.OperationRateLimitMiddleware("live", 20, 60),
			a.handlers.Live.Serve,
		)
	}

	router.NoRoute(a.handlers.Template.RenderNotFound)

	a.router = router
	return nil
}

func (a *Application) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if a.cache.Enabled() {
		if err := a.cache.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}

	body := gin.H{
		"status": state,
		"time":   time.Now().Format(time.RFC3339),
		"store":  a.provider.Name(),
		"checks": checks,
	}
	if a.handlers.Live != nil {
		body["live_sessions"] = a.handlers.Live.SessionCount()
	}
	if a.scheduler != nil {
		body["background_jobs"] = a.scheduler.ActiveJobCount()
	}
	c.JSON(status, body)
}
