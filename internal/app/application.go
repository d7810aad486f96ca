package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"still-goods-backend/internal/catalog"
	"still-goods-backend/internal/config"
	"still-goods-backend/internal/handlers"
	"still-goods-backend/internal/middleware"
	"still-goods-backend/internal/payments"
	"still-goods-backend/internal/payments/stripe"
	"still-goods-backend/internal/service"
	"still-goods-backend/pkg/logger"
)

type Options struct {
	CatalogPath string
	PublicDir   string

	// Provider substitutes the payment provider, mainly for tests. When
	// nil the Stripe provider is built from the configured credential.
	Provider payments.Provider
}

type Application struct {
	cfg     *config.Config
	options Options

	catalog  *catalog.Catalog
	provider payments.Provider

	services serviceContainer
	handlers handlerContainer

	rateLimits *middleware.RateLimitManager
	router     *gin.Engine
	server     *http.Server
}

type serviceContainer struct {
	Checkout *service.CheckoutService
}

type handlerContainer struct {
	Checkout *handlers.CheckoutHandler
	Product  *handlers.ProductHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if opts.CatalogPath == "" {
		opts.CatalogPath = cfg.CatalogPath
	}
	if opts.PublicDir == "" {
		opts.PublicDir = cfg.PublicDir
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initCatalog(); err != nil {
		return nil, err
	}

	app.initProvider()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"products":    a.catalog.Len(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimits != nil {
		a.rateLimits.Shutdown()
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initCatalog() error {
	cat, err := catalog.Load(a.options.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	a.catalog = cat
	logger.Info("Catalog loaded", map[string]interface{}{
		"products": cat.Len(),
		"path":     a.options.CatalogPath,
	})
	return nil
}

// initProvider leaves the provider nil when no credential is present; the
// checkout endpoint then answers with its misconfiguration error instead
// of the process refusing to start.
func (a *Application) initProvider() {
	if a.options.Provider != nil {
		a.provider = a.options.Provider
		return
	}

	key := a.cfg.StripeSecretKey
	if strings.TrimSpace(key) == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, checkout is disabled", nil)
		return
	}

	if !stripe.IsSecretKey(key) {
		logger.Warn("Stripe credential does not look like a secret key", nil)
	}

	provider, err := stripe.NewProvider(key)
	if err != nil {
		logger.Error(err, "Failed to initialize Stripe provider", nil)
		return
	}

	a.provider = provider
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Checkout: service.NewCheckoutService(a.catalog, a.provider, service.ShippingConfig{
			AllowedCountries:        a.cfg.ShippingCountries,
			DisplayName:             a.cfg.ShippingDisplayName,
			AmountCents:             a.cfg.ShippingAmountCents,
			Currency:                a.cfg.ShippingCurrency,
			DeliveryEstimateMinDays: a.cfg.DeliveryEstimateMinDays,
			DeliveryEstimateMaxDays: a.cfg.DeliveryEstimateMaxDays,
		}),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Checkout: handlers.NewCheckoutHandler(a.services.Checkout),
		Product:  handlers.NewProductHandler(a.catalog),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimits = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimits))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)

	api := router.Group("/api")
	{
		api.POST("/checkout", a.handlers.Checkout.Create)
		api.GET("/products", a.handlers.Product.List)
	}

	a.registerStaticSite(router)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	a.router = router
}

// registerStaticSite mounts the storefront files when a public directory
// exists. The API remains fully functional without one.
func (a *Application) registerStaticSite(router *gin.Engine) {
	dir := a.options.PublicDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("Public directory not found, static site disabled", map[string]interface{}{
			"dir": dir,
		})
		return
	}

	router.Static("/assets", dir+"/assets")
	router.StaticFile("/", dir+"/index.html")
	router.StaticFile("/index.html", dir+"/index.html")
	router.StaticFile("/success.html", dir+"/success.html")
	router.StaticFile("/favicon.ico", dir+"/favicon.ico")
}
