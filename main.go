// @title Bangin' Gear Storefront API
// @version 1.0
// @description Bangin' Gear storefront backend: catalog listing with shareable filters, session carts and checkout
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalog_cache "github.com/CodeStar86/Bangin-Gear/cache"
	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/cart_controller"
	store_category "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/category_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/checkout_controller"
	store_filter "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/filter_controller"
	store_product "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/product_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/health_controller"
	"github.com/CodeStar86/Bangin-Gear/middleware"
	"github.com/CodeStar86/Bangin-Gear/routes/ecommerce_routes"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/CodeStar86/Bangin-Gear/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// logger is not built yet
		fmt.Fprintf(os.Stderr, "❌ invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("❌ server stopped", zap.Error(err))
	}
	log.Info("✅ server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// ── Backends ────────────────────────────────────────────────
	var db *config.Database
	if cfg.NeedsPostgres() {
		var err error
		if db, err = config.InitDB(ctx, cfg, log); err != nil {
			return err
		}
		defer db.Close(log)
	}

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		var err error
		if redisClient, err = config.ConnectRedis(ctx, cfg, log); err != nil {
			return err
		}
		defer redisClient.Close()
	}

	cartStorage, err := newCartStorage(ctx, cfg, db, redisClient)
	if err != nil {
		return err
	}

	repo, err := newCatalogRepository(cfg, db)
	if err != nil {
		return err
	}
	products := catalog_cache.New(repo, cfg.CatalogCacheTTL)
	log.Info("✅ catalog ready", zap.String("source", cfg.CatalogSource), zap.String("cart_storage", cfg.CartStorage))

	// ── Services ────────────────────────────────────────────────
	sessions := cart.NewSessions(cart.Options{
		Limits:     cart.Limits{DefaultMaxQuantity: cfg.CartMaxQuantity},
		Storage:    cartStorage,
		StorageKey: cfg.CartStorageKey,
		Notifier: cart.NotifierFunc(func(n cart.Notification) {
			log.Debug("cart", zap.String("kind", string(n.Kind)), zap.String("message", n.Message))
		}),
		Logger: log,
	})
	checkout := services.NewCheckoutService(
		cart.NewRules(cfg.FreeShippingThreshold, cfg.StandardShipping, cfg.ExpressShipping),
		log,
	)
	catalogCfg := catalog.Config{PriceFloor: catalog.DefaultConfig().PriceFloor, PriceCeiling: cfg.PriceCeiling}

	// ── Router ──────────────────────────────────────────────────
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // receipt downloads
	}))

	checks := map[string]health_controller.Check{}
	if db != nil {
		checks["postgres"] = db.Ping
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	router.GET("/healthz", health_controller.New(checks, log).Health)

	api := router.Group("/api/v1")
	ecommerce_routes.SetupStorefrontRoutes(api,
		store_product.New(products, catalogCfg, log),
		store_category.New(products, log),
		store_filter.New(products, catalogCfg, log),
	)

	session := middleware.CartSession(cfg.CartSessionTTL, cfg.IsProduction())
	limiter := middleware.RateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow, log)
	ecommerce_routes.SetupCartRoutes(api, cart_controller.New(sessions, products, checkout, log), limiter, session)
	ecommerce_routes.SetupCheckoutRoutes(api, checkout_controller.New(sessions, checkout, log), limiter, session)
	log.Info("✅ routes registered")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── Run ─────────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("🚀 server is running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.Sweep(gctx, cfg.CartIdleTTL); n > 0 {
					log.Debug("idle carts released", zap.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if cerr := sessions.Close(shutdownCtx); cerr != nil {
			log.Warn("⚠️ carts not fully persisted", zap.Error(cerr))
		}
		if err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	return g.Wait()
}

func newCartStorage(ctx context.Context, cfg *config.Config, db *config.Database, client *redis.Client) (cart.Storage, error) {
	switch cfg.CartStorage {
	case config.StorageRedis:
		return storage.NewRedisStore(client, cfg.CartSessionTTL), nil
	case config.StoragePostgres:
		store := storage.NewPostgresStore(db.Gorm)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return storage.NewMemoryStore(), nil
	}
}

func newCatalogRepository(cfg *config.Config, db *config.Database) (catalog.Repository, error) {
	if cfg.CatalogSource == config.CatalogPostgres {
		return catalog.NewGormRepository(db.Gorm), nil
	}
	seed, err := catalog.SeedProducts()
	if err != nil {
		return nil, err
	}
	return catalog.NewStaticRepository(seed), nil
}
