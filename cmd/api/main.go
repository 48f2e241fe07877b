package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/greenleaf/leaf_api/internal/cache"
	"github.com/greenleaf/leaf_api/internal/config"
	"github.com/greenleaf/leaf_api/internal/database"
	"github.com/greenleaf/leaf_api/internal/handler"
	"github.com/greenleaf/leaf_api/internal/middleware"
	"github.com/greenleaf/leaf_api/internal/repository"
	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// main is the application entrypoint for the GreenLeaf catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting leaf api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Initialize object storage
	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		log.Error().Err(err).Msg("storage initialization failed")
		fmt.Fprintf(os.Stderr, "storage initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	slideshowRepo := repository.NewSlideshowRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 6. Initialize services
	loginLimiter := cache.NewLoginLimiter(redisClient)
	authSvc := service.NewAdminAuthService(adminRepo, loginLimiter)
	catalogSvc := service.NewCatalogService(productRepo)
	productAdminSvc := service.NewProductAdminService(productRepo, storage.Bucket(cfg.Storage.ProductBucket), cfg.Upload.MaxImageBytes)
	bulkSvc := service.NewBulkService(productRepo)
	slideshowSvc := service.NewSlideshowService(slideshowRepo, storage.Bucket(cfg.Storage.SlideshowBucket), cfg.Upload.MaxImageBytes)
	userSvc := service.NewUserService(profileRepo)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db),
		Proxy:     handler.NewProxyHandler(catalogSvc, productRepo),
		Auth:      handler.NewAuthHandler(authSvc),
		Product:   handler.NewProductAdminHandler(productAdminSvc),
		Bulk:      handler.NewBulkHandler(bulkSvc),
		Slideshow: handler.NewSlideshowHandler(slideshowSvc),
		User:      handler.NewUserHandler(userSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Proxy     *handler.ProxyHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductAdminHandler
	Bulk      *handler.BulkHandler
	Slideshow *handler.SlideshowHandler
	User      *handler.UserHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// External product proxy. Reads are open; writes only require that an
	// Authorization header is present.
	proxy := router.Group("/v1/products-api")
	{
		proxy.GET("/products", handlers.Proxy.ListProducts)
		proxy.GET("/products/:id", handlers.Proxy.GetProduct)

		writes := proxy.Group("")
		writes.Use(middleware.RequireAuthHeader())
		{
			writes.POST("/products", handlers.Proxy.CreateProduct)
			writes.PUT("/products/:id", handlers.Proxy.UpdateProduct)
			writes.DELETE("/products/:id", handlers.Proxy.DeleteProduct)
		}
	}

	// Public storefront routes
	router.GET("/v1/slideshows", handlers.Slideshow.ListActive)

	// Admin dashboard routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		// Product authoring
		admin.GET("/products", handlers.Product.ListProducts)
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		// Bulk operations
		admin.POST("/products/bulk-delete", handlers.Bulk.DeleteSelected)
		admin.POST("/products/bulk-flag", handlers.Bulk.SetFlag)

		// Featured curation
		admin.GET("/featured", handlers.Product.ListCuration)
		admin.PATCH("/featured/:id", handlers.Product.SetFeatured)

		// Slideshow management
		admin.GET("/slideshows", handlers.Slideshow.ListAll)
		admin.POST("/slideshows", handlers.Slideshow.CreateSlide)
		admin.PATCH("/slideshows/:id/active", handlers.Slideshow.SetActive)
		admin.DELETE("/slideshows/:id", handlers.Slideshow.DeleteSlide)

		// User management
		admin.GET("/users", handlers.User.ListUsers)
		admin.DELETE("/users/:id", handlers.User.DeleteUser)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
