package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	auditapp "github.com/librestock/backend/internal/application/audit"
	catalogapp "github.com/librestock/backend/internal/application/catalog"
	identityapp "github.com/librestock/backend/internal/application/identity"
	inventoryapp "github.com/librestock/backend/internal/application/inventory"
	partnerapp "github.com/librestock/backend/internal/application/partner"
	settingsapp "github.com/librestock/backend/internal/application/settings"
	tradeapp "github.com/librestock/backend/internal/application/trade"
	warehouseapp "github.com/librestock/backend/internal/application/warehouse"
	"github.com/librestock/backend/internal/infrastructure/auth"
	"github.com/librestock/backend/internal/infrastructure/cache"
	"github.com/librestock/backend/internal/infrastructure/config"
	"github.com/librestock/backend/internal/infrastructure/logger"
	"github.com/librestock/backend/internal/infrastructure/persistence"
	"github.com/librestock/backend/internal/infrastructure/storage"
	"github.com/librestock/backend/internal/interfaces/http/handler"
	"github.com/librestock/backend/internal/interfaces/http/middleware"
	"github.com/librestock/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LibreStock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection; SQL goes through the zap-backed
	// gorm adapter so query logs share the structured output
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis-backed components fall back to in-process implementations
	// when Redis is disabled, so a single-node deployment needs no
	// external cache.
	var redisClient *redis.Client
	var tokenBlacklist auth.TokenBlacklist
	var brandingCache cache.BrandingCache
	var kvStore cache.KVStore
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		brandingCache = cache.NewRedisBrandingCache(redisClient, cfg.Cache.BrandingTTL)
		kvStore = cache.NewRedisKVStore(redisClient, "librestock:settings")
		log.Info("Redis connected successfully",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		brandingCache = cache.NewNoopBrandingCache()
		kvStore = cache.NewInMemoryKVStore()
		log.Info("Redis disabled, using in-process token blacklist and settings store")
	}

	// Object storage for product photos
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.Bucket),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, photo uploads unavailable")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	photoRepo := persistence.NewGormPhotoRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	areaRepo := persistence.NewGormAreaRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	supplierProductRepo := persistence.NewGormSupplierProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	brandingRepo := persistence.NewGormBrandingRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Transaction scopes for multi-repository writes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Audit recorder shared by every mutating service
	recorder := auditapp.NewLogRecorder(auditLogRepo, log)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist)
	userService := identityapp.NewUserService(userRepo, tokenBlacklist, cfg.JWT.RefreshTokenExpiration, recorder)

	// Catalog services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, recorder)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, inventoryRepo, recorder)
	photoService := catalogapp.NewPhotoService(
		photoRepo, productRepo, objectStorage,
		catalogapp.PhotoServiceConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		},
		recorder, log,
	)

	// Warehouse services
	locationService := warehouseapp.NewLocationService(locationRepo, inventoryRepo, recorder)
	areaService := warehouseapp.NewAreaService(areaRepo, locationRepo, inventoryRepo, recorder)

	// Inventory service
	inventoryService := inventoryapp.NewService(
		inventoryScope, inventoryRepo, movementRepo, productRepo, locationRepo, recorder,
	)

	// Partner services
	supplierService := partnerapp.NewSupplierService(supplierRepo, supplierProductRepo, productRepo, recorder)
	supplierProductService := partnerapp.NewSupplierProductService(supplierProductRepo, supplierRepo, productRepo, recorder)
	clientService := partnerapp.NewClientService(clientRepo, recorder)

	// Trade service
	orderService := tradeapp.NewOrderService(tradeScope, orderRepo, clientRepo, productRepo, recorder)

	// Settings services
	brandingService := settingsapp.NewBrandingService(brandingRepo, brandingCache, recorder)
	connectorService := settingsapp.NewConnectorService(kvStore)

	// Audit query service
	auditQueryService := auditapp.NewQueryService(auditLogRepo)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Close()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = tokenBlacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Health check endpoint, outside API versioning
	handler.NewHealthHandler(db.DB, cfg.JWT.Secret != "").Register(engine)

	// Register API routes
	router.NewRouter(engine).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewPhotoHandler(photoService)).
		Register(handler.NewWarehouseHandler(locationService, areaService)).
		Register(handler.NewInventoryHandler(inventoryService)).
		Register(handler.NewSupplierHandler(supplierService, supplierProductService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewSettingsHandler(brandingService, connectorService)).
		Register(handler.NewAuditHandler(auditQueryService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
