package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"showcase/api/config"
	"showcase/api/database"
	"showcase/api/geoip"
	"showcase/api/graph"
	"showcase/api/handlers"
	"showcase/api/logger"
	"showcase/api/middleware"
	"showcase/api/services"
	"showcase/api/store"
	"showcase/api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// --- PostgreSQL (users, contact submissions, CMS) ---
	dbClient, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, appLog)
	if err != nil {
		appLog.Fatal("failed to initialize PostgreSQL", "error", err)
	}
	defer dbClient.Close()

	if err := database.Migrate(dbClient.DB); err != nil {
		appLog.Fatal("failed to run migrations", "error", err)
	}
	gormDB, err := dbClient.Gorm()
	if err != nil {
		appLog.Fatal("failed to initialize gorm", "error", err)
	}

	// --- ClickHouse (tracking events) ---
	chClient, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, appLog)
	if err != nil {
		appLog.Fatal("failed to initialize ClickHouse", "error", err)
	}
	defer chClient.Close()

	if err := chClient.EnsureSchema(ctx); err != nil {
		appLog.Fatal("failed to create ClickHouse tables", "error", err)
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		appLog.Fatal("failed to open GeoIP database", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer geo.Close()

	// --- Stores and services ---
	userStore := store.NewUserStore(dbClient.DB)
	analyticsStore := store.NewAnalyticsStore(chClient)
	contactStore := store.NewContactStore(dbClient.DB)

	analyticsService := services.NewAnalyticsService(analyticsStore, geo, appLog)
	contactService := services.NewContactService(contactStore, services.NewEmailNotifier(cfg.Email, appLog), appLog)
	cmsService := services.NewCMSService(gormDB, appLog)

	resolver := &graph.Resolver{
		Analytics:       analyticsService,
		Contact:         contactService,
		CMS:             cmsService,
		DefaultLanguage: cfg.DefaultLanguage,
		Log:             appLog.With("component", "graphql"),
	}
	shopSchema, err := graph.NewShopSchema(resolver)
	if err != nil {
		appLog.Fatal("failed to parse shop schema", "error", err)
	}
	adminSchema, err := graph.NewAdminSchema(resolver)
	if err != nil {
		appLog.Fatal("failed to parse admin schema", "error", err)
	}

	// --- Handlers ---
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authHandlers := handlers.NewAuthHandlers(userStore, jwtManager, cfg.IsProduction(), appLog)
	trackHandlers := handlers.NewTrackHandlers(analyticsService, appLog)

	if err := authHandlers.EnsureSuperAdmin(ctx, cfg.SuperAdmin.Username, cfg.SuperAdmin.Password); err != nil {
		appLog.Fatal("failed to bootstrap superadmin", "error", err)
	}

	auth := middleware.NewAuth(jwtManager, cfg.APIKey, appLog)
	limiter := middleware.NewRateLimiter(cfg.ShopRateLimit, cfg.ShopRateBurst)
	done := make(chan struct{})
	go limiter.Run(done)

	r := gin.New()
	// An empty list trusts no proxy, so the limiter sees the socket peer.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		appLog.Fatal("invalid TRUSTED_PROXIES", "error", err)
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(appLog.With("component", "http")),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.RequestContext(utils.NewLocaleMatcher(cfg.DefaultLanguage, cfg.SupportedLanguages)),
	)

	r.GET("/health", handlers.Health(map[string]handlers.Pinger{
		"postgres":   dbClient,
		"clickhouse": chClient,
	}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	shop := r.Group("/", limiter.Middleware(), auth.Optional())
	{
		shop.POST("/shop-api", handlers.GraphQL(shopSchema))
		shop.POST("/api/track", trackHandlers.TrackBatch)
	}

	r.POST("/admin-api", auth.Optional(), handlers.GraphQL(adminSchema))

	api := r.Group("/api")
	{
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)
		api.POST("/admin/users", auth.Required(), authHandlers.CreateUser)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("API server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("API server failed", "error", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range signals {
		if sig != syscall.SIGHUP {
			break
		}
		if err := geo.Reload(); err != nil {
			appLog.Error("GeoIP reload failed", "error", err)
			continue
		}
		appLog.Info("GeoIP database reloaded")
	}
	appLog.Info("shutting down server")
	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
	}
	contactService.Wait()

	appLog.Info("server exiting")
}
