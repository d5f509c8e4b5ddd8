package main

import (
	"context"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"warehouse/docs"
	"warehouse/internal/auth"
	"warehouse/internal/cache"
	"warehouse/internal/config"
	"warehouse/internal/errors"
	"warehouse/internal/handler"
	"warehouse/internal/router"
	"warehouse/internal/service"
	"warehouse/internal/store"
)

// @title Warehouse Inventory API
// @version 1.0
// @description Inventory API with product CRUD, API key and JWT role based access, and JSON/XML listings.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errors.HTTPErrorHandler
	e.Logger.SetLevel(glog.INFO)

	documents, err := store.Open(cfg, e.Logger)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	log.Printf("Using %s store", cfg.StoreDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unreachable at %s, logout will not revoke tokens: %v", cfg.RedisAddr, err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	productService := service.NewProductService(documents.Products)
	authService := service.NewAuthService(documents.Users, jwtService, tokenStore)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		handler.NewProductHandler(productService),
		handler.NewAuthHandler(authService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down HTTP server...")
				return e.Shutdown(ctx)
			},
			"store": func(ctx context.Context) error {
				return documents.Close()
			},
			"redis": func(ctx context.Context) error {
				return cacheClient.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}
