package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coffeeshop/config"
	"coffeeshop/database"
	"coffeeshop/repository"
	"coffeeshop/route"
	"coffeeshop/service"
	"coffeeshop/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDatabase(cfg.DatabaseDSN, cfg.Release())
	if err != nil {
		log.Fatalf("Database initialisation failed: %v", err)
	}

	// Set Gin mode
	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	images, err := service.NewDirImageStore(cfg.ImagesDir)
	if err != nil {
		log.Fatalf("Failed to create images directory: %v", err)
	}

	store := repository.NewStore(db)
	tokens := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	deps := route.Dependencies{
		Catalog:   service.NewCatalogService(store),
		Favorites: service.NewFavoriteService(store),
		Carts:     service.NewCartService(store),
		Orders:    service.NewOrderService(store),
		Accounts:  service.NewAccountService(store, utils.NewBcryptHasher(), tokens),
		Images:    images,
		Tokens:    tokens,
	}

	// Initialize router
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	log.Println("CORS configured")

	route.CoffeeRoutes(router, deps)
	log.Println("Routes configured successfully")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Println("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server stopped")
}
