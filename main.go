package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"pos/cache"
	"pos/config"
	"pos/controller"
	"pos/database"
	"pos/route"
	"pos/service"
	"pos/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logg := config.GetLogger()

	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database.InitDatabase(cfg)

	rdb := config.ConnectRedis(ctx, cfg.RedisAddress)
	if rdb != nil {
		defer rdb.Close()
	}

	clock := service.NewClock(cfg.Location)
	catalog := service.NewCatalogService(database.DB, cache.NewMenuCache(rdb, cfg.MenuCacheTTL))
	controllers := route.Controllers{
		Catalog:   controller.NewCatalogController(catalog),
		Inventory: controller.NewInventoryController(service.NewInventoryService(database.DB)),
		Order:     controller.NewOrderController(service.NewOrderService(database.DB, clock, cfg.TaxRate)),
		Report:    controller.NewReportController(service.NewReportService(database.DB, clock)),
		Kitchen:   controller.NewKitchenController(service.NewKitchenService(database.DB, clock)),
	}

	router := gin.Default()
	router.Use(utils.RequestID())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	route.RegisterRoutes(router, controllers, cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logg.Warn("JWT_SECRET not set, role checks are disabled")
	}
	serveFrontend(router, cfg.FrontendDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.WithField("port", cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logg.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		config.LogError(logg, "main", "main", "server", nil, err)
		os.Exit(1)
	}
}

// serveFrontend serves a built single-page app when one is present. API misses still get
// JSON 404s.
func serveFrontend(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		log.Println("Frontend build not found, serving API only")
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		})
		return
	}

	router.StaticFS("/static", http.Dir(filepath.Join(dir, "static")))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		c.File(index)
	})
}
