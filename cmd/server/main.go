package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecm-catalogue-service/internal/adapters/primary/fixture"
	"ecm-catalogue-service/internal/adapters/primary/http/handlers"
	"ecm-catalogue-service/internal/adapters/primary/http/middleware"
	"ecm-catalogue-service/internal/adapters/secondary/prometheus"
	"ecm-catalogue-service/internal/adapters/secondary/store"
	"ecm-catalogue-service/internal/config"
	"ecm-catalogue-service/internal/core/services"

	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open catalogue store: %v", err)
	}
	defer st.Close()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	catalogueSvc := services.NewCatalogueService(st.Repo)

	var minerOpts []services.MinerOption
	registry := promclient.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		minerOpts = append(minerOpts, services.WithMetrics(prometheus.NewMiningRecorder(registry)))
		log.Info("mining metrics enabled")
	}
	minerSvc := services.NewMinerService(st.Repo, minerOpts...)

	if cfg.Store.SeedFile != "" {
		if _, err := fixture.LoadFile(context.Background(), catalogueSvc, cfg.Store.SeedFile); err != nil {
			log.Fatalf("seed catalogue: %v", err)
		}
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(catalogueSvc, minerSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	api := router.Group("/api/v1/ecm")
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.Store.Driver})
	})
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
