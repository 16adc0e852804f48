package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/config"
	dbpkg "github.com/salutech-dev/medbook-api/internal/db"
	"github.com/salutech-dev/medbook-api/internal/logging"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
