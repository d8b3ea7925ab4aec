package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/cache"
	"github.com/Fouxth/Bookielocal/config"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/report"
	"github.com/Fouxth/Bookielocal/routers"
	"github.com/Fouxth/Bookielocal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ Failed to load config")
	}
	cfg.SetupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ตั้งค่าการเชื่อมต่อฐานข้อมูล
	db, err := database.SetupDatabaseConnection(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("❌ Failed to connect to the database")
	}
	if cfg.IsDevelopment() {
		if err := database.Migrate(db); err != nil {
			logrus.WithError(err).Fatal("❌ Failed to migrate")
		}
	}
	if err := database.EnsureSettings(db); err != nil {
		logrus.WithError(err).Fatal("❌ Failed to seed settings")
	}

	deps := &handlers.Deps{DB: db, RecomputeWorkers: cfg.RecomputeWorkers}

	// redis (ไม่บังคับ)
	rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, summary cache disabled")
	}
	deps.Cache = cache.NewSummaryCache(rc, cfg.SummaryCacheTTL)

	// S3 archive (ไม่บังคับ)
	archiver, err := report.NewS3Archiver(ctx, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		logrus.WithError(err).Warn("s3 unavailable, settlements will not be archived")
	}
	if archiver != nil {
		deps.Archiver = archiver
	}

	scheduler := services.NewScheduler(db, deps.Archiver)
	if err := scheduler.Start(cfg.SettleCron); err != nil {
		logrus.WithError(err).Fatal("❌ Failed to start settlement scheduler")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	// เรียกใช้ routes จาก package routers
	routers.SetupRouter(r, deps)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logrus.Infof("🚀 Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("❌ Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}
	scheduler.Stop()
	if rc != nil {
		_ = rc.Close()
	}
}
