package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/expert-scheduler/internal/db"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/expert-scheduler/internal/logging"
	"github.com/BruksfildServices01/expert-scheduler/internal/metrics"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/notify"
	"github.com/BruksfildServices01/expert-scheduler/internal/payment"
	"github.com/BruksfildServices01/expert-scheduler/internal/routes"
	"github.com/BruksfildServices01/expert-scheduler/internal/storage"
	"github.com/BruksfildServices01/expert-scheduler/internal/video"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	db := dbpkg.NewDB(cfg, logger)

	// ======================================================
	// METRICS
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(reg)

	// ======================================================
	// CACHE
	// ======================================================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	var slotCache *cache.SlotCache
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, slot cache disabled", zap.Error(err))
	} else {
		slotCache = cache.NewSlotCache(rdb, cfg.SlotCacheTTL)
	}
	cancelPing()

	// ======================================================
	// NOTIFICATIONS / AUDIT
	// ======================================================
	email := notify.NewEmailSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	notifier := notify.NewDispatcher(email, notify.NewStubSMSSender(logger), cfg.NotifyQueueSize, logger, bookingMetrics)

	auditor := audit.NewDispatcher(audit.New(db), logger)

	// ======================================================
	// VIDEO
	// ======================================================
	meetings := video.NewRegistry()
	meet, err := video.NewGoogleMeetCreator(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleCalendarID)
	if err != nil {
		logger.Warn("google meet disabled", zap.Error(err))
	} else if meet != nil {
		meetings.Register(models.VideoPlatformGoogleMeet, meet)
	}

	// ======================================================
	// PAYMENTS
	// ======================================================
	var providers []payment.Provider
	if p := payment.NewStripeProvider(cfg.StripeSecretKey); p != nil {
		providers = append(providers, p)
	}
	mp, err := payment.NewMercadoPagoProvider(cfg.MercadoPagoAccessToken)
	if err != nil {
		logger.Warn("mercadopago disabled", zap.Error(err))
	} else if mp != nil {
		providers = append(providers, mp)
	}
	if len(providers) == 0 {
		logger.Info("no payment provider configured")
	}

	// ======================================================
	// STORAGE
	// ======================================================
	s3cfg := storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}
	var images *storage.ImageStore
	if cfg.S3Bucket != "" {
		images = storage.NewImageStore(storage.NewS3Client(s3cfg), s3cfg)
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	deps := routes.Deps{
		Logger:    logger,
		Metrics:   bookingMetrics,
		SlotCache: slotCache,
		Video:     meetings,
		Notify:    notifier,
		Audit:     auditor,
		Payments:  payment.NewChain(logger, providers...),
	}
	if images != nil {
		deps.Images = images
	}
	routes.RegisterRoutes(r, db, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped with error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	// drain queued side effects after the last request finished
	notifier.Close()
	auditor.Close()
}
