package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/api"
	"github.com/jengzang/evjourney-backend-go/internal/config"
	"github.com/jengzang/evjourney-backend-go/internal/database"
	"github.com/jengzang/evjourney-backend-go/internal/logging"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/middleware"
	"github.com/jengzang/evjourney-backend-go/internal/repository"
	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server stopped:", err)
		os.Exit(1)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, flush, err := logging.Init(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer flush()
	gin.SetMode(cfg.GinMode)

	jwtSecret := cfg.JWTSecret
	if cfg.UsesDefaultSecret() {
		// tokens will not survive a restart, which sessions never do anyway
		jwtSecret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using a random per-process secret")
	}

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	annotations := annotation.NewStore(repository.NewAnnotationRepository(db))
	if err := annotations.Load(ctx); err != nil {
		return err
	}

	sessions := session.NewStore(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	m := metrics.New()
	m.RegisterSessionGauge(func() float64 { return float64(sessions.Len()) })

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit)
		defer limiter.Stop()
	}

	// 初始化路由
	router := api.SetupRouter(api.Dependencies{
		Config:      cfg,
		Journeys:    service.NewJourneyService(sessions, session.NewTokenIssuer(jwtSecret, cfg.SessionTTL), annotations, m),
		Annotations: service.NewAnnotationService(annotations, m),
		Metrics:     m,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		// 启动服务器
		logger.Info("server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
