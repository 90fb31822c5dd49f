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

	"github.com/BerylCAtieno/icp-generator/internal/a2a"
	"github.com/BerylCAtieno/icp-generator/internal/config"
	"github.com/BerylCAtieno/icp-generator/internal/inflight"
	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/metrics"
	"github.com/BerylCAtieno/icp-generator/internal/profiler"
	"github.com/BerylCAtieno/icp-generator/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	os.Exit(serve(cfg, logger.NewStructured(cfg.Log.Level, cfg.Log.Format)))
}

// serve runs the server and returns the process exit code. The logger is
// flushed on every path since os.Exit skips deferred calls.
func serve(cfg *config.Config, log logger.Logger) int {
	err := run(cfg, log)
	if err != nil {
		log.WithError(err).Error("server stopped", nil)
	}
	_ = log.Sync()
	if err != nil {
		return 1
	}
	return 0
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, closeGenerator, err := newGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGenerator()

	guard, closeGuard, err := newGuard(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGuard()

	if gin.Mode() != gin.TestMode && cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())

	if err := web.NewHandler(generator, guard, log).Register(router); err != nil {
		return fmt.Errorf("register web routes: %w", err)
	}

	a2aHandler := a2a.NewA2AHandler(generator, log)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/profiler", a2aHandler.HandleProfiler)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("ICP generator starting", map[string]interface{}{
			"port":     cfg.Port,
			"backend":  cfg.Profiler.Backend,
			"inflight": cfg.Inflight.Backend,
			"delay":    cfg.Profiler.Delay.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newGenerator(ctx context.Context, cfg *config.Config, log logger.Logger) (profiler.Generator, func(), error) {
	switch cfg.Profiler.Backend {
	case config.BackendGemini:
		client, err := profiler.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini client: %w", err)
		}
		return client, func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("failed to close gemini client", nil)
			}
		}, nil
	default:
		return profiler.NewTemplateGenerator(cfg.Profiler.Delay, log), func() {}, nil
	}
}

func newGuard(ctx context.Context, cfg *config.Config, log logger.Logger) (inflight.Guard, func(), error) {
	if cfg.Inflight.Backend != config.InflightRedis {
		return inflight.NewMemoryGuard(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	guard := inflight.NewRedisGuard(client, cfg.Inflight.TTL, log)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := guard.Ping(pingCtx); err != nil {
		_ = guard.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	return guard, func() { _ = guard.Close() }, nil
}
