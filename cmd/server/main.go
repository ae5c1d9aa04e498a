package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/pawtalk/pet-translator/docs"
	"github.com/pawtalk/pet-translator/internal/cache"
	"github.com/pawtalk/pet-translator/internal/config"
	"github.com/pawtalk/pet-translator/internal/handler"
	"github.com/pawtalk/pet-translator/internal/logger"
	"github.com/pawtalk/pet-translator/internal/service"
	"github.com/pawtalk/pet-translator/internal/web"
)

// @title Pet Translator API
// @version 1.0
// @description Upload a pet photo and read its thoughts.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.LevelInfo).Fatalf("config error: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	translator, err := newTranslator(ctx, cfg)
	if err != nil {
		log.Fatalf("translator error: %v", err)
	}
	translateService := service.NewTranslateService(log, translator, cfg.Translator.Timeout)

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warnw("redis is not reachable yet", "addr", cfg.RedisConfig.Addr, "error", err)
		}
		translateService.SetCacheClient(redisCache)
		log.Infow("set redis as cache", "addr", cfg.RedisConfig.Addr)
	}

	page, err := web.NewRenderer(log, "/api/upload", cfg.Upload.FieldName)
	if err != nil {
		log.Fatalf("page error: %v", err)
	}

	upload := handler.NewUploadHandler(translateService, log, cfg.Upload)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler.NewRouter(cfg.Server, log, upload, page.Index),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server started",
			"port", cfg.Server.Port,
			"provider", translator.Name(),
			"model", translator.Model(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server stopped")
}

func newTranslator(ctx context.Context, cfg *config.Config) (service.Translator, error) {
	switch cfg.Translator.Provider {
	case config.ProviderGemini:
		return service.NewGeminiTranslator(ctx, cfg.Gemini)
	case config.ProviderOpenAI:
		return service.NewOpenAITranslator(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Translator.Provider)
	}
}
