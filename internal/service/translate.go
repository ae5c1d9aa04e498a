package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pawtalk/pet-translator/internal/metrics"
	"github.com/pawtalk/pet-translator/internal/models"
	"go.uber.org/zap"
)

// Translator turns one pet photo into the pet's "voice".
type Translator interface {
	Name() string
	Model() string
	Translate(ctx context.Context, img models.Image) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type TranslateService struct {
	logger     *zap.SugaredLogger
	translator Translator
	timeout    time.Duration
	cache      Cache
}

// NewTranslateService wraps translator with a per-call deadline. A zero
// timeout leaves the caller's context untouched.
func NewTranslateService(logger *zap.SugaredLogger, translator Translator, timeout time.Duration) *TranslateService {
	return &TranslateService{
		logger:     logger,
		translator: translator,
		timeout:    timeout,
	}
}

func (s *TranslateService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Translate calls the model exactly once unless a cached answer exists.
func (s *TranslateService) Translate(ctx context.Context, img models.Image) (string, error) {
	provider := s.translator.Name()
	key := getCacheKey(provider, s.translator.Model(), img.Data)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warnw("cache get failed", "error", err)
		}
		if found {
			s.logger.Debugw("served from cache", "filename", img.Filename)
			metrics.TranslationsTotal(provider, metrics.StatusCacheHit)
			return cached, nil
		}
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debugw("starting translation", "provider", provider, "filename", img.Filename, "size", len(img.Data))
	start := time.Now()
	text, err := s.translator.Translate(callCtx, img)
	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	metrics.TranslationsTotal(provider, status)
	metrics.TranslationDuration(provider, status, time.Since(start))
	if err != nil {
		if img.Filename == "" {
			return "", fmt.Errorf("translate: %w", err)
		}
		return "", fmt.Errorf("translate %q: %w", img.Filename, err)
	}
	s.logger.Debugw("translation finished", "provider", provider, "result_len", len(text))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text); err != nil {
			s.logger.Warnw("cache set failed", "error", err)
		}
	}
	return text, nil
}

func getCacheKey(provider, model string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{'|'})
	h.Write([]byte(model))
	h.Write([]byte{'|'})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
