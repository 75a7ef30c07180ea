package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/auth"
	"github.com/fekuna/omnipos-production-service/internal/product"
	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/fekuna/omnipos-production-service/pkg/cache"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"go.uber.org/zap"
)

// Cache is the subset of the Redis client used for process-step caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type productUseCase struct {
	repo   product.Repository
	cache  Cache
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache Cache, ttl time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *productUseCase) FindProcessSteps(ctx context.Context, articleNumber string) ([]production.ProcessStep, error) {
	merchantID := auth.GetMerchantID(ctx)
	key := cacheKey(merchantID, articleNumber)

	// 1. Check Cache
	if names, ok := uc.cached(ctx, key); ok {
		return toSteps(names), nil
	}

	// 2. DB Query
	rows, err := uc.repo.FindProcessSteps(ctx, merchantID, articleNumber)
	if err != nil {
		return nil, fmt.Errorf("find process steps of %s: %w", articleNumber, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("product %q: %w", articleNumber, production.ErrNotFound)
	}

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.StepName
	}

	// 3. Set Cache
	if data, err := json.Marshal(names); err == nil {
		if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
			uc.logger.Warn("failed to cache process steps", zap.String("article_number", articleNumber), zap.Error(err))
		}
	}
	return toSteps(names), nil
}

func (uc *productUseCase) cached(ctx context.Context, key string) ([]string, bool) {
	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("process step cache unavailable", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil || len(names) == 0 {
		return nil, false
	}
	return names, true
}

func cacheKey(merchantID, articleNumber string) string {
	return fmt.Sprintf("products:steps:%s:%s", merchantID, articleNumber)
}

func toSteps(names []string) []production.ProcessStep {
	steps := make([]production.ProcessStep, len(names))
	for i, n := range names {
		steps[i] = production.ProcessStep{Name: n}
	}
	return steps
}
