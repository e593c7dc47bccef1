package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/repository"
	"github.com/mtsierradev/servicio-social/internal/repository/rediscache"
	"github.com/mtsierradev/servicio-social/pkg/logger/sl"
)

type StatsService interface {
	// Aggregate returns the global activity statistics for the dashboard.
	Aggregate(ctx context.Context) (*domain.Stats, error)
}

type StatsServiceImpl struct {
	log   *slog.Logger
	query repository.ActivityQueryRepository
	cache *rediscache.Cache
	ttl   time.Duration
}

func NewStatsService(log *slog.Logger, query repository.ActivityQueryRepository, cache *rediscache.Cache, ttl time.Duration) *StatsServiceImpl {
	return &StatsServiceImpl{
		log:   log,
		query: query,
		cache: cache,
		ttl:   ttl,
	}
}

// Aggregate is cache-aside over the stats query: serve the cached aggregate
// when present, otherwise compute and cache it. Cache errors degrade to a
// direct query.
func (s *StatsServiceImpl) Aggregate(ctx context.Context) (*domain.Stats, error) {
	const op = "internal.service.stats.Aggregate"

	var cached domain.Stats

	err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}

	if !errors.Is(err, rediscache.ErrCacheMiss) {
		s.log.Warn("failed to read stats cache", sl.Err(err))
	}

	stats, err := s.query.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get stats: %w", op, err)
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
		s.log.Warn("failed to write stats cache", sl.Err(err))
	}

	return stats, nil
}
