package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/cache"
	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/apoorvasinha183/AisleFindYou/internal/repository"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
	catalogLoadTimeout      = 10 * time.Second
)

// CatalogService fronts a catalog repository with a snapshot cache and circuit breakers.
type CatalogService struct {
	repo           repository.CatalogRepository
	cache          cache.CatalogCache
	storesBreaker  *gobreaker.CircuitBreaker[[]domain.Store]
	suggestBreaker *gobreaker.CircuitBreaker[[]string]
	sfg            singleflight.Group // Prevents cache stampede
	generation     atomic.Uint64      // bumped by Invalidate
}

func NewCatalogService(repo repository.CatalogRepository, c cache.CatalogCache) *CatalogService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &CatalogService{
		repo:           repo,
		cache:          c,
		storesBreaker:  gobreaker.NewCircuitBreaker[[]domain.Store](breakerSettings("catalog-stores")),
		suggestBreaker: gobreaker.NewCircuitBreaker[[]string](breakerSettings("catalog-suggest")),
	}
}

func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		// A caller giving up is not a sign of an unhealthy catalog.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
}

// Stores returns the current catalog snapshot. Concurrent callers share one
// load, which runs detached from any single caller's context; each caller still
// returns as soon as its own context is done.
func (s *CatalogService) Stores(ctx context.Context) ([]domain.Store, error) {
	gen := s.generation.Load()
	ch := s.sfg.DoChan("stores:"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		return s.loadStores(loadCtx, gen)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Store), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *CatalogService) loadStores(ctx context.Context, gen uint64) ([]domain.Store, error) {
	stores, err := s.cache.Get(ctx)
	if err == nil {
		return stores, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("cache get error: %v", err) // log cache error but continue
	}

	stores, err = s.storesBreaker.Execute(func() ([]domain.Store, error) {
		return s.repo.Stores(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	go s.fillCache(stores, gen)

	return stores, nil
}

// fillCache stores a snapshot read under generation gen. A snapshot that an
// Invalidate has overtaken is never left in the cache: it is skipped, or
// deleted again if the invalidation landed while Set was in flight.
func (s *CatalogService) fillCache(stores []domain.Store, gen uint64) {
	if s.generation.Load() != gen {
		return
	}
	ctx := context.Background()
	if err := s.cache.Set(ctx, stores); err != nil {
		log.Printf("cache set error: %v", err)
		return
	}
	if s.generation.Load() != gen {
		if err := s.cache.Delete(ctx); err != nil {
			log.Printf("cache delete error: %v", err)
		}
	}
}

func (s *CatalogService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	names, err := s.suggestBreaker.Execute(func() ([]string, error) {
		return s.repo.Suggest(ctx, prefix, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return names, nil
}

// Invalidate drops the cached snapshot so the next Stores call reads the repository.
// Loads already in flight are neither joined nor cached afterwards.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	s.generation.Add(1)
	return s.cache.Delete(ctx)
}
