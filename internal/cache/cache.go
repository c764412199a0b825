package cache

import (
	"context"
	"errors"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
)

type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Store, error)
	Set(ctx context.Context, stores []domain.Store) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache never holds anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]domain.Store, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, []domain.Store) error { return nil }
func (NoopCache) Delete(context.Context) error { return nil }
