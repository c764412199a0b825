package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/apoorvasinha183/AisleFindYou/internal/cache"
	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/apoorvasinha183/AisleFindYou/internal/repository"
)

type mockRepository struct {
	stores       []domain.Store
	err          error
	storesCalls  atomic.Int32
	suggestCalls atomic.Int32
	lastPrefix   string
	lastLimit    int
}

func (m *mockRepository) Stores(context.Context) ([]domain.Store, error) {
	m.storesCalls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.stores, nil
}

func (m *mockRepository) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	m.suggestCalls.Add(1)
	m.lastPrefix = prefix
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return repository.SuggestNames(m.stores, prefix, limit), nil
}

func (m *mockRepository) Close() error { return nil }

type mockCache struct {
	mu      sync.Mutex
	stores  []domain.Store
	getErr  error
	sets    int
	deletes int
}

func (m *mockCache) Get(context.Context) ([]domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.stores == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.stores, nil
}

func (m *mockCache) Set(_ context.Context, stores []domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = stores
	m.sets++
	return nil
}

func (m *mockCache) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = nil
	m.deletes++
	return nil
}

func (m *mockCache) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// gatedCache holds the first Set until release is closed.
type gatedCache struct {
	mockCache
	setEntered chan struct{}
	release    chan struct{}
	setsDone   atomic.Int32
}

func newGatedCache() *gatedCache {
	return &gatedCache{setEntered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedCache) Set(ctx context.Context, stores []domain.Store) error {
	select {
	case g.setEntered <- struct{}{}:
	default:
	}
	<-g.release
	err := g.mockCache.Set(ctx, stores)
	g.setsDone.Add(1)
	return err
}

func (g *gatedCache) cached() []domain.Store {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stores
}

// gatedRepository blocks Stores until release is closed or ctx is done.
type gatedRepository struct {
	mockRepository
	entered chan struct{}
	release chan struct{}
}

func newGatedRepository(stores []domain.Store) *gatedRepository {
	return &gatedRepository{
		mockRepository: mockRepository{stores: stores},
		entered:        make(chan struct{}, 1),
		release:        make(chan struct{}),
	}
}

func (g *gatedRepository) Stores(ctx context.Context) ([]domain.Store, error) {
	g.storesCalls.Add(1)
	select {
	case g.entered <- struct{}{}:
	default:
	}
	select {
	case <-g.release:
		return g.stores, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
