package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
)

var (
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
	ErrUnknownSource       = errors.New("unknown catalog source")
)

// CatalogRepository is the read side of a catalog source.
// Stores must be returned in a stable order: ascending store id, items in insertion order.
type CatalogRepository interface {
	Stores(ctx context.Context) ([]domain.Store, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	Close() error
}

// CatalogWriter replaces the whole persisted catalog. Used by the seeder.
type CatalogWriter interface {
	ReplaceCatalog(ctx context.Context, stores []domain.Store) ([]domain.Store, error)
}

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// DSN builds a lib/pq connection string.
func (c *Credentials) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName)
}

func validateCatalog(stores []domain.Store) error {
	for i, s := range stores {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: store %d has no name", ErrInvalidCatalogEntry, i)
		}
		for j, item := range s.Items {
			if strings.TrimSpace(item.Name) == "" {
				return fmt.Errorf("%w: store %q item %d has no name", ErrInvalidCatalogEntry, s.Name, j)
			}
			if item.Price.IsNegative() {
				return fmt.Errorf("%w: store %q item %q has negative price %s", ErrInvalidCatalogEntry, s.Name, item.Name, item.Price)
			}
		}
	}
	return nil
}
