package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

const sqliteItemNamesQuery = `SELECT DISTINCT name FROM items`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Stores(ctx context.Context) ([]domain.Store, error) {
	return queryStores(ctx, r.db)
}

// Suggest matches in Go because sqlite's LIKE and lower() only fold ASCII.
func (r *SQLiteRepository) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	all, err := queryNames(ctx, r.db, sqliteItemNamesQuery)
	if err != nil {
		return nil, err
	}
	return filterNames(all, prefix, limit), nil
}

func (r *SQLiteRepository) ReplaceCatalog(ctx context.Context, stores []domain.Store) ([]domain.Store, error) {
	if err := validateCatalog(stores); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return nil, fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stores`); err != nil {
		return nil, fmt.Errorf("clear stores: %w", err)
	}

	saved := cloneStores(stores)
	for i := range saved {
		res, err := tx.ExecContext(ctx, `INSERT INTO stores (name, location) VALUES (?, ?)`, saved[i].Name, saved[i].Location)
		if err != nil {
			return nil, fmt.Errorf("insert store %q: %w", saved[i].Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("store id: %w", err)
		}
		saved[i].ID = id

		for _, item := range saved[i].Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (name, price, store_id) VALUES (?, ?, ?)`,
				item.Name, item.Price.String(), id); err != nil {
				return nil, fmt.Errorf("insert item %q: %w", item.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
