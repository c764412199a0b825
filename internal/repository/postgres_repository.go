package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Names are grouped rather than DISTINCT so the byte-order COLLATE "C" sort is allowed.
const postgresSuggestQuery = `
	SELECT name
	FROM items
	WHERE LOWER(name) LIKE LOWER($1) ESCAPE '\'
	GROUP BY name
	ORDER BY name COLLATE "C"
	LIMIT $2
`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a pool for dsn, either a URL or a key=value string
// such as Credentials.DSN.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	log.Println("connected to postgres")
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "catalog_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) Stores(ctx context.Context) ([]domain.Store, error) {
	return queryStores(ctx, r.db)
}

func (r *PostgresRepository) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return querySuggestions(ctx, r.db, postgresSuggestQuery, prefix, limit)
}

func (r *PostgresRepository) ReplaceCatalog(ctx context.Context, stores []domain.Store) ([]domain.Store, error) {
	if err := validateCatalog(stores); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE items, stores RESTART IDENTITY`); err != nil {
		return nil, fmt.Errorf("clear catalog: %w", err)
	}

	saved := cloneStores(stores)
	for i := range saved {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO stores (name, location) VALUES ($1, $2) RETURNING id`,
			saved[i].Name, saved[i].Location).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert store %q: %w", saved[i].Name, err)
		}
		saved[i].ID = id

		for _, item := range saved[i].Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (name, price, store_id) VALUES ($1, $2, $3)`,
				item.Name, item.Price, id); err != nil {
				return nil, fmt.Errorf("insert item %q: %w", item.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
