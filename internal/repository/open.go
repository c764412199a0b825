package repository

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
)

const (
	SourceStatic   = "static"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

// Sources lists every catalog source Open understands.
var Sources = []string{SourceStatic, SourceSQLite, SourcePostgres, SourceMongo}

type OpenConfig struct {
	Source      string
	DatabaseURL string // takes precedence over Credentials
	Credentials Credentials
	DBPath      string
	MongoURI    string
	MongoDBName string
}

// Open connects to the configured source and prepares its schema. SQL sources
// run the migrations found under Credentials.MigrationsDirPath/<source>.
func Open(ctx context.Context, cfg OpenConfig) (CatalogRepository, error) {
	switch cfg.Source {
	case SourceStatic:
		return NewStaticRepository(DefaultFixture()), nil

	case SourceSQLite:
		repo, err := NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := repo.RunMigrations(filepath.Join(cfg.Credentials.MigrationsDirPath, SourceSQLite)); err != nil {
			repo.Close()
			return nil, err
		}
		log.Printf("using sqlite catalog at %s", cfg.DBPath)
		return repo, nil

	case SourcePostgres:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.Credentials.DSN()
		}
		repo, err := NewPostgresRepository(dsn)
		if err != nil {
			return nil, err
		}
		if err := repo.RunMigrations(filepath.Join(cfg.Credentials.MigrationsDirPath, SourcePostgres)); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil

	case SourceMongo:
		db, err := ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		repo := NewMongoRepository(db)
		if err := repo.CreateIndexes(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		log.Printf("using mongo catalog %s", cfg.MongoDBName)
		return repo, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}
