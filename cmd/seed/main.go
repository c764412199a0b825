package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/config"
	"github.com/apoorvasinha183/AisleFindYou/internal/publisher"
	"github.com/apoorvasinha183/AisleFindYou/internal/repository"
	"github.com/apoorvasinha183/AisleFindYou/internal/seed"
	"github.com/brianvoe/gofakeit/v7"
)

var errReadOnlySource = errors.New("catalog source is read-only")

func main() {
	seedValue := flag.Uint64("seed", 0, "random seed; 0 picks a random one")
	flag.Parse()

	if err := run(*seedValue); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Database seeding complete!")
}

func run(seedValue uint64) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Persistent() {
		return fmt.Errorf("%w: CATALOG_SOURCE=%s, choose one of sqlite, postgres, mongo", errReadOnlySource, cfg.CatalogSource)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := repository.Open(ctx, cfg.OpenConfig())
	if err != nil {
		return fmt.Errorf("open %s catalog: %w", cfg.CatalogSource, err)
	}
	defer repo.Close()

	writer, ok := repo.(repository.CatalogWriter)
	if !ok {
		return fmt.Errorf("%w: %s", errReadOnlySource, cfg.CatalogSource)
	}

	log.Println("Seeding database with fictitious data...")
	saved, err := writer.ReplaceCatalog(ctx, seed.Generate(gofakeit.New(seedValue), cfg.SeedStoreCount))
	if err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	for _, st := range saved {
		log.Printf("store %d %q at %s with %d items", st.ID, st.Name, st.Location, len(st.Items))
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub := publisher.NewCatalogPublisher(cfg.CatalogTopic, cfg.KafkaBrokers...)
		defer pub.Close()
		if err := pub.PublishReseeded(ctx, len(saved)); err != nil {
			log.Printf("catalog seeded but event not published: %v", err)
		}
	}

	return nil
}
