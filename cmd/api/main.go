package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/cache"
	"github.com/apoorvasinha183/AisleFindYou/internal/config"
	h "github.com/apoorvasinha183/AisleFindYou/internal/http"
	"github.com/apoorvasinha183/AisleFindYou/internal/poller"
	"github.com/apoorvasinha183/AisleFindYou/internal/repository"
	s "github.com/apoorvasinha183/AisleFindYou/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repo, err := repository.Open(ctx, cfg.OpenConfig())
	if err != nil {
		log.Fatalf("Failed to open %s catalog: %v", cfg.CatalogSource, err)
	}
	defer repo.Close()
	log.Printf("Catalog source: %s", cfg.CatalogSource)

	// A static catalog never changes, so caching and events only apply to persistent sources.
	var catalogCache cache.CatalogCache = cache.NoopCache{}
	if cfg.Persistent() && cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		catalogCache = cache.NewRedisCache(redisClient)
	}

	catalog := s.NewCatalogService(repo, catalogCache)
	shopping := s.NewShoppingService(catalog)

	var wg sync.WaitGroup
	if cfg.Persistent() && len(cfg.KafkaBrokers) > 0 {
		p := poller.NewPoller(catalog, cfg.CatalogTopic, cfg.KafkaBrokers...)
		defer p.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Run(ctx)
		}()
		log.Printf("Listening for catalog events on %s", cfg.CatalogTopic)
	}

	router := h.NewRouter(h.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, h.NewShoppingHandler(shopping, cfg.RequestTimeout))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("AisleFindYou API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	stop()
	wg.Wait()
	log.Println("server exited")
}
