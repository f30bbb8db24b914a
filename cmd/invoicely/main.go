package main

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"invoicely/client/internal/billing"
	"invoicely/client/internal/cache"
	"invoicely/client/internal/config"
	"invoicely/client/internal/keyval"
	"invoicely/client/internal/render"
	"invoicely/client/internal/service"
	"invoicely/client/internal/store"
	"invoicely/client/internal/store/memory"
	"invoicely/client/internal/store/rest"
	"invoicely/client/internal/tui"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var repo store.Repository
	closers := make([]func() error, 0, 1)

	if cfg.APIBaseURL != "" {
		repo = rest.New(cfg.APIBaseURL, time.Duration(cfg.APITimeoutSeconds)*time.Second)
		log.Printf("repository: remote api at %s", cfg.APIBaseURL)
	} else {
		repo = memory.NewSeeded()
		log.Println("repository: in-memory (demo mode, set API_BASE_URL to use the remote api)")
	}

	catalogCache := cache.CatalogCache(cache.NoopCatalogCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCatalogCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			catalogCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("cache: redis")
		}
	}

	draftStore, err := keyval.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("local draft storage unavailable: %v", err)
	}

	svc := service.New(repo, catalogCache, time.Duration(cfg.CatalogTTLSeconds)*time.Second)
	builder := billing.NewBuilder(draftStore)
	renderer := render.NewRenderer(cfg.ExportDir, cfg.CurrencySymbol)

	program := tea.NewProgram(tui.New(svc, builder, renderer, cfg.CurrencySymbol), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("ui error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}
}
