package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ofertasprj/internal/api"
	"ofertasprj/internal/cache"
	"ofertasprj/internal/config"
	"ofertasprj/internal/crawler"
	"ofertasprj/internal/logger"
)

func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pageCache crawler.Cache
	if cfg.RedisURL != "" {
		store := cache.New(cfg.RedisURL, cfg.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			logg.Warn("cache.unavailable", zap.Error(err))
		} else {
			logg.Info("cache.enabled", zap.Duration("ttl", store.TTL))
		}
		cancel()
		pageCache = store
		defer store.Close()
	}

	client := crawler.NewClient(logg, &http.Client{}, cfg.UserAgent, pageCache)
	parser := crawler.NewParser(crawler.Affiliate{
		Tag:      cfg.AffiliateTag,
		Language: cfg.AffiliateLanguage,
		Currency: cfg.AffiliateCurrency,
	})
	svc := crawler.NewService(logg, client, parser, crawler.Settings{
		ListingURL:      crawler.ListingURL(cfg.RendererURL, crawler.DealsPageURL(cfg.DealsLanguage, cfg.DiscountMin, cfg.DiscountMax)),
		ScraperURL:      cfg.ScraperURL,
		ProductLanguage: cfg.ProductLanguage,
		ListingTimeout:  cfg.ListingTimeout,
		DetailTimeout:   cfg.DetailTimeout,
		LocalScrape:     cfg.ScrapeMode == "local",
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		DisableStartupMessage: true,
	})
	api.RegisterRoutes(app, logg, cfg, api.NewDealsHandler(logg, svc))

	go func() {
		<-ctx.Done()
		logg.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logg.Info("server listening",
		zap.String("port", cfg.Port),
		zap.Strings("allowed_domains", cfg.AllowedDomains),
		zap.String("scrape_mode", cfg.ScrapeMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logg.Fatal("server failed", zap.Error(err))
	}
}
