package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"ofertasprj/internal/config"
	"ofertasprj/internal/crawler"
	"ofertasprj/internal/logger"
	"ofertasprj/internal/model"
)

// go run ./cmd/crawler -mode=listing
// go run ./cmd/crawler -mode=product -urls="https://www.amazon.com/x/dp/B0ABCDEF12,https://..." -local
func main() {
	mode := flag.String("mode", "listing", "Modo de ejecución: 'listing' o 'product'")
	urlsArg := flag.String("urls", "", "URLs de producto separadas por coma")
	local := flag.Bool("local", false, "Evaluar los selectores localmente con goquery")
	flag.Parse()

	cfg := config.Load()
	logg, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	client := crawler.NewClient(logg, &http.Client{}, cfg.UserAgent, nil)
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
		LocalScrape:     *local || cfg.ScrapeMode == "local",
	})

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *mode == "product" {
		var urls []string
		for _, u := range strings.Split(*urlsArg, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) == 0 {
			logg.Fatal("no product urls given (-urls)")
		}
		_ = crawler.CrawlDetails(ctx, svc, urls, func(u string, d model.ProductDetail, err error) {
			if err != nil {
				logg.Error("crawler.product_failed", zap.String("url", u), zap.Error(err))
				return
			}
			_ = enc.Encode(d)
		})
	} else {
		listing, err := svc.Listing(ctx)
		if err != nil {
			logg.Fatal("crawler.listing_failed", zap.Error(err))
		}
		_ = enc.Encode(listing)
	}

	logg.Info("Crawler finalizado")
}
