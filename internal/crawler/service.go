package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"ofertasprj/internal/model"
	"ofertasprj/internal/observability"
)

const (
	proxyRenderer = "renderer"
	proxyScraper  = "scraper"
	proxyDirect   = "direct"
)

// Settings are the proxy endpoints and timeouts the Service works with.
type Settings struct {
	ListingURL      string // documento markdown ya renderizado
	ScraperURL      string
	ProductLanguage string
	Selectors       []string
	ListingTimeout  time.Duration
	DetailTimeout   time.Duration
	LocalScrape     bool // evaluar selectores con goquery en vez del scraper
}

// Service fetches the external documents and hands them to the parser.
type Service struct {
	client   *Client
	parser   *Parser
	settings Settings
	logger   *zap.Logger
}

func NewService(logger *zap.Logger, client *Client, parser *Parser, settings Settings) *Service {
	if len(settings.Selectors) == 0 {
		settings.Selectors = DefaultSelectors
	}
	return &Service{
		client:   client,
		parser:   parser,
		settings: settings,
		logger:   logger,
	}
}

// Listing fetches the deals document and parses every product block.
func (s *Service) Listing(ctx context.Context) (model.Listing, error) {
	body, err := s.client.Fetch(ctx, proxyRenderer, s.settings.ListingURL, map[string]string{
		"Accept": "text/markdown, text/plain, */*",
	}, s.settings.ListingTimeout)
	if err != nil {
		return model.Listing{}, err
	}

	products := s.parser.ParseListing(string(body))
	observability.ProductsParsedTotal.Add(float64(len(products)))
	s.logger.Info("crawler.listing_parsed", zap.Int("products", len(products)))

	return model.Listing{
		ProductsCount: len(products),
		Products:      products,
	}, nil
}

// Detail scrapes one product page. ErrInvalidData is returned when the
// scraper answered without a usable result map.
func (s *Service) Detail(ctx context.Context, productURL string) (model.ProductDetail, error) {
	raw, err := s.rawDetail(ctx, productURL)
	if err != nil {
		return model.ProductDetail{}, err
	}

	detail, err := s.parser.ParseDetail(raw)
	if errors.Is(err, ErrInvalidData) {
		observability.DetailsParsedTotal.WithLabelValues("invalid").Inc()
		s.logger.Warn("crawler.detail_invalid", zap.String("url", productURL))
		return detail, err
	}
	observability.DetailsParsedTotal.WithLabelValues("ok").Inc()
	s.logger.Info("crawler.detail_parsed",
		zap.String("url", productURL),
		zap.Int("elements_found", detail.Metadata.ElementsFound))
	return detail, err
}

func (s *Service) rawDetail(ctx context.Context, productURL string) (*RawDetail, error) {
	if s.settings.LocalScrape {
		pageURL := productPageURL(productURL, s.settings.ProductLanguage)
		body, err := s.client.Fetch(ctx, proxyDirect, pageURL, nil, s.settings.DetailTimeout)
		if err != nil {
			return nil, err
		}
		raw, err := ScrapeSelectors(string(body), s.settings.Selectors)
		if err != nil {
			// HTML ilegible: se trata igual que un resultado vacío del scraper
			s.logger.Warn("crawler.local_scrape_failed", zap.String("url", pageURL), zap.Error(err))
			return nil, nil
		}
		return raw, nil
	}

	scrapeURL := ScrapeURL(s.settings.ScraperURL, productURL, s.settings.ProductLanguage, s.settings.Selectors)
	body, err := s.client.fetch(ctx, proxyScraper, scrapeURL, nil, s.settings.DetailTimeout, hasResult)
	if err != nil {
		return nil, err
	}

	var raw RawDetail
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Warn("crawler.decode_failed", zap.String("url", scrapeURL), zap.Error(err))
		return nil, nil
	}
	return &raw, nil
}

// hasResult reports whether a scraper body carries a result map. Bodies
// without one (blocks, captchas) are not cached.
func hasResult(body []byte) bool {
	var raw RawDetail
	return json.Unmarshal(body, &raw) == nil && raw.Result != nil
}
