package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	Env         string
	LogLevel    string
	Port        string

	AllowedDomains []string
	AnalyticsID    string
	StaticDir      string

	RendererURL     string
	DealsLanguage   string
	DiscountMin     int
	DiscountMax     int
	ScraperURL      string
	ScrapeMode      string // "proxy" o "local"
	ProductLanguage string
	UserAgent       string
	ListingTimeout  time.Duration
	DetailTimeout   time.Duration

	AffiliateTag      string
	AffiliateLanguage string
	AffiliateCurrency string

	RedisURL string
	CacheTTL time.Duration
}

func Load() *Config {
	// Carga .env si existe; si no, solo variables de entorno
	_ = godotenv.Load()
	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "ofertas-api"),
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnv("PORT", "3000"),

		AllowedDomains: getEnvList("ALLOWED_DOMAINS", []string{"http://localhost:3000"}),
		AnalyticsID:    getEnv("ANALYTICS_ID", ""),
		StaticDir:      getEnv("STATIC_DIR", "public"),

		RendererURL:     getEnv("RENDERER_URL", "https://r.jina.ai/"),
		DealsLanguage:   getEnv("DEALS_LANGUAGE", "es"),
		DiscountMin:     getEnvInt("DEALS_DISCOUNT_MIN", 20),
		DiscountMax:     getEnvInt("DEALS_DISCOUNT_MAX", 80),
		ScraperURL:      getEnv("SCRAPER_URL", "https://web.scraper.workers.dev/"),
		ScrapeMode:      getEnv("SCRAPE_MODE", "proxy"),
		ProductLanguage: getEnvOptional("PRODUCT_LANGUAGE", "es_US"),
		UserAgent:       getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		ListingTimeout:  getEnvDuration("LISTING_TIMEOUT", 15*time.Second),
		DetailTimeout:   getEnvDuration("DETAIL_TIMEOUT", 30*time.Second),

		AffiliateTag:      getEnv("AFFILIATE_TAG", "topbeauty0d-20"),
		AffiliateLanguage: getEnv("AFFILIATE_LANGUAGE", "es_US"),
		AffiliateCurrency: getEnvOptional("AFFILIATE_CURRENCY", "COP"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getEnvDuration("CACHE_TTL", 10*time.Minute),
	}
}

// LocalHosts are the Host values accepted on /api without an Origin header.
func (c *Config) LocalHosts() []string {
	return []string{"localhost:" + c.Port, "127.0.0.1:" + c.Port}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// getEnvOptional distingue "no definida" de "definida vacía" (vacía desactiva el parámetro).
func getEnvOptional(k, d string) string {
	if v, ok := os.LookupEnv(k); ok {
		return strings.TrimSpace(v)
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}

func getEnvList(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return d
	}
	return out
}
