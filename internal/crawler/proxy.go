package crawler

import (
	"fmt"
	"strings"
)

const (
	DefaultRendererURL = "https://r.jina.ai/"
	DefaultScraperURL  = "https://web.scraper.workers.dev/"
)

// DealsPageURL builds the deals page address filtered by discount range.
func DealsPageURL(language string, minDiscount, maxDiscount int) string {
	widget := fmt.Sprintf(`"{"state":{"rangeRefinementFilters":{"percentOff":{"min":%d,"max":%d}}},"version":1}"`, minDiscount, maxDiscount)
	return fmt.Sprintf(
		"https://www.amazon.com/deals?language=%s&_encoding=UTF8&discounts-widget=%s",
		language,
		strings.ReplaceAll(widget, `"`, "%22"),
	)
}

// ListingURL returns the address of the markdown rendering of pageURL.
func ListingURL(rendererURL, pageURL string) string {
	return rendererURL + pageURL
}

// ScrapeURL builds the selector scraper request for productURL. language is
// appended to the product URL when non-empty.
func ScrapeURL(scraperURL, productURL, language string, selectors []string) string {
	target := productPageURL(productURL, language)
	return fmt.Sprintf("%s?url=%s&selector=%s&scrape=text&pretty=true",
		scraperURL,
		encodeURIComponent(target),
		encodeURIComponent(strings.Join(selectors, ",")),
	)
}

func productPageURL(productURL, language string) string {
	if language == "" {
		return productURL
	}
	sep := "?"
	if strings.Contains(productURL, "?") {
		sep = "&"
	}
	return productURL + sep + "language=" + language
}
