package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScrapeSelectors evaluates selectors against a product page and returns the
// same selector -> texts map the scraping proxy produces. Selectors without a
// non-empty match are left out.
func ScrapeSelectors(html string, selectors []string) (*RawDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	for _, sel := range selectors {
		var texts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				texts = append(texts, t)
			}
		})
		if len(texts) > 0 {
			result[sel] = texts
		}
	}

	return &RawDetail{Result: result}, nil
}
