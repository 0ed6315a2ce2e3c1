package crawler

import (
	"context"

	"ofertasprj/internal/model"
)

// DetailFetcher is satisfied by *Service.
type DetailFetcher interface {
	Detail(ctx context.Context, productURL string) (model.ProductDetail, error)
}

// CrawlDetails scrapes productURLs one after another and passes every outcome
// to handler. It stops early only when ctx is done.
func CrawlDetails(ctx context.Context, fetcher DetailFetcher, productURLs []string, handler func(url string, d model.ProductDetail, err error)) error {
	for _, u := range productURLs {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := fetcher.Detail(ctx, u)
		handler(u, d, err)
	}
	return nil
}
