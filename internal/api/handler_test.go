package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ofertasprj/internal/config"
	"ofertasprj/internal/crawler"
	"ofertasprj/internal/model"
)

// ─── Mock service ─────────────────────────────────────────────────────────────

type mockDealsService struct {
	listingFn func(ctx context.Context) (model.Listing, error)
	detailFn  func(ctx context.Context, productURL string) (model.ProductDetail, error)
}

func (m *mockDealsService) Listing(ctx context.Context) (model.Listing, error) {
	if m.listingFn != nil {
		return m.listingFn(ctx)
	}
	return model.Listing{}, errors.New("not implemented")
}

func (m *mockDealsService) Detail(ctx context.Context, productURL string) (model.ProductDetail, error) {
	if m.detailFn != nil {
		return m.detailFn(ctx, productURL)
	}
	return model.ProductDetail{}, errors.New("not implemented")
}

// ─── Test app helpers ─────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		Port:           "3000",
		AllowedDomains: []string{"https://ofertas.example.com"},
		AnalyticsID:    "G-TEST123",
	}
}

func newTestApp(svc DealsService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, zap.NewNop(), testConfig(), NewDealsHandler(zap.NewNop(), svc))
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Origin", "https://ofertas.example.com")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp, body
}

// ─── /api/products ────────────────────────────────────────────────────────────

func TestProducts_Success(t *testing.T) {
	handle := "auriculares"
	svc := &mockDealsService{
		listingFn: func(context.Context) (model.Listing, error) {
			return model.Listing{
				ProductsCount: 1,
				Products:      []model.ProductSummary{{Title: "Auriculares", Handle: &handle}},
			}, nil
		},
	}

	resp, body := doGet(t, newTestApp(svc), "/api/products")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["products_count"])
	products := data["products"].([]any)
	require.Len(t, products, 1)
	first := products[0].(map[string]any)
	assert.Equal(t, "Auriculares", first["title"])
	assert.Equal(t, "auriculares", first["handle"])
	assert.Nil(t, first["amznUrl"])
	_, hasID := first["id"]
	assert.False(t, hasID)
}

func TestProducts_FetchFailure(t *testing.T) {
	svc := &mockDealsService{
		listingFn: func(context.Context) (model.Listing, error) {
			return model.Listing{}, &crawler.FetchError{URL: "https://r.jina.ai/x", Status: 503}
		},
	}

	resp, body := doGet(t, newTestApp(svc), "/api/products")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "503")
}

// ─── /api/product ─────────────────────────────────────────────────────────────

func TestProduct_MissingURL(t *testing.T) {
	resp, body := doGet(t, newTestApp(&mockDealsService{}), "/api/product")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, `El parámetro "url" es requerido`, body["error"])
}

func TestProduct_Success(t *testing.T) {
	svc := &mockDealsService{
		detailFn: func(_ context.Context, productURL string) (model.ProductDetail, error) {
			assert.Equal(t, "https://www.amazon.com/x/dp/B000123456", productURL)
			return model.ProductDetail{
				BasicInfo: model.BasicInfo{Title: "Foo", Stock: "Disponible"},
				Features:  model.Features{ListFeatures: []string{}},
				Metadata:  model.Metadata{ElementsFound: 1},
			}, nil
		},
	}

	resp, body := doGet(t, newTestApp(svc), "/api/product?url=https%3A%2F%2Fwww.amazon.com%2Fx%2Fdp%2FB000123456")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	basic := data["basic_info"].(map[string]any)
	assert.Equal(t, "Foo", basic["title"])
	assert.Equal(t, "Disponible", basic["stock"])
	assert.EqualValues(t, 1, data["metadata"].(map[string]any)["elements_found"])
}

func TestProduct_InvalidDataPassThrough(t *testing.T) {
	svc := &mockDealsService{
		detailFn: func(context.Context, string) (model.ProductDetail, error) {
			return model.ProductDetail{}, crawler.ErrInvalidData
		},
	}

	resp, body := doGet(t, newTestApp(svc), "/api/product?url=https://www.amazon.com/x/dp/B000123456")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"error": "Datos no válidos"}, body["data"])
}

func TestProduct_FetchFailure(t *testing.T) {
	svc := &mockDealsService{
		detailFn: func(context.Context, string) (model.ProductDetail, error) {
			return model.ProductDetail{}, &crawler.FetchError{URL: "https://web.scraper.workers.dev/", Err: context.DeadlineExceeded}
		},
	}

	resp, body := doGet(t, newTestApp(svc), "/api/product?url=https://www.amazon.com/x/dp/B000123456")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "deadline exceeded")
}

// ─── /health, /analytics ──────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp, body := doGet(t, newTestApp(&mockDealsService{}), "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))
}

func TestAnalytics(t *testing.T) {
	_, body := doGet(t, newTestApp(&mockDealsService{}), "/analytics")
	assert.Equal(t, "G-TEST123", body["analytics_id"])
}
