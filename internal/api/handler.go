package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ofertasprj/internal/crawler"
	"ofertasprj/internal/model"
)

const errMissingURL = `El parámetro "url" es requerido`

// DealsService is implemented by *crawler.Service.
type DealsService interface {
	Listing(ctx context.Context) (model.Listing, error)
	Detail(ctx context.Context, productURL string) (model.ProductDetail, error)
}

// DealsHandler serves the listing and product endpoints.
type DealsHandler struct {
	logger  *zap.Logger
	service DealsService
}

func NewDealsHandler(logger *zap.Logger, service DealsService) *DealsHandler {
	return &DealsHandler{logger: logger, service: service}
}

// Products handles GET /api/products.
func (h *DealsHandler) Products(c *fiber.Ctx) error {
	listing, err := h.service.Listing(c.Context())
	if err != nil {
		h.logger.Error("api.products.failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(Response{Error: err.Error()})
	}
	return c.JSON(Response{Success: true, Data: listing})
}

// Product handles GET /api/product?url=.
func (h *DealsHandler) Product(c *fiber.Ctx) error {
	productURL := c.Query("url")
	if productURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(Response{Error: errMissingURL})
	}

	detail, err := h.service.Detail(c.Context(), productURL)
	switch {
	case errors.Is(err, crawler.ErrInvalidData):
		// el scraper respondió pero sin "result": se devuelve el registro de error como dato
		return c.JSON(Response{Success: true, Data: model.ErrorRecord{Error: crawler.InvalidDataMessage}})
	case err != nil:
		h.logger.Error("api.product.failed",
			zap.String("url", productURL),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(Response{Error: err.Error()})
	}

	return c.JSON(Response{Success: true, Data: detail})
}
