package crawler

import (
	"errors"

	"ofertasprj/internal/model"
)

// Selectores CSS pedidos al scraper.
const (
	SelProductTitle     = "#productTitle"
	SelSavings          = ".savingsPercentage"
	SelBrand            = ".po-brand .a-span9"
	SelSpecialFeature   = ".po-special_feature .a-span9"
	SelDimensions       = ".po-item_depth_width_height .a-span9"
	SelFeatureBullets   = "#feature-bullets .a-list-item"
	SelPriceToPay       = ".priceToPay"
	SelBasisPrice       = ".basisPrice .a-offscreen"
	SelRatingsPopover   = "#acrPopover"
	SelStarRating       = ".a-icon-alt"
	SelReviewCount      = "#acrCustomerReviewText"
	SelAvailability     = "#availability .a-color-success"
	SelMerchantInfo     = "#merchant-info"
	SelFrequentlyBought = "#social-proofing-faceout-title-tk_bought"
)

// DefaultSelectors is the selector set sent with every product scrape.
var DefaultSelectors = []string{
	SelProductTitle,
	SelSavings,
	SelBrand,
	SelSpecialFeature,
	SelDimensions,
	SelFeatureBullets,
	SelPriceToPay,
	SelBasisPrice,
	SelRatingsPopover,
	SelStarRating,
	SelReviewCount,
	SelAvailability,
	SelMerchantInfo,
	SelFrequentlyBought,
}

const defaultStock = "Disponible"

// InvalidDataMessage is the error text shown to API clients for ErrInvalidData.
const InvalidDataMessage = "Datos no válidos"

// ErrInvalidData is returned when the scraper payload has no result map.
var ErrInvalidData = errors.New("scraper payload without result")

// RawDetail is the JSON document returned by the selector scraper.
type RawDetail struct {
	Result map[string][]string `json:"result"`
}

// ParseDetail builds a ProductDetail with the default parser.
func ParseDetail(raw *RawDetail) (model.ProductDetail, error) {
	return defaultParser.ParseDetail(raw)
}

// ParseDetail maps the selector results onto a ProductDetail. Missing or
// unparseable fields degrade to empty/nil values; only a missing result map
// is an error.
func (p *Parser) ParseDetail(raw *RawDetail) (model.ProductDetail, error) {
	if raw == nil || raw.Result == nil {
		return model.ProductDetail{}, ErrInvalidData
	}
	r := raw.Result

	currentPrice := FirstOrDefault(r[SelPriceToPay], "")
	originalPrice := FirstOrDefault(r[SelBasisPrice], "")
	savings := FirstOrDefault(r[SelSavings], "")

	var percent *string
	if v, ok := r[SelSavings]; ok && v != nil {
		percent = &savings
	}

	bullets := make([]string, 0, len(r[SelFeatureBullets]))
	for _, b := range r[SelFeatureBullets] {
		bullets = append(bullets, Clean(b))
	}

	return model.ProductDetail{
		BasicInfo: model.BasicInfo{
			Title: FirstOrDefault(r[SelProductTitle], ""),
			Brand: FirstOrDefault(r[SelBrand], ""),
			Stock: FirstOrDefault(r[SelAvailability], defaultStock),
		},
		Prices: model.Prices{
			CurrentPrice:        currentPrice,
			CurrentPriceNumber:  ExtractPrice(currentPrice),
			OriginalPrice:       originalPrice,
			OriginalPriceNumber: ExtractPrice(originalPrice),
			DiscountPercent:     ExtractPercentage(savings),
			Percent:             percent,
		},
		Features: model.Features{
			SpecialFeatures: FirstOrDefault(r[SelSpecialFeature], ""),
			Dimensions:      FirstOrDefault(r[SelDimensions], ""),
			ListFeatures:    bullets,
		},
		Rates: model.Rates{
			RatingStars:   ExtractRating(FirstOrDefault(r[SelStarRating], "")),
			RatingCount:   FirstOrDefault(r[SelReviewCount], ""),
			FrequentlyBuy: FirstOrDefault(r[SelFrequentlyBought], ""),
		},
		Seller: model.Seller{
			InfoSeller: FirstOrDefault(r[SelMerchantInfo], ""),
		},
		Metadata: model.Metadata{
			Timestamp:     p.now().UTC(),
			ElementsFound: len(r),
		},
	}, nil
}
