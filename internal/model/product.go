package model

import "time"

// ProductSummary is one deal item parsed from the listing markdown.
type ProductSummary struct {
	Title        string    `json:"title"`
	ImageURL     string    `json:"image_url"`
	Handle       *string   `json:"handle"`
	Discount     *string   `json:"discount,omitempty"`
	Description  string    `json:"description"`
	ProductID    *string   `json:"id,omitempty"`
	AffiliateURL *string   `json:"amznUrl"` // nil salvo que haya handle e id
	CapturedAt   time.Time `json:"timestamp"`
}

type Listing struct {
	ProductsCount int              `json:"products_count"`
	Products      []ProductSummary `json:"products"`
}

// ProductDetail is the normalized record built from the scraper result map.
type ProductDetail struct {
	BasicInfo BasicInfo `json:"basic_info"`
	Prices    Prices    `json:"prices"`
	Features  Features  `json:"features"`
	Rates     Rates     `json:"rates"`
	Seller    Seller    `json:"seller"`
	Metadata  Metadata  `json:"metadata"`
}

type BasicInfo struct {
	Title string `json:"title"`
	Brand string `json:"brand"`
	Stock string `json:"stock"`
}

type Prices struct {
	CurrentPrice        string   `json:"current_price"`
	CurrentPriceNumber  *float64 `json:"current_price_number"`
	OriginalPrice       string   `json:"original_price"`
	OriginalPriceNumber *float64 `json:"original_price_number"`
	DiscountPercent     *string  `json:"discount_percent"`
	Percent             *string  `json:"percent"`
}

type Features struct {
	SpecialFeatures string   `json:"special_features"`
	Dimensions      string   `json:"dimensions"`
	ListFeatures    []string `json:"list_features"`
}

type Rates struct {
	RatingStars   *float64 `json:"rating_stars"`
	RatingCount   string   `json:"rating_count"`
	FrequentlyBuy string   `json:"frequently_buy"`
}

type Seller struct {
	InfoSeller string `json:"info_seller"`
}

type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	ElementsFound int       `json:"elements_found"`
}

// ErrorRecord is the data-shaped error returned when the scraper payload
// cannot be parsed.
type ErrorRecord struct {
	Error string `json:"error"`
}
