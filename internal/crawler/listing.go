package crawler

import (
	"regexp"
	"strings"
	"time"

	"ofertasprj/internal/model"
)

// Bloque de un producto en el markdown:
// [![Image N: titulo](imagen)](enlace imagen) [descuento y descripcion](enlace producto)
var listingBlockRe = regexp.MustCompile(`(\[!\[Image \d+: ([^\]]+)\]\(([^)]+)\)\]\(([^)]+)\))[\s\p{Zs}\x{FEFF}]*(\[([^\]]+)\]\(([^)]+)\))`)

var (
	leadingBadgeRe    = regexp.MustCompile(`^(-?\d+%\s*)?(Oferta Relámpago\s*)?`)
	truncatedSuffixRe = regexp.MustCompile(`\s*[^-]+\s*\.\.\.$`)
)

type listingBlock struct {
	title        string
	imageURL     string
	imageLink    string
	discountText string
	productLink  string
}

// matchListingBlocks is the only place that knows the markdown grammar.
// No match yields an empty slice.
func matchListingBlocks(markdown string) []listingBlock {
	matches := listingBlockRe.FindAllStringSubmatch(markdown, -1)
	blocks := make([]listingBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, listingBlock{
			title:        strings.TrimSpace(m[2]),
			imageURL:     strings.TrimSpace(m[3]),
			imageLink:    strings.TrimSpace(m[4]),
			discountText: strings.TrimSpace(m[6]),
			productLink:  strings.TrimSpace(m[7]),
		})
	}
	return blocks
}

// Parser turns the fetched documents into product records.
type Parser struct {
	Affiliate Affiliate
	now       func() time.Time
}

func NewParser(aff Affiliate) *Parser {
	return &Parser{Affiliate: aff, now: time.Now}
}

var defaultParser = NewParser(DefaultAffiliate)

// ParseListing parses a deals markdown document with the default affiliate settings.
func ParseListing(markdown string) []model.ProductSummary {
	return defaultParser.ParseListing(markdown)
}

// ParseListing returns one summary per product block, in document order.
func (p *Parser) ParseListing(markdown string) []model.ProductSummary {
	blocks := matchListingBlocks(markdown)
	products := make([]model.ProductSummary, 0, len(blocks))
	for _, b := range blocks {
		products = append(products, p.summary(b))
	}
	return products
}

func (p *Parser) summary(b listingBlock) model.ProductSummary {
	// el enlace del producto tiene prioridad sobre el de la imagen
	handle := ExtractHandle(b.productLink)
	if handle == nil {
		handle = ExtractHandle(b.imageLink)
	}

	id := ExtractProductID(b.imageLink)
	if id == nil {
		id = ExtractProductID(b.productLink)
	}

	return model.ProductSummary{
		Title:        b.title,
		ImageURL:     CanonicalizeImageURL(b.imageURL),
		Handle:       handle,
		Discount:     ExtractPercentage(b.discountText),
		Description:  cleanDescription(b.discountText),
		ProductID:    id,
		AffiliateURL: p.Affiliate.BuildURL(handle, id),
		CapturedAt:   p.now().UTC(),
	}
}

// cleanDescription strips the discount badge, the flash deal marker and the
// truncated tail ("... texto cortado...") from the link text.
func cleanDescription(text string) string {
	desc := leadingBadgeRe.ReplaceAllString(text, "")
	desc = truncatedSuffixRe.ReplaceAllString(desc, "")
	return strings.TrimSpace(desc)
}
