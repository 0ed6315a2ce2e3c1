package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	imageSizeRe = regexp.MustCompile(`_AC_SF\d+,\d+_QL85_`)
	handleRe    = regexp.MustCompile(`\.com/([^/]+)/dp/`)
	productIDRe = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)
)

const fullSizeImage = "_AC_SF1000,1000_QL85_"

// CanonicalizeImageURL drops the query string and upgrades the thumbnail
// directive to a 1000x1000 render.
func CanonicalizeImageURL(raw string) string {
	base, _, _ := strings.Cut(raw, "?")
	loc := imageSizeRe.FindStringIndex(base)
	if loc == nil {
		return base
	}
	return base[:loc[0]] + fullSizeImage + base[loc[1]:]
}

// ExtractHandle returns the lowercased, percent-decoded slug between ".com/"
// and "/dp/".
func ExtractHandle(rawURL string) *string {
	m := handleRe.FindStringSubmatch(rawURL)
	if len(m) < 2 || m[1] == "" {
		return nil
	}
	// PathUnescape deja el "+" literal, igual que decodeURIComponent
	decoded, err := url.PathUnescape(m[1])
	if err != nil || !utf8.ValidString(decoded) {
		return nil
	}
	handle := strings.ToLower(decoded)
	return &handle
}

// ExtractProductID returns the 10-character catalog id that follows "/dp/".
func ExtractProductID(rawURL string) *string {
	m := productIDRe.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return nil
	}
	id := m[1]
	return &id
}

// Affiliate holds the tracking parameters appended to purchase links.
type Affiliate struct {
	Tag      string
	Language string
	Currency string // vacío: sin parámetro currency
}

// DefaultAffiliate mirrors the parameters the deals site has been publishing with.
var DefaultAffiliate = Affiliate{
	Tag:      "topbeauty0d-20",
	Language: "es_US",
	Currency: "COP",
}

// BuildURL returns the affiliate purchase link, or nil unless both handle and
// productID are known.
func (a Affiliate) BuildURL(handle, productID *string) *string {
	if handle == nil || productID == nil {
		return nil
	}
	encoded := strings.ReplaceAll(encodeURIComponent(*handle), "%20", "+")
	link := fmt.Sprintf("https://www.amazon.com/%s/dp/%s?tag=%s&language=%s", encoded, *productID, a.Tag, a.Language)
	if a.Currency != "" {
		link += "&currency=" + a.Currency
	}
	return &link
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ),
// same set as the JS function of that name.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&15])
	}
	return sb.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
