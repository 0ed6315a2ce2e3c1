package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeImageURL(t *testing.T) {
	got := CanonicalizeImageURL("https://x/img_AC_SF226,226_QL85_.jpg?a=1")
	assert.Equal(t, "https://x/img_AC_SF1000,1000_QL85_.jpg", got)

	// idempotente
	assert.Equal(t, got, CanonicalizeImageURL(got))

	assert.Equal(t, "https://x/plain.jpg", CanonicalizeImageURL("https://x/plain.jpg?w=10"))
	assert.Equal(t, "not a url", CanonicalizeImageURL("not a url"))
}

func TestExtractHandle(t *testing.T) {
	h := ExtractHandle("https://www.amazon.com/Some+Product/dp/B000123456")
	require.NotNil(t, h)
	assert.Equal(t, "some+product", *h)

	h = ExtractHandle("https://www.amazon.com/Cafetera-Programable-Caf%C3%A9/dp/B0ABCDEF12/ref=x")
	require.NotNil(t, h)
	assert.Equal(t, "cafetera-programable-café", *h)

	assert.Nil(t, ExtractHandle("https://www.amazon.com/deal/abc123"))
	assert.Nil(t, ExtractHandle("https://www.amazon.com/Bad%ZZ/dp/B000123456"))
	// secuencia UTF-8 incompleta
	assert.Nil(t, ExtractHandle("https://www.amazon.com/Caf%C3/dp/B000123456"))
	broken := "https://www.amazon.com/Caf%C3/dp/B000123456"
	assert.Nil(t, DefaultAffiliate.BuildURL(ExtractHandle(broken), ExtractProductID(broken)))
}

func TestExtractProductID(t *testing.T) {
	id := ExtractProductID("https://www.amazon.com/Some+Product/dp/B000123456")
	require.NotNil(t, id)
	assert.Equal(t, "B000123456", *id)

	id = ExtractProductID("https://www.amazon.com/dp/B0C1D2E3F4?th=1")
	require.NotNil(t, id)
	assert.Equal(t, "B0C1D2E3F4", *id)

	assert.Nil(t, ExtractProductID("https://www.amazon.com/x/dp/b000123456"))
	assert.Nil(t, ExtractProductID("https://www.amazon.com/x/dp/B0001"))
}

func TestAffiliateBuildURL(t *testing.T) {
	h := "h"
	id := "B000123456"
	assert.Nil(t, DefaultAffiliate.BuildURL(nil, &id))
	assert.Nil(t, DefaultAffiliate.BuildURL(&h, nil))

	handle := "crema facial+spf (50ml)"
	got := DefaultAffiliate.BuildURL(&handle, &id)
	require.NotNil(t, got)
	assert.Equal(t,
		"https://www.amazon.com/crema+facial%2Bspf+(50ml)/dp/B000123456?tag=topbeauty0d-20&language=es_US&currency=COP",
		*got)

	noCurrency := Affiliate{Tag: "otro-20", Language: "es"}
	got = noCurrency.BuildURL(&h, &id)
	require.NotNil(t, got)
	assert.Equal(t, "https://www.amazon.com/h/dp/B000123456?tag=otro-20&language=es", *got)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a-b_c.d!e~f*g'h(i)", encodeURIComponent("a-b_c.d!e~f*g'h(i)"))
	assert.Equal(t, "caf%C3%A9%20%2F%3F%26%3D", encodeURIComponent("café /?&="))
}
