package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

// Solo estas entidades; el reemplazo es de una pasada, "&amp;lt;" queda "&lt;".
var entityReplacer = strings.NewReplacer(
	"&#34;", `"`,
	"&#39;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
)

var (
	decimalRe    = regexp.MustCompile(`\d+[.,]\d+`)
	percentageRe = regexp.MustCompile(`-?\d+%`)
)

// Clean decodes the HTML entities the scraper leaves behind and trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(entityReplacer.Replace(text))
}

// FirstOrDefault returns the cleaned first value, or fallback when values is empty.
func FirstOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return Clean(values[0])
}

// ExtractPrice parses the first decimal token ("19,99", "19.99") of text.
func ExtractPrice(text string) *float64 {
	return parseDecimal(text)
}

// ExtractRating parses star ratings such as "4,5 de 5 estrellas".
func ExtractRating(text string) *float64 {
	return parseDecimal(text)
}

// ExtractPercentage returns the first "-35%"-like token verbatim.
func ExtractPercentage(text string) *string {
	if text == "" {
		return nil
	}
	m := percentageRe.FindString(text)
	if m == "" {
		return nil
	}
	return &m
}

func parseDecimal(text string) *float64 {
	if text == "" {
		return nil
	}
	m := decimalRe.FindString(text)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &v
}
