package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a title into a URL slug.
// "Amélie: Le Fabuleux Destin" → "amelie-le-fabuleux-destin"
func GenerateSlug(input string) string {
	// Step 1: strip diacritics
	ascii := RemoveDiacritics(input)

	// Step 2: lowercase, spaces to hyphens
	hyphenated := strings.Join(strings.Fields(strings.ToLower(ascii)), "-")

	// Step 3: keep only a-z, 0-9, hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "-")

	// Step 4: collapse and trim hyphens
	return strings.Trim(slugDashes.ReplaceAllString(cleaned, "-"), "-")
}

// RemoveDiacritics decomposes the input and drops combining marks
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return result
}
