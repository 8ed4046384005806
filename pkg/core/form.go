package core

import (
	"net/url"
	"strings"
)

// Pair is an ordered key/value, used for query parameters and form fields.
type Pair struct {
	Key   string
	Value string
}

// parseForm splits k=v&k2=v2 text into ordered pairs. A leading "?" is
// ignored, empty segments are skipped and "+" decodes to a space.
func parseForm(text string) []Pair {
	text = strings.TrimPrefix(text, "?")
	var pairs []Pair
	for _, segment := range strings.Split(text, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, Pair{Key: unescapeForm(key), Value: unescapeForm(value)})
	}
	return pairs
}

func unescapeForm(s string) string {
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}
	// malformed escapes are kept literally
	return strings.ReplaceAll(s, "+", " ")
}

// EncodeForm serializes pairs with form encoding, keeping their order.
func EncodeForm(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

