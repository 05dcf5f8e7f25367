package utils

import "strings"

// ArticleNumber is a parsed elo.product.number
// Example: "abc-100-b" -> Normalized "ABC-100-B", Segments [ABC 100 B], Suffix "B"
type ArticleNumber struct {
	Normalized string
	Segments   []string
	Suffix     string // last segment, "" when there is only one segment
}

// ParseArticleNumber trims and uppercases an article number and splits it on '-'
func ParseArticleNumber(articleNumber string) ArticleNumber {
	normalized := strings.ToUpper(strings.TrimSpace(articleNumber))
	segments := strings.Split(normalized, "-")

	suffix := ""
	if len(segments) > 1 {
		suffix = segments[len(segments)-1]
	}

	return ArticleNumber{
		Normalized: normalized,
		Segments:   segments,
		Suffix:     suffix,
	}
}

// WithoutSuffix joins every segment but the last one
func (a ArticleNumber) WithoutSuffix() string {
	if len(a.Segments) < 2 {
		return a.Normalized
	}
	return strings.Join(a.Segments[:len(a.Segments)-1], "-")
}

// HasColorSuffix reports whether the last segment is a known color code
func (a ArticleNumber) HasColorSuffix() bool {
	return a.Suffix != "" && IsColorCode(a.Suffix)
}
