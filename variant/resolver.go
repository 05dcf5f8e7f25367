// Package variant groups color variants of catalog products under synthesized
// master products. Everything in here is pure: no I/O, no logging, no errors.
package variant

import (
	"strings"

	"elotec-nettbutikk/utils"
)

// ResolveColor finds the base article number and the Norwegian color of one SKU.
//
// Signals are tried in order: the explicit Farge value, a color code suffix on the
// article number, then color words in the name fields. An empty base means the row
// is unusable; an empty color means no signal matched. Either way the caller drops the row.
func ResolveColor(articleNumber string, nameFields []string, explicitColor string) (base string, color string) {
	if strings.TrimSpace(articleNumber) == "" {
		return "", ""
	}

	article := utils.ParseArticleNumber(articleNumber)

	if strings.TrimSpace(explicitColor) != "" {
		normalized := utils.NormalizeColor(explicitColor)
		if article.HasColorSuffix() {
			return article.WithoutSuffix(), normalized
		}
		return article.Normalized, normalized
	}

	if english, ok := utils.MapCodeToColor(article.Suffix); ok {
		return article.WithoutSuffix(), translate(english)
	}

	if found := ColorFromName(strings.Join(nameFields, " ")); found != "" {
		return article.Normalized, found
	}

	return article.Normalized, ""
}

// ColorFromName returns the Norwegian color of the first color word found in text,
// either parenthesized, surrounded by spaces or as the last word. "" when none matches.
func ColorFromName(text string) string {
	lower := strings.ToLower(text)
	for _, token := range utils.NameColorTokens() {
		if strings.Contains(lower, "("+token+")") ||
			strings.Contains(lower, " "+token+" ") ||
			strings.HasSuffix(lower, " "+token) {
			return translate(token)
		}
	}
	return ""
}

func translate(color string) string {
	if norwegian, ok := utils.MapColorToNorwegian(color); ok {
		return norwegian
	}
	return color
}
