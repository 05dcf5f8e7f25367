package utils

import (
	"sort"
	"strings"
)

// numericColorCodes maps article number suffix digits to canonical English color names
var numericColorCodes = map[string]string{
	"1": "white",
	"2": "black",
	"3": "fog",
	"4": "graphite",
	"5": "grey",
	"6": "ivory",
	"7": "olive",
	"8": "oyster",
}

// letterColorCodes maps article number suffix letters to canonical English color names
var letterColorCodes = map[string]string{
	"B": "black",
	"W": "white",
	"G": "grey",
	"R": "red",
	"Y": "yellow",
}

// colorToNorwegian maps every known color spelling (lowercase) to the
// Norwegian value written into the Farge column
var colorToNorwegian = map[string]string{
	"black":      "Sort",
	"white":      "Hvit",
	"grey":       "Grå",
	"gray":       "Grå",
	"red":        "Rød",
	"green":      "Grønn",
	"blue":       "Blå",
	"yellow":     "Gul",
	"orange":     "Oransje",
	"anthracite": "Antrasitt",
	"fog":        "Fog",
	"graphite":   "Grafitt",
	"ivory":      "Ivory",
	"olive":      "Oliven",
	"oyster":     "Oyster",
	"krom":       "Krom",
	"stal":       "Stål",
	"stål":       "Stål",
	"sort":       "Sort",
	"svart":      "Sort",
	"hvit":       "Hvit",
	"grå":        "Grå",
	"rød":        "Rød",
	"grønn":      "Grønn",
	"blå":        "Blå",
	"gul":        "Gul",
	"oransje":    "Oransje",
	"antrasitt":  "Antrasitt",
	"grafitt":    "Grafitt",
	"oliven":     "Oliven",
}

// nameColorTokens are the color words looked for in product names
var nameColorTokens = []string{
	"red", "green", "blue", "yellow", "white", "black", "anthracite", "grey", "gray",
	"orange", "fog", "graphite", "ivory", "olive", "oyster",
	"rød", "grønn", "blå", "gul", "hvit", "sort", "svart", "antrasitt", "grå", "oransje",
}

var (
	norwegianColors   map[string]bool
	orderedNameTokens []string
	cleanableTokens   []string
)

func init() {
	norwegianColors = make(map[string]bool, len(colorToNorwegian))
	for _, v := range colorToNorwegian {
		norwegianColors[v] = true
	}

	orderedNameTokens = orderTokens(nameColorTokens)

	all := append([]string{}, nameColorTokens...)
	for v := range norwegianColors {
		all = append(all, strings.ToLower(v))
	}
	cleanableTokens = orderTokens(all)
}

// orderTokens deduplicates tokens and sorts them longest first, then alphabetically.
// Token matching always walks this order so overlapping matches resolve the same way every run.
func orderTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := len([]rune(out[i])), len([]rune(out[j]))
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

// MapCodeToColor maps a suffix color code (digit or letter) to its canonical English name
// Letter codes are matched case-insensitively
func MapCodeToColor(code string) (string, bool) {
	codeUpper := strings.ToUpper(strings.TrimSpace(code))
	if color, exists := numericColorCodes[codeUpper]; exists {
		return color, true
	}
	if color, exists := letterColorCodes[codeUpper]; exists {
		return color, true
	}
	return "", false
}

// IsColorCode reports whether code is a known numeric or letter color code
func IsColorCode(code string) bool {
	_, ok := MapCodeToColor(code)
	return ok
}

// MapColorToNorwegian translates a known color spelling to its Norwegian value
func MapColorToNorwegian(color string) (string, bool) {
	colorLower := strings.ToLower(strings.TrimSpace(color))
	if norwegian, exists := colorToNorwegian[colorLower]; exists {
		return norwegian, true
	}
	return "", false
}

// IsNorwegianColor reports whether color is already a target spelling (case-sensitive)
func IsNorwegianColor(color string) bool {
	return norwegianColors[color]
}

// NormalizeColor normalizes a value from the Farge column
// Known spellings are translated, Norwegian values are kept, anything else is returned trimmed
func NormalizeColor(color string) string {
	trimmed := strings.TrimSpace(color)
	if trimmed == "" {
		return ""
	}
	if norwegian, ok := MapColorToNorwegian(trimmed); ok {
		return norwegian
	}
	// Norwegian values and unknown text pass through unchanged
	return trimmed
}

// NameColorTokens returns the color words searched for in product names, in match order
func NameColorTokens() []string {
	return append([]string(nil), orderedNameTokens...)
}

// CleanableColorTokens returns every color word that may be stripped from a product name
// (name tokens plus lowercase Norwegian values), in match order
func CleanableColorTokens() []string {
	return append([]string(nil), cleanableTokens...)
}

// NorwegianColors returns the target color vocabulary, sorted
func NorwegianColors() []string {
	out := make([]string, 0, len(norwegianColors))
	for c := range norwegianColors {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
