package variant

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"elotec-nettbutikk/utils"
)

type colorPattern struct {
	token         string
	parenthesized *regexp.Regexp
}

var (
	colorPatterns []colorPattern
	trailingComma = regexp.MustCompile(`,\s*$`)
)

func init() {
	for _, token := range utils.CleanableColorTokens() {
		colorPatterns = append(colorPatterns, colorPattern{
			token:         token,
			parenthesized: regexp.MustCompile(`(?i)\s*\(` + regexp.QuoteMeta(token) + `\)`),
		})
	}
}

// CleanName strips color information from a product name and keeps everything else.
// "Lampe 200 (IP65) (Sort)" -> "Lampe 200 (IP65)", "Lampe 200, Hvit" -> "Lampe 200".
// The result is stable: cleaning an already cleaned name returns it unchanged.
// Trailing color words are removed until none is left, so a finish word that is
// also a color token is lost too: "Spot Krom Black" -> "Spot".
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	for {
		next := cleanOnce(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func cleanOnce(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return ""
	}

	for _, p := range colorPatterns {
		cleaned = strings.TrimSpace(p.parenthesized.ReplaceAllString(cleaned, ""))
	}

	// One trailing color word per pass
	for _, p := range colorPatterns {
		if rest, ok := cutSuffixFold(cleaned, " "+p.token); ok {
			cleaned = strings.TrimSpace(rest)
			break
		}
	}

	return strings.TrimSpace(trailingComma.ReplaceAllString(cleaned, ""))
}

// cutSuffixFold removes suffix from s when s ends with it under Unicode case folding.
// The tail is compared rune by rune, so the cut never splits a multi-byte rune.
func cutSuffixFold(s, suffix string) (string, bool) {
	i := len(s)
	for n := utf8.RuneCountInString(suffix); n > 0; n-- {
		if i == 0 {
			return s, false
		}
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	if !strings.EqualFold(s[i:], suffix) {
		return s, false
	}
	return s[:i], true
}
