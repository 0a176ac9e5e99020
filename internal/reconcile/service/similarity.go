package service

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold: ниже этой схожести fuzzy-кандидат не рассматривается.
const DefaultThreshold = 0.33

// Similarity — доля совпадающих блоков символов (2*M/T) без учёта регистра, 0..1.
func Similarity(a, b string) float64 {
	return ratio(runes(a), runes(b))
}

// runes режет строку посимвольно: difflib сравнивает последовательности строк.
func runes(s string) []string {
	s = strings.ToLower(s)
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func ratio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return difflib.NewMatcher(a, b).Ratio()
}
