package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// NormalizeColor: пустое/"nan"/"none" -> "", иначе нижний регистр без краевых пробелов.
func NormalizeColor(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "", "nan", "none":
		return ""
	}
	return s
}

// CollapseWhitespace схлопывает любые пробельные последовательности в один пробел.
func CollapseWhitespace(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

var invisibles = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ", "\u200B", "", "\uFEFF", "")

// cleanText: NFC, спец-пробелы, схлопывание. Имена из 1С и Excel после неё сравнимы.
func cleanText(v string) string {
	if v == "" {
		return ""
	}
	v = norm.NFC.String(v)
	v = invisibles.Replace(v)
	s := CollapseWhitespace(v)
	switch strings.ToLower(s) {
	case "nan", "none":
		return ""
	}
	return s
}

// normalizeArticle приводит артикул к ключу сравнения.
// numeric: "'000123", "123.0", "00123" -> "123" (сравнение по значению).
func normalizeArticle(v string, numeric bool) (string, bool) {
	s := cleanText(v)
	if s == "" {
		return "", false
	}
	if !numeric {
		return s, true
	}
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "")
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String(), true
	}
	// мусор вокруг числа: оставляем только цифры
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return "", false
	}
	return d.String(), true
}
