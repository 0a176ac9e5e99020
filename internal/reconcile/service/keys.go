package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyTier — откуда взят ключ товара.
type KeyTier int

const (
	TierNone KeyTier = iota
	TierBracket
	TierBrand
	TierGeneric
)

func (t KeyTier) String() string {
	switch t {
	case TierBracket:
		return "bracket"
	case TierBrand:
		return "brand"
	case TierGeneric:
		return "generic"
	default:
		return "none"
	}
}

const minCodeLen = 4

// Brands — словарь брендов, порядок важен: побеждает первый найденный.
var Brands = []string{"GREENOE", "XIAOMI", "SAMSUNG", "APPLE", "HUAWEI", "OPPO", "VIVO", "ONEPLUS"}

var codeStopList = map[string]struct{}{
	"USB-C":    {},
	"POWER":    {},
	"PORTABLE": {},
	"CHARGER":  {},
	"BANK":     {},
}

var (
	reBracket     = regexp.MustCompile(`\(([^()]*)\)`)
	reBracketBody = regexp.MustCompile(`^[A-Z0-9-]+$`)

	// порядок = приоритет
	genericPatterns = []codePattern{
		// блоки через дефис: MJ-01-DEM
		wordPattern(`[A-Z0-9]+(?:-[A-Z0-9]+)+`),
		// буквы+цифры+буквы: XMUP21YM
		wordPattern(`[A-Z]+[0-9]+[A-Z]+[A-Z0-9]*`),
		// цифры+буквы: 27QA
		wordPattern(`[0-9]+[A-Z]+[A-Z0-9]*`),
		// M2462W1, ищется и внутри слова
		{re: regexp.MustCompile(`[A-Z][0-9]{4,}[A-Z][0-9]+`)},
		// серия заглавных
		wordPattern(`[A-Z]{4,8}`),
		// буква+цифры, латиница или кириллица: C600 / С600
		wordPattern(`[A-ZА-ЯЁ][0-9]{1,3}`),
	}

	reUnitToken  = regexp.MustCompile(`^[0-9]+(?:MAH|МАЧ|МЧ|MA|WH|W|ВТ)$`)
	reBareNumber = regexp.MustCompile(`^[0-9]{5,}$`)
	reLongCaps   = regexp.MustCompile(`^[A-Z]{9,}$`)

	reCapacity = regexp.MustCompile(`(\d+)\s?(?:mah|мач|мч)`)
)

// BracketCode — первое содержимое скобок из латиницы/цифр/дефиса длиной от 4 символов.
func BracketCode(name string) (string, bool) {
	for _, m := range reBracket.FindAllStringSubmatch(name, -1) {
		body := strings.ToUpper(strings.TrimSpace(m[1]))
		if isBareCode(body) {
			return body, true
		}
	}
	return "", false
}

func isBareCode(s string) bool {
	return len(s) >= minCodeLen && reBracketBody.MatchString(s)
}

// BrandToken ищет бренд из словаря без учёта регистра.
func BrandToken(name string) (string, bool) {
	up := strings.ToUpper(name)
	for _, b := range Brands {
		if strings.Contains(up, b) {
			return b, true
		}
	}
	return "", false
}

// GenericCode возвращает первый токен из genericPatterns, прошедший фильтры.
func GenericCode(name string) (string, bool) {
	up := strings.ToUpper(name)
	if up == "" {
		return "", false
	}
	for _, p := range genericPatterns {
		for _, tok := range p.findAll(up) {
			if acceptCode(tok) {
				return tok, true
			}
		}
	}
	return "", false
}

// codePattern — шаблон кода. При full != nil совпадение должно стоять
// на границах слова (\b в смысле Unicode: буквы, цифры, подчёркивание).
// \b в RE2 только ASCII и видит границу между кириллицей и латиницей,
// поэтому границы проверяются вручную и разделители не поглощаются.
type codePattern struct {
	re   *regexp.Regexp
	full *regexp.Regexp
}

func wordPattern(expr string) codePattern {
	return codePattern{
		re:   regexp.MustCompile(expr),
		full: regexp.MustCompile(`^(?:` + expr + `)$`),
	}
}

// findAll — непересекающиеся вхождения слева направо.
func (p codePattern) findAll(s string) []string {
	if p.full == nil {
		return p.re.FindAllString(s, -1)
	}
	var out []string
	for pos := 0; pos < len(s); {
		loc := p.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !wordBefore(s, start) {
			if end = p.shrinkEnd(s, start, end); end > start {
				out = append(out, s[start:end])
				pos = end
				continue
			}
		}
		// с этой позиции совпадения нет, сдвиг на одну руну
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return out
}

// shrinkEnd подбирает самый длинный конец <= end, за которым не идёт
// символ слова. -1, если такого нет.
func (p codePattern) shrinkEnd(s string, start, end int) int {
	if !wordAt(s, end) {
		return end
	}
	for j := end - 1; j > start; j-- {
		if !utf8.RuneStart(s[j]) || wordAt(s, j) || !wordBefore(s, j) {
			continue
		}
		if p.full.MatchString(s[start:j]) {
			return j
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func wordAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func wordBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func acceptCode(tok string) bool {
	tok = strings.TrimSpace(tok)
	if utf8.RuneCountInString(tok) < minCodeLen {
		return false
	}
	if reUnitToken.MatchString(tok) || reBareNumber.MatchString(tok) || reLongCaps.MatchString(tok) {
		return false
	}
	_, stop := codeStopList[tok]
	return !stop
}

// ExtractKey: скобки -> бренд -> общий код.
func ExtractKey(name string) (string, KeyTier, bool) {
	if c, ok := BracketCode(name); ok {
		return c, TierBracket, true
	}
	if c, tier, ok := SecondaryKey(name); ok {
		return c, tier, true
	}
	return "", TierNone, false
}

// SecondaryKey: только бренд и общий код, без скобок.
func SecondaryKey(name string) (string, KeyTier, bool) {
	if b, ok := BrandToken(name); ok {
		return b, TierBrand, true
	}
	if c, ok := GenericCode(name); ok {
		return c, TierGeneric, true
	}
	return "", TierNone, false
}

// Capacity — ёмкость аккумулятора в мАч: "60000mah", "5000 мАч".
func Capacity(name string) (string, bool) {
	low := strings.ToLower(name)
	for _, m := range reCapacity.FindAllStringSubmatch(low, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n >= 5 && n <= 999999 {
			return strconv.Itoa(n), true
		}
	}
	return "", false
}
