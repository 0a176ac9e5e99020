package profile

import (
	"regexp"
	"sort"
	"strings"
)

var (
	headerRepl = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е") // NBSP/NNBSP
	rxNonWord  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// нормализуем имя колонки: нижний регистр, убираем служ.символы/множественные пробелы/ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = headerRepl.Replace(s)
	s = rxNonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ищем реальный ключ в записи по желаемому имени.
// Поддерживает варианты через "|" (например: "Наименование|Номенклатура")
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// точное совпадение (как есть)
	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	nWant := normHeaderKey(alts[0])
	var nWantAll []string
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			nWantAll = append(nWantAll, n)
		}
	}

	// ключи по порядку, чтобы при равном счёте результат не зависел от map
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := ""
	bestScore := 0
	for _, k := range keys {
		nk := normHeaderKey(k)
		if nk == "" {
			continue
		}
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		// частичное: want ⊂ key  или  key ⊂ want
		// пример: "цена usd опт" содержит "цена usd"
		score := 0
		for _, n := range nWantAll {
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = max(score, len(n))
			}
		}
		if strings.Contains(nWant, "наимен") && strings.Contains(nk, "наимен") {
			score += 100
		}
		if strings.Contains(nWant, "артикул") && strings.Contains(nk, "артикул") {
			score += 100
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// looksLikeHeaderMap ловит повторённую шапку внутри листа (выгрузки 1С так делают на каждой странице).
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.Contains(s, "наимен") || strings.Contains(s, "артикул") ||
			strings.Contains(s, "цена") || strings.Contains(s, "итого") {
			cnt++
		}
	}
	return cnt >= 2
}

// Canonicalize копирует значения из реальных колонок в канонические имена
// (aliases: каноническое -> "вариант1|вариант2"). Уже существующие канонические
// колонки не трогаются, исходные колонки остаются. Повторные шапки выкидываются.
func Canonicalize(rows []map[string]string, aliases map[string]string) []map[string]string {
	if len(rows) == 0 {
		return rows
	}

	headers := map[string]string{}
	for _, r := range rows {
		for k := range r {
			headers[k] = ""
		}
	}

	canon := make([]string, 0, len(aliases))
	for c := range aliases {
		canon = append(canon, c)
	}
	sort.Strings(canon)

	rename := map[string]string{} // реальная -> каноническая
	for _, c := range canon {
		if _, ok := headers[c]; ok {
			continue
		}
		k := resolveKey(headers, aliases[c])
		if k == "" {
			continue
		}
		if _, taken := rename[k]; taken {
			continue
		}
		rename[k] = c
	}

	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		if looksLikeHeaderMap(r) {
			continue
		}
		n := make(map[string]string, len(r)+len(rename))
		for k, v := range r {
			n[k] = v
		}
		for raw, c := range rename {
			if v, ok := r[raw]; ok {
				n[c] = v
			}
		}
		out = append(out, n)
	}
	return out
}
