package service

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/shopspring/decimal"

	"price-recon/internal/reconcile/model"
)

// pending — товар поставщика, ещё не закреплённый ни одним этапом.
type pending struct {
	rec    model.ProductRecord
	reason string
}

var hundred = decimal.NewFromInt(100)

// changePercent — (s-b)/b*100; при b == 0 по контракту 0.
func changePercent(s, b decimal.Decimal) float64 {
	if !b.IsPositive() {
		return 0
	}
	return s.Sub(b).Div(b).Mul(hundred).InexactFloat64()
}

func newMatch(kind model.MatchKind, key string, s, b model.ProductRecord) model.MatchRecord {
	return model.MatchRecord{
		Key:                key,
		Kind:               kind,
		SupplierIndex:      s.Index,
		BaseIndex:          b.Index,
		SupplierName:       s.Name,
		BaseName:           b.Name,
		SupplierArticle:    s.Article,
		BaseArticle:        b.Article,
		SupplierPrice:      s.Price,
		BasePrice:          b.Price,
		PriceDiff:          s.Price.Sub(b.Price),
		PriceChangePercent: changePercent(s.Price, b.Price),
		ColorMatch:         sameColor(s, b),
		CapacityMatch:      sameCapacity(s, b),
	}
}

// (1) Точное совпадение артикула.
// Дубли артикула в базе: берётся первая строка (порядок исходного файла).
func matchByArticle(supplier, base []model.ProductRecord, changeLimit float64) (matches, changes []model.MatchRecord, pool []pending) {
	byArticle := make(map[string]model.ProductRecord, len(base))
	for _, b := range base {
		if b.Article == "" {
			continue
		}
		if _, dup := byArticle[b.Article]; !dup {
			byArticle[b.Article] = b
		}
	}

	for _, s := range supplier {
		if s.Article == "" {
			pool = append(pool, pending{rec: s, reason: model.ReasonNoArticle})
			continue
		}
		b, ok := byArticle[s.Article]
		if !ok {
			pool = append(pool, pending{rec: s, reason: model.ReasonArticleNotFound})
			continue
		}
		m := newMatch(model.KindArticle, s.Article, s, b)
		matches = append(matches, m)
		if math.Abs(m.PriceChangePercent) > changeLimit {
			changes = append(changes, m)
		}
	}
	return matches, changes, pool
}

type extractFunc func(string) (string, bool)

// codeIndex: код -> кандидаты базы в порядке строк.
// Коды берутся из наименования и из колонок альтернативных артикулов.
func codeIndex(base []model.ProductRecord, altCols []string, fromName, fromAlt extractFunc) map[string][]Candidate {
	idx := make(map[string][]Candidate)
	for _, b := range base {
		seen := map[string]bool{}
		add := func(code, in string) {
			if seen[code] {
				return
			}
			seen[code] = true
			idx[code] = append(idx[code], Candidate{Record: b, MatchedIn: in})
		}
		if code, ok := fromName(b.Name); ok {
			add(code, model.MatchedInName)
		}
		for _, col := range altCols {
			v, ok := b.Alt[col]
			if !ok {
				continue
			}
			if code, ok := fromAlt(v); ok {
				add(code, col)
			}
		}
	}
	return idx
}

// (2)/(3) Совпадение по коду из наименования. Что не нашлось, уходит дальше.
func matchByCode(pool []pending, idx map[string][]Candidate, extract extractFunc, kind model.MatchKind) (matches []model.MatchRecord, rest []pending) {
	for _, p := range pool {
		code, ok := extract(p.rec.Name)
		if !ok {
			rest = append(rest, p)
			continue
		}
		c, _, _, ok := PickVariant(p.rec, idx[code])
		if !ok {
			rest = append(rest, p)
			continue
		}
		m := newMatch(kind, code, p.rec, c.Record)
		m.MatchedIn = c.MatchedIn
		matches = append(matches, m)
	}
	return matches, rest
}

// nameIndex — заранее разрезанные наименования базы.
type nameIndex struct {
	recs []model.ProductRecord
	seqs [][]string
}

func buildNameIndex(base []model.ProductRecord) *nameIndex {
	idx := &nameIndex{}
	for _, b := range base {
		if b.Name == "" {
			continue
		}
		idx.recs = append(idx.recs, b)
		idx.seqs = append(idx.seqs, runes(b.Name))
	}
	return idx
}

// best ищет строку базы с максимальной схожестью; при равенстве первую.
func (idx *nameIndex) best(name string) (model.ProductRecord, float64, bool) {
	q := runes(name)
	if len(q) == 0 {
		return model.ProductRecord{}, 0, false
	}
	bestScore := 0.0
	bestAt := -1
	for i, seq := range idx.seqs {
		m := difflib.NewMatcher(q, seq)
		// верхние оценки дешевле Ratio; равный счёт всё равно проигрывает первому
		if m.RealQuickRatio() <= bestScore || m.QuickRatio() <= bestScore {
			continue
		}
		if s := m.Ratio(); s > bestScore {
			bestScore, bestAt = s, i
		}
	}
	if bestAt < 0 {
		return model.ProductRecord{}, 0, false
	}
	return idx.recs[bestAt], bestScore, true
}

// (4) Нечёткое совпадение наименования, порог включительно.
// Не прошедшие порог получают подсказку (лучший кандидат) для отчёта.
func matchByName(pool []pending, idx *nameIndex, threshold float64) (matches []model.MatchRecord, rest []model.UnmatchedItem) {
	for _, p := range pool {
		b, score, ok := idx.best(p.rec.Name)
		if ok && score >= threshold {
			key := p.rec.Article
			if key == "" {
				key = b.Article
			}
			m := newMatch(model.KindFuzzyName, key, p.rec, b)
			val := score
			m.Similarity = &val
			matches = append(matches, m)
			continue
		}
		rest = append(rest, unmatched(p, model.StageFuzzyName, b, score, ok))
	}
	return matches, rest
}

func unmatched(p pending, stage model.Stage, hint model.ProductRecord, score float64, ok bool) model.UnmatchedItem {
	u := model.UnmatchedItem{Record: p.rec, Stage: stage, Reason: p.reason}
	if ok {
		u.Hint = &model.FuzzyHint{BaseIndex: hint.Index, BaseName: hint.Name, Score: score}
	}
	return u
}
