package service

import "price-recon/internal/reconcile/model"

// Candidate: строка базы с общим ключом и поле, где этот ключ найден.
type Candidate struct {
	Record    model.ProductRecord
	MatchedIn string
}

// PickVariant выбирает кандидата по совпадению цвета и ёмкости:
// цвет+ёмкость -> цвет -> ёмкость -> первый в группе.
// Пустое значение у поставщика совпадением не считается.
// ok=false только для пустой группы.
func PickVariant(s model.ProductRecord, group []Candidate) (c Candidate, colorMatch, capacityMatch, ok bool) {
	if len(group) == 0 {
		return Candidate{}, false, false, false
	}
	for _, g := range group {
		if sameColor(s, g.Record) && sameCapacity(s, g.Record) {
			return g, true, true, true
		}
	}
	for _, g := range group {
		if sameColor(s, g.Record) {
			return g, true, false, true
		}
	}
	for _, g := range group {
		if sameCapacity(s, g.Record) {
			return g, false, true, true
		}
	}
	return group[0], false, false, true
}

func sameColor(a, b model.ProductRecord) bool {
	ca := NormalizeColor(a.Color)
	return ca != "" && ca == NormalizeColor(b.Color)
}

func sameCapacity(a, b model.ProductRecord) bool {
	return a.Capacity != "" && a.Capacity == b.Capacity
}
