package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"price-recon/internal/reconcile/model"
	"price-recon/internal/utils"
)

const (
	DatasetSupplier = "supplier"
	DatasetBase     = "base"
)

// CheckFields проверяет, что колонки артикула, цены и наименования есть в наборе.
// Пустой набор не ошибка: сверять просто нечего.
func CheckFields(rows []map[string]string, f model.Fields, dataset string) error {
	if len(rows) == 0 {
		return nil
	}
	has := func(key string) bool {
		for _, r := range rows {
			if _, ok := r[key]; ok {
				return true
			}
		}
		return false
	}
	if f.Article == "" || !has(f.Article) {
		return &FieldError{Dataset: dataset, Field: f.Article, Role: "article"}
	}
	if f.Price == "" || !has(f.Price) {
		return &FieldError{Dataset: dataset, Field: f.Price, Role: "price"}
	}
	// без наименований стадии 2-4 вслепую ничего не найдут
	if name := nameField(f); !has(name) {
		return &FieldError{Dataset: dataset, Field: name, Role: "name"}
	}
	return nil
}

func nameField(f model.Fields) string {
	if f.Name == "" {
		return "name"
	}
	return f.Name
}

// ToRecords — строки таблицы в ProductRecord. Валидация один раз, здесь.
// skipped: строки, отброшенные из-за цены (только при f.RequirePrice).
func ToRecords(rows []map[string]string, f model.Fields, numericArticle bool) (recs []model.ProductRecord, skipped int) {
	nameKey := nameField(f)
	recs = make([]model.ProductRecord, 0, len(rows))
	for i, row := range rows {
		name := cleanText(row[nameKey])
		article, _ := normalizeArticle(row[f.Article], numericArticle)

		// отсечь полностью пустые строки
		if name == "" && article == "" {
			continue
		}

		price, ok := utils.ParsePrice(row[f.Price])
		if !ok || price.IsNegative() {
			if f.RequirePrice {
				skipped++
				continue
			}
			price = decimal.Zero
		}

		rec := model.ProductRecord{
			Index:   i,
			Article: article,
			Name:    name,
			Price:   price,
		}
		if f.Color != "" {
			rec.Color = NormalizeColor(row[f.Color])
		}
		if c, ok := Capacity(name); ok {
			rec.Capacity = c
		}
		for _, col := range f.AltArticles {
			if v := strings.TrimSpace(cleanText(row[col])); v != "" {
				if rec.Alt == nil {
					rec.Alt = make(map[string]string, len(f.AltArticles))
				}
				rec.Alt[col] = v
			}
		}
		recs = append(recs, rec)
	}
	return recs, skipped
}
