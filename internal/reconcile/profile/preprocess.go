package profile

import (
	"strings"

	"github.com/shopspring/decimal"

	"price-recon/internal/utils"
)

// MinPrice — строки прайса с ценой не выше этой отбрасываются.
var MinPrice = decimal.RequireFromString("0.01")

type Stats struct {
	Total     int `json:"total"`
	Kept      int `json:"kept"`
	ByPrice   int `json:"removedByPrice"`
	ByBalance int `json:"removedByBalance"`
}

// Preprocess чистит прайс поставщика до сверки: цена, наличие, артикул.
// Входные строки не меняются. Фильтр по колонке, которой нет в прайсе, пропускается.
func Preprocess(rows []map[string]string, p Profile) ([]map[string]string, Stats) {
	st := Stats{Total: len(rows)}

	priceCol := p.Supplier.Price
	checkPrice := hasColumn(rows, priceCol)

	var keepCol string
	if p.Balance.Keep != "" && len(p.Balance.Columns) > 0 && hasColumn(rows, p.Balance.Columns[0]) {
		keepCol = p.Balance.Columns[0]
	}
	var dropCols []string
	if p.Balance.Drop != "" {
		for _, c := range p.Balance.Columns {
			if hasColumn(rows, c) {
				dropCols = append(dropCols, c)
			}
		}
	}

	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		if checkPrice {
			price, ok := utils.ParsePrice(r[priceCol])
			if !ok || price.LessThanOrEqual(MinPrice) {
				st.ByPrice++
				continue
			}
		}
		if keepCol != "" && strings.TrimSpace(r[keepCol]) != p.Balance.Keep {
			st.ByBalance++
			continue
		}
		if dropped(r, dropCols, p.Balance.Drop) {
			st.ByBalance++
			continue
		}

		n := make(map[string]string, len(r))
		for k, v := range r {
			n[k] = v
		}
		if v, ok := n[p.Supplier.Article]; ok {
			n[p.Supplier.Article] = CleanArticle(v)
		}
		out = append(out, n)
	}
	st.Kept = len(out)
	return out, st
}

// CleanArticle убирает апострофы (Excel хранит так текстовые числа) и префикс "000".
func CleanArticle(v string) string {
	s := strings.TrimSpace(v)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimPrefix(s, "000")
}

func dropped(r map[string]string, cols []string, value string) bool {
	for _, c := range cols {
		if strings.TrimSpace(r[c]) == value {
			return true
		}
	}
	return false
}

func hasColumn(rows []map[string]string, col string) bool {
	if col == "" {
		return false
	}
	for _, r := range rows {
		if _, ok := r[col]; ok {
			return true
		}
	}
	return false
}
