// Package profile описывает известных поставщиков: колонки прайса и базы,
// чистку прайса и определение поставщика по имени файла.
package profile

import (
	"sort"
	"strings"

	"price-recon/internal/reconcile/model"
)

const (
	Vitya   = "vitya"
	Dimi    = "dimi"
	Default = "default"

	// Auto: определить профиль по имени файла поставщика.
	Auto = "auto"
)

// BalanceRule: фильтр по наличию. Keep: оставить только строки с этим значением
// в первой колонке из Columns. Drop: убрать строку, если любая колонка равна Drop.
// Отсутствующие колонки фильтр не применяют.
type BalanceRule struct {
	Columns []string
	Keep    string
	Drop    string
}

type Profile struct {
	Name           string       `json:"name"`
	Title          string       `json:"title"`
	Supplier       model.Fields `json:"-"`
	Base           model.Fields `json:"-"`
	NumericArticle bool         `json:"numericArticle"`
	Balance        BalanceRule  `json:"-"`
}

// колонки альтернативных артикулов в базе
var baseAltArticles = []string{"article_vitya", "article_dimi"}

var commonAliases = map[string]string{
	"name":  "name|наименование|номенклатура|товар",
	"color": "color|цвет",
}

func aliases(extra map[string]string) map[string]string {
	out := make(map[string]string, len(commonAliases)+len(extra))
	for k, v := range commonAliases {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func supplierFields(article, price string, extra map[string]string) model.Fields {
	return model.Fields{
		Name:          "name",
		Article:       article,
		Price:         price,
		Color:         "color",
		RequirePrice:  true,
		HeaderAliases: aliases(extra),
	}
}

func baseFields(article, price string) model.Fields {
	return model.Fields{
		Name:        "name",
		Article:     article,
		Price:       price,
		Color:       "color",
		AltArticles: baseAltArticles,
		HeaderAliases: aliases(map[string]string{
			"article":         "article|артикул",
			"price":           "price|цена",
			"price_vitya_usd": "price_vitya_usd|цена витя usd",
			"price_dimi_usd":  "price_dimi_usd|цена дима usd",
		}),
	}
}

var registry = map[string]Profile{
	Vitya: {
		Name:  Vitya,
		Title: "Витя",
		Supplier: supplierFields("article_vitya", "price_usd", map[string]string{
			"article_vitya": "article_vitya|артикул|код",
			"price_usd":     "price_usd|цена usd|цена $",
			"balance":       "balance|остаток|наличие",
		}),
		Base:           baseFields("article_vitya", "price_vitya_usd"),
		NumericArticle: true,
		Balance:        BalanceRule{Columns: []string{"balance"}, Keep: "Имеются в нал."},
	},
	Dimi: {
		Name:  Dimi,
		Title: "Дима",
		Supplier: supplierFields("article_dimi", "price_usd", map[string]string{
			"article_dimi": "article_dimi|артикул|код",
			"price_usd":    "price_usd|цена usd|цена $",
		}),
		Base:    baseFields("article_dimi", "price_dimi_usd"),
		Balance: BalanceRule{Columns: []string{"balance", "balance1"}, Drop: "Ожидается"},
	},
	Default: {
		Name:  Default,
		Title: "Общий",
		Supplier: supplierFields("article", "price", map[string]string{
			"article": "article|артикул|код",
			"price":   "price|цена",
		}),
		Base: baseFields("article", "price"),
	},
}

// Get ищет профиль по имени без учёта регистра.
func Get(name string) (Profile, bool) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names возвращает имена профилей по алфавиту.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func All() []Profile {
	names := Names()
	out := make([]Profile, 0, len(names))
	for _, n := range names {
		out = append(out, registry[n])
	}
	return out
}

// Detect — профиль по имени файла прайса: JHT -> vitya, DIMI/DIMA -> dimi.
func Detect(filename string) string {
	up := strings.ToUpper(filename)
	if i := strings.LastIndexAny(up, `/\`); i >= 0 {
		up = up[i+1:]
	}
	switch {
	case strings.Contains(up, "JHT"):
		return Vitya
	case strings.Contains(up, "DIMI"), strings.Contains(up, "DIMA"):
		return Dimi
	default:
		return Default
	}
}

// Resolve: пустое имя или "auto" -> Detect(filename), иначе Get.
func Resolve(name, filename string) (Profile, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == Auto {
		n = Detect(filename)
	}
	return Get(n)
}

// Apply переносит колонки профиля в опции сверки. Пороги и флаги этапов не трогает.
func (p Profile) Apply(opt model.Options) model.Options {
	opt.Profile = p.Name
	opt.NumericArticle = p.NumericArticle
	opt.Supplier = p.Supplier
	opt.Base = p.Base
	return opt
}

// Prepare приводит заголовки обеих сторон к каноническим и чистит прайс поставщика.
func (p Profile) Prepare(supplierRows, baseRows []map[string]string) (supplier, base []map[string]string, st Stats) {
	supplier = Canonicalize(supplierRows, p.Supplier.HeaderAliases)
	base = Canonicalize(baseRows, p.Base.HeaderAliases)
	supplier, st = Preprocess(supplier, p)
	return supplier, base, st
}
