package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-recon/internal/reconcile/model"
)

func TestDetect(t *testing.T) {
	tests := map[string]string{
		"JHT_price_2024-05.xlsx":     Vitya,
		"/tmp/upload/price_jht.xls":  Vitya,
		"DiMi 12.03.xlsx":            Dimi,
		"dima-stock.csv":             Dimi,
		"supplier.xlsx":              Default,
		`C:\prices\jht\supplier.csv`: Default,
	}
	for in, want := range tests {
		assert.Equal(t, want, Detect(in), in)
	}
}

func TestGetAndNames(t *testing.T) {
	assert.Equal(t, []string{Default, Dimi, Vitya}, Names())

	p, ok := Get(" VITYA ")
	require.True(t, ok)
	assert.Equal(t, "article_vitya", p.Supplier.Article)
	assert.Equal(t, "price_vitya_usd", p.Base.Price)
	assert.True(t, p.NumericArticle)

	_, ok = Get("unknown")
	assert.False(t, ok)

	assert.Len(t, All(), 3)
}

func TestResolve(t *testing.T) {
	p, ok := Resolve("auto", "DIMA.xlsx")
	require.True(t, ok)
	assert.Equal(t, Dimi, p.Name)

	p, ok = Resolve("", "whatever.csv")
	require.True(t, ok)
	assert.Equal(t, Default, p.Name)

	p, ok = Resolve("vitya", "DIMA.xlsx")
	require.True(t, ok)
	assert.Equal(t, Vitya, p.Name)
}

func TestApply(t *testing.T) {
	p, _ := Get(Dimi)
	opt := p.Apply(model.Options{Threshold: 0.5, EnableFuzzy: true})

	assert.Equal(t, Dimi, opt.Profile)
	assert.Equal(t, 0.5, opt.Threshold)
	assert.True(t, opt.EnableFuzzy)
	assert.False(t, opt.NumericArticle)
	assert.Equal(t, "article_dimi", opt.Supplier.Article)
	assert.Equal(t, "price_dimi_usd", opt.Base.Price)
	assert.Equal(t, []string{"article_vitya", "article_dimi"}, opt.Base.AltArticles)
	assert.True(t, opt.Supplier.RequirePrice)
	assert.False(t, opt.Base.RequirePrice)
}

func TestPrepare(t *testing.T) {
	p, _ := Get(Vitya)
	supplier := []map[string]string{
		{"Наименование": "Widget", "Артикул": "'000123", "Цена USD": "10", "Остаток": "Имеются в нал."},
		{"Наименование": "Gadget", "Артикул": "124", "Цена USD": "0", "Остаток": "Имеются в нал."},
	}
	base := []map[string]string{{"name": "Widget", "article_vitya": "123", "price_vitya_usd": "9"}}

	s, b, st := p.Prepare(supplier, base)
	require.Len(t, s, 1)
	assert.Equal(t, "123", s[0]["article_vitya"])
	assert.Equal(t, "Widget", s[0]["name"])
	assert.Equal(t, "10", s[0]["price_usd"])
	assert.Equal(t, 1, st.ByPrice)
	require.Len(t, b, 1)
	assert.Equal(t, "9", b[0]["price_vitya_usd"])
	assert.Equal(t, "123", b[0]["article_vitya"])
}
