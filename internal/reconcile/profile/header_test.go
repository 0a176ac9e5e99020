package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormHeaderKey(t *testing.T) {
	assert.Equal(t, "цена usd", normHeaderKey("  Цена,\u00A0USD "))
	assert.Equal(t, "счет", normHeaderKey("Счёт"))
	assert.Equal(t, "", normHeaderKey("--"))
}

func TestResolveKey(t *testing.T) {
	rec := map[string]string{"Наименование товара": "", "Цена USD": "", "": ""}

	assert.Equal(t, "Наименование товара", resolveKey(rec, "name|наименование"))
	assert.Equal(t, "Цена USD", resolveKey(rec, "price_usd|цена usd"))
	assert.Equal(t, "", resolveKey(rec, "color|цвет"))
	assert.Equal(t, "", resolveKey(rec, ""))

	// точное имя важнее похожего
	rec["name"] = ""
	assert.Equal(t, "name", resolveKey(rec, "name|наименование"))
}

func TestCanonicalize(t *testing.T) {
	rows := []map[string]string{
		{"Наименование": "Наименование", "Артикул": "Артикул", "Цена": "Цена"},
		{"Наименование": "Widget", "Артикул": "A1", "Цена": "10"},
	}
	aliases := map[string]string{
		"name":    "name|наименование",
		"article": "article|артикул",
		"price":   "price|цена",
		"color":   "color|цвет",
	}
	out := Canonicalize(rows, aliases)
	require.Len(t, out, 1)
	assert.Equal(t, "Widget", out[0]["name"])
	assert.Equal(t, "A1", out[0]["article"])
	assert.Equal(t, "10", out[0]["price"])
	assert.Equal(t, "A1", out[0]["Артикул"])
	_, hasColor := out[0]["color"]
	assert.False(t, hasColor)

	// каноническая колонка уже есть: не перезаписываем
	out = Canonicalize([]map[string]string{{"article": "X", "Артикул": "Y"}}, aliases)
	require.Len(t, out, 1)
	assert.Equal(t, "X", out[0]["article"])
}
