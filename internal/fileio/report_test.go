package fileio

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"price-recon/internal/reconcile/model"
)

func sampleReport() model.Report {
	sim := 0.6667
	m := model.MatchRecord{
		Key: "A1", Kind: model.KindArticle,
		SupplierName: "Widget", BaseName: "Widget",
		SupplierPrice: decimal.NewFromInt(12), BasePrice: decimal.NewFromInt(10),
		PriceDiff: decimal.NewFromInt(2), PriceChangePercent: 20,
	}
	fz := model.MatchRecord{Key: "W1", Kind: model.KindFuzzyName, SupplierName: "Blue Widget Pro", Similarity: &sim}
	return model.Report{
		SupplierTotal:  3,
		BaseTotal:      2,
		Matches:        []model.MatchRecord{m},
		PriceChanges:   []model.MatchRecord{m},
		FuzzyMatches:   []model.MatchRecord{fz},
		BracketMatches: []model.MatchRecord{},
		CodeMatches:    []model.MatchRecord{},
		NewItems: []model.UnmatchedItem{{
			Record: model.ProductRecord{Index: 2, Article: "Z9", Name: "Кабель"},
			Stage:  model.StageFuzzyName,
			Reason: model.ReasonArticleNotFound,
		}},
		UnmatchedCount: 1,
		MatchRate:      33.333,
		Opts:           model.Options{Profile: "default", Threshold: 0.33, ChangePercent: 5},
	}
}

func TestWriteReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetSummary, SheetMatches, SheetChanges, SheetNew, SheetBrackets, SheetCodes, SheetFuzzy,
	}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "default", v)

	rows, err := f.GetRows(SheetChanges)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A1", rows[1][0])
	assert.Equal(t, "20", rows[1][12])

	rows, err = f.GetRows(SheetNew)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "Кабель", rows[1][2])

	rows, err = f.GetRows(SheetBrackets)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, sampleReport()))

	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.EqualValues(t, 3, back["supplierTotal"])
	assert.Len(t, back["bracketMatches"], 0)
	assert.Contains(t, buf.String(), `"priceDiff": "2"`)
}
