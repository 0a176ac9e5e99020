package fileio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	excelize "github.com/xuri/excelize/v2"

	"price-recon/internal/reconcile/model"
)

// листы отчёта в порядке вкладок
const (
	SheetSummary  = "Сводка"
	SheetMatches  = "Совпадения"
	SheetChanges  = "Изменения цен"
	SheetNew      = "Новые товары"
	SheetBrackets = "По скобкам"
	SheetCodes    = "По кодам"
	SheetFuzzy    = "Нечёткие"
)

var matchHeaders = []string{
	"Ключ", "Тип", "Найдено в",
	"Строка поставщика", "Наименование поставщика", "Артикул поставщика", "Цена поставщика",
	"Строка базы", "Наименование в базе", "Артикул в базе", "Цена в базе",
	"Разница", "Изменение, %", "Цвет совпал", "Ёмкость совпала", "Схожесть",
}

var newItemHeaders = []string{
	"Строка поставщика", "Артикул", "Наименование", "Цена", "Цвет", "Ёмкость, мАч",
	"Этап", "Причина", "Похожее в базе", "Схожесть",
}

// WriteReportXLSX пишет отчёт сверки книгой из нескольких листов.
func WriteReportXLSX(w io.Writer, rep model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	summary := [][]any{
		{"Профиль", rep.Opts.Profile},
		{"Строк поставщика", rep.SupplierTotal},
		{"Строк в базе", rep.BaseTotal},
		{"Пропущено (нет цены)", rep.Skipped},
		{"Совпадений по артикулу", len(rep.Matches)},
		{"Изменений цен", len(rep.PriceChanges)},
		{"По кодам в скобках", len(rep.BracketMatches)},
		{"По брендам/кодам", len(rep.CodeMatches)},
		{"Нечётких", len(rep.FuzzyMatches)},
		{"Новых товаров", rep.UnmatchedCount},
		{"Совпадение по артикулу, %", round2(rep.MatchRate)},
		{"Порог схожести", rep.Opts.Threshold},
		{"Порог изменения цены, %", rep.Opts.ChangePercent},
	}
	for i, row := range summary {
		if err := writeRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	_ = f.SetColStyle(SheetSummary, "A", bold)
	_ = f.SetColWidth(SheetSummary, "A", "A", 32)

	if err := writeMatches(f, SheetMatches, rep.Matches, bold); err != nil {
		return err
	}
	if err := writeMatches(f, SheetChanges, rep.PriceChanges, bold); err != nil {
		return err
	}
	if err := writeNewItems(f, rep.NewItems, bold); err != nil {
		return err
	}
	if err := writeMatches(f, SheetBrackets, rep.BracketMatches, bold); err != nil {
		return err
	}
	if err := writeMatches(f, SheetCodes, rep.CodeMatches, bold); err != nil {
		return err
	}
	if err := writeMatches(f, SheetFuzzy, rep.FuzzyMatches, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}

// WriteReportJSON пишет отчёт JSON с отступами (тот же формат, что отдаёт API).
func WriteReportJSON(w io.Writer, rep model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func writeMatches(f *excelize.File, sheet string, rows []model.MatchRecord, headerStyle int) error {
	if err := newSheet(f, sheet, matchHeaders, headerStyle); err != nil {
		return err
	}
	for i, m := range rows {
		var sim any = ""
		if m.Similarity != nil {
			sim = round4(*m.Similarity)
		}
		row := []any{
			m.Key, string(m.Kind), m.MatchedIn,
			m.SupplierIndex + 1, m.SupplierName, m.SupplierArticle, money(m.SupplierPrice),
			m.BaseIndex + 1, m.BaseName, m.BaseArticle, money(m.BasePrice),
			money(m.PriceDiff), round2(m.PriceChangePercent), yesNo(m.ColorMatch), yesNo(m.CapacityMatch), sim,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeNewItems(f *excelize.File, items []model.UnmatchedItem, headerStyle int) error {
	if err := newSheet(f, SheetNew, newItemHeaders, headerStyle); err != nil {
		return err
	}
	for i, u := range items {
		var hintName, hintScore any = "", ""
		if u.Hint != nil {
			hintName, hintScore = u.Hint.BaseName, round4(u.Hint.Score)
		}
		r := u.Record
		row := []any{
			r.Index + 1, r.Article, r.Name, money(r.Price), r.Color, r.Capacity,
			string(u.Stage), u.Reason, hintName, hintScore,
		}
		if err := writeRow(f, SheetNew, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, name string, headers []string, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := writeRow(f, name, 1, row); err != nil {
		return err
	}
	_ = f.SetRowStyle(name, 1, 1, headerStyle)
	return f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeRow(f *excelize.File, sheet string, r int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, r, err)
	}
	return nil
}

func money(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func round2(v float64) float64 { return decimal.NewFromFloat(v).Round(2).InexactFloat64() }

func round4(v float64) float64 { return decimal.NewFromFloat(v).Round(4).InexactFloat64() }

func yesNo(b bool) string {
	if b {
		return "да"
	}
	return "нет"
}
