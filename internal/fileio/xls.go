package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	xls "github.com/extrame/xls"
)

// .xls из 1С чаще всего cp1251, но иногда UTF-8/KOI8-R
var xlsCharsets = []string{"windows-1251", "utf-8", "koi8-r"}

// предел ширины листа: дальше в выгрузках только мусор форматирования
const xlsProbeCols = 512

func readXLS(r io.Reader, headerRow int) ([]map[string]string, error) {
	if headerRow <= 0 {
		return nil, errors.New("headerRow must be 1-based and >= 1")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := openXLS(b)
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}
	rows := sheetRows(sheet)
	if len(rows) == 0 {
		return nil, nil
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}

func openXLS(b []byte) (*xls.WorkBook, error) {
	var lastErr error
	for _, ch := range xlsCharsets {
		wb, err := xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			return wb, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("failed to open workbook")
	}
	return nil, fmt.Errorf("xls: %w", lastErr)
}

// sheetRows читает лист прямоугольником. Row.LastCol() у xls из 1С врёт,
// поэтому ширина считается по последней непустой ячейке во всём листе.
func sheetRows(sheet *xls.WorkSheet) [][]string {
	raw := make([][]string, 0, int(sheet.MaxRow)+1)
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			raw = append(raw, nil)
			continue
		}
		var cols []string
		for j := 0; j < xlsProbeCols; j++ {
			v := normalizeCell(row.Col(j))
			if v == "" {
				continue
			}
			for len(cols) < j {
				cols = append(cols, "")
			}
			cols = append(cols, v)
		}
		width = max(width, len(cols))
		raw = append(raw, cols)
	}
	if width == 0 {
		return nil
	}
	for i, cols := range raw {
		for len(cols) < width {
			cols = append(cols, "")
		}
		raw[i] = cols
	}
	return raw
}
