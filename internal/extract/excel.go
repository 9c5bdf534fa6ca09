package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel streams every sheet in workbook order. Cells are tab-separated,
// rows newline-separated; rows with no non-blank cell are dropped so they do not
// use up the prompt's character budget.
func extractExcel(content []byte) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	var lines []string
	for _, sheet := range wb.GetSheetList() {
		sheetLines, err := sheetText(wb, sheet)
		if err != nil {
			return "", fmt.Errorf("sheet %q: %w", sheet, err)
		}
		lines = append(lines, sheetLines...)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func sheetText(wb *excelize.File, sheet string) ([]string, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		if blankRow(cells) {
			continue
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return lines, rows.Error()
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
