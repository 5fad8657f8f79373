package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetRow 一行数据，按表头列名取值
type sheetRow struct {
	header map[string]int
	cells  []string
}

// get 按列名取值（去首尾空白）。支持多个候选列名，英文名优先、日文名兜底；
// 只在列缺失时回退，不在值为空时回退。
func (r sheetRow) get(names ...string) string {
	for _, name := range names {
		idx, ok := r.header[name]
		if !ok {
			continue
		}
		if idx < len(r.cells) {
			return strings.TrimSpace(r.cells[idx])
		}
		return ""
	}
	return ""
}

// readSheet 读取工作簿第一个工作表，第一行当表头，返回数据行
func readSheet(f *excelize.File) ([]sheetRow, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, exists := header[trimmed]; !exists {
			header[trimmed] = i
		}
	}

	out := make([]sheetRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		out = append(out, sheetRow{header: header, cells: cells})
	}
	return out, nil
}
