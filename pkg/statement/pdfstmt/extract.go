package pdfstmt

import (
	"github.com/ledongthuc/pdf"
)

// Horizontal gap (pt) that separates two table cells. Statements this
// package targets use a fixed column layout, so a constant is enough
const cellGap = 12.0

// extractTables reads every page of a PDF and reconstructs one table per
// page from positioned text: words on one text row are clustered into
// cells by their horizontal gaps
func extractTables(path string) ([][][]string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tables := make([][][]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, err
		}
		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			if cells := rowToCells(row); len(cells) > 0 {
				table = append(table, cells)
			}
		}
		if len(table) > 0 {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func rowToCells(row *pdf.Row) []string {
	var cells []string
	var current string
	var prevEnd float64

	for _, text := range row.Content {
		if current != "" && text.X-prevEnd > cellGap {
			cells = append(cells, current)
			current = ""
		}
		current += text.S
		prevEnd = text.X + text.W
	}
	if current != "" {
		cells = append(cells, current)
	}
	return cells
}
