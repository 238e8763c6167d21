package ingest

import (
	"fmt"

	"github.com/weilun/chipscan/internal/scoring"
)

// MarginTable is the margin-financing balance export (MI_MARGN) with its
// logical columns resolved. The export carries 前日餘額/今日餘額 pairs for
// both financing and short-selling blocks; the first pair is the financing
// (融資) block, which is the one this system scores.
type MarginTable struct {
	table   *Table
	codeCol int
	prevCol int
	currCol int
}

// NewMarginTable resolves the code and balance columns, failing when the
// parsed table does not look like an MI_MARGN export.
func NewMarginTable(t *Table) (*MarginTable, error) {
	codeCol := t.ColumnIndex("代號")
	prevCol := t.ColumnIndex("前日餘額")
	currCol := t.ColumnIndex("今日餘額")
	if codeCol == -1 || prevCol == -1 || currCol == -1 {
		return nil, fmt.Errorf("margin export: missing 代號/前日餘額/今日餘額 columns in %v", t.Headers)
	}

	return &MarginTable{table: t, codeCol: codeCol, prevCol: prevCol, currCol: currCol}, nil
}

// LoadMargin reads and parses an MI_MARGN export file.
func LoadMargin(path string) (*MarginTable, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return NewMarginTable(t)
}

// Rows returns the export's margin-balance snapshots in input order.
func (t *MarginTable) Rows() []scoring.MarginRow {
	rows := make([]scoring.MarginRow, 0, len(t.table.Rows))
	for _, rec := range t.table.Rows {
		rows = append(rows, scoring.MarginRow{
			RawCode:     t.table.Cell(rec, t.codeCol),
			PrevBalance: t.table.Cell(rec, t.prevCol),
			CurrBalance: t.table.Cell(rec, t.currCol),
		})
	}
	return rows
}
