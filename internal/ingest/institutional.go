package ingest

import (
	"fmt"

	"github.com/weilun/chipscan/internal/scoring"
)

// InstitutionalTable is the institutional net-buy/sell export (T86) with its
// logical columns resolved.
type InstitutionalTable struct {
	table   *Table
	codeCol int
	nameCol int
}

// NewInstitutionalTable resolves the code and name columns, failing when the
// parsed table does not look like a T86 export.
func NewInstitutionalTable(t *Table) (*InstitutionalTable, error) {
	codeCol := t.ColumnIndex("代號")
	nameCol := t.ColumnIndex("名稱")
	if codeCol == -1 || nameCol == -1 {
		return nil, fmt.Errorf("institutional export: missing 代號/名稱 columns in %v", t.Headers)
	}

	return &InstitutionalTable{table: t, codeCol: codeCol, nameCol: nameCol}, nil
}

// LoadInstitutional reads and parses a T86 export file.
func LoadInstitutional(path string) (*InstitutionalTable, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return NewInstitutionalTable(t)
}

// Rows returns the export's securities in input order.
func (t *InstitutionalTable) Rows() []scoring.FlowRow {
	rows := make([]scoring.FlowRow, 0, len(t.table.Rows))
	for _, rec := range t.table.Rows {
		rows = append(rows, scoring.FlowRow{
			RawCode: t.table.Cell(rec, t.codeCol),
			Name:    cleanCell(t.table.Cell(rec, t.nameCol)),
		})
	}
	return rows
}
