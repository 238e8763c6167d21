package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// ErrNoHeader means no decoding of the input produced a recognizable header
// row. The exports this package reads are generated for Excel, not for
// machines: encoding varies between UTF-8 (with or without BOM) and CP950,
// several preamble lines precede the header, and a free-text footer follows
// the data.
var ErrNoHeader = errors.New("ingest: no header row found in any supported encoding")

// Table is a parsed regulatory CSV export with cleaned header names.
// Read-only once built.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseTable decodes and parses a raw export. Each candidate decoding is
// accepted only if a header row (a line containing both 代號 and 名稱) can be
// located in it, mirroring how the exchange files are actually sniffed.
func ParseTable(raw []byte) (*Table, error) {
	for _, text := range decodings(raw) {
		if t, ok := parseFrom(text); ok {
			return t, nil
		}
	}
	return nil, ErrNoHeader
}

// LoadTable reads and parses an export file.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	t, err := ParseTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return t, nil
}

// ColumnIndex returns the first header whose cleaned name contains substr,
// or -1. Exports rename columns between revisions; substring match is the
// only stable contract.
func (t *Table) ColumnIndex(substr string) int {
	for i, h := range t.Headers {
		if strings.Contains(h, substr) {
			return i
		}
	}
	return -1
}

// Cell returns row[col], or "" when the row is ragged.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// decodings returns candidate text decodings of raw, in sniffing order:
// UTF-8 with BOM, CP950/Big5, then raw UTF-8 as a last resort.
func decodings(raw []byte) []string {
	var out []string

	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		out = append(out, string(raw[3:]))
	} else if utf8.Valid(raw) {
		out = append(out, string(raw))
	}

	if decoded, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), raw); err == nil {
		out = append(out, string(decoded))
	}

	out = append(out, string(raw))
	return out
}

// parseFrom locates the header line in decoded text and parses the CSV body
// below it. Footer/annotation lines with fewer than two fields are dropped.
func parseFrom(text string) (*Table, bool) {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	for i, line := range lines {
		clean := cleanCell(line)
		if strings.Contains(clean, "代號") && strings.Contains(clean, "名稱") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, false
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	r.FieldsPerRecord = -1 // exports are ragged
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return nil, false
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = cleanCell(h)
	}

	t := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, true
}

// cleanCell strips the Excel-escape artifacts the exchange wraps cells in.
func cleanCell(s string) string {
	return strings.TrimSpace(strings.NewReplacer(`"`, "", " ", "", "=", "").Replace(s))
}
