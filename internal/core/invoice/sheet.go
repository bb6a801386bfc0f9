package invoice

import (
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// CellKind classifies a cell value.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Value is the content of a single cell. Raw keeps the cached value as read from the file.
type Value struct {
	Kind CellKind
	Raw  string
}

// Text builds a text value. Input is normalised to NFC so keyword matching
// does not depend on how the producing tool composed Cyrillic letters.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: CellText, Raw: norm.NFC.String(s)}
}

// Number builds a numeric value.
func Number(f float64) Value {
	return Value{Kind: CellNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// IsEmpty reports whether the cell holds nothing.
func (v Value) IsEmpty() bool {
	return v.Kind == CellEmpty || v.Raw == ""
}

// String is the stringified cell value.
func (v Value) String() string {
	return v.Raw
}

// Cell is a positioned value, 1-based.
type Cell struct {
	Row int
	Col int
	Value
}

// Sheet is a read-only sparse grid of cells. Absent cells read as empty.
type Sheet struct {
	Name string
	rows [][]Value
}

// NewSheet wraps a row-major grid. rows[0][0] is cell (1, 1).
func NewSheet(name string, rows [][]Value) *Sheet {
	return &Sheet{Name: name, rows: rows}
}

// Cell returns the value at the 1-based (row, col).
func (s *Sheet) Cell(row, col int) Value {
	if row < 1 || col < 1 || row > len(s.rows) {
		return Value{}
	}
	r := s.rows[row-1]
	if col > len(r) {
		return Value{}
	}
	return r[col-1]
}

// Rows is the number of rows in the grid.
func (s *Sheet) Rows() int {
	return len(s.rows)
}

// Each visits every non-empty cell in row-major order.
func (s *Sheet) Each(fn func(Cell)) {
	for ri, row := range s.rows {
		for ci, v := range row {
			if v.IsEmpty() {
				continue
			}
			fn(Cell{Row: ri + 1, Col: ci + 1, Value: v})
		}
	}
}
