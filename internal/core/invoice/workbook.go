package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported workbook file format")
	ErrNoSheets          = errors.New("workbook has no sheets")
)

// cfbSignature is the header of an OLE compound file, the legacy .xls container.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// LoadSheet reads the active sheet of an .xlsx workbook, falling back to the
// first sheet of a legacy .xls workbook. xlsx formula cells yield their cached
// values; .xls formula cells read as empty.
func LoadSheet(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		defer f.Close()
		return sheetFromXLSX(f)
	}

	if !bytes.HasPrefix(data, cfbSignature) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return sheetFromXLS(workbook)
}

func activeSheetName(f *excelize.File) string {
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name
	}
	if list := f.GetSheetList(); len(list) > 0 {
		return list[0]
	}
	return ""
}

func sheetFromXLSX(f *excelize.File) (*Sheet, error) {
	name := activeSheetName(f)
	if name == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	grid := make([][]Value, len(rows))
	for ri, row := range rows {
		grid[ri] = make([]Value, len(row))
		for ci, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", axis, err)
			}
			grid[ri][ci] = classifyXLSX(typ, raw)
		}
	}
	return NewSheet(name, grid), nil
}

func classifyXLSX(typ excelize.CellType, raw string) Value {
	switch typ {
	case excelize.CellTypeBool:
		return boolText(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return Text(raw)
	}
	// Stored numbers may be written in exponent form, e.g. "1.5E-3".
	if isFiniteNumber(raw, true) {
		return Value{Kind: CellNumber, Raw: raw}
	}
	return Text(raw)
}

// boolText spells boolean cells the way spreadsheet tools display them, so a
// TRUE amount is never read as 1.
func boolText(raw string) Value {
	switch raw {
	case "1":
		return Text("TRUE")
	case "0":
		return Text("FALSE")
	}
	return Text(raw)
}

// classifyRaw is used where the container carries no reliable type tag.
// Only letter-free finite decimals count as numbers; "Inf", "NaN" and "1e3"
// stay text.
func classifyRaw(raw string) Value {
	if raw == "" {
		return Value{}
	}
	if isFiniteNumber(raw, false) {
		return Value{Kind: CellNumber, Raw: raw}
	}
	return Text(raw)
}

func isFiniteNumber(raw string, exponent bool) bool {
	s := strings.TrimSpace(raw)
	letter := strings.IndexFunc(s, func(r rune) bool {
		if exponent && (r == 'e' || r == 'E') {
			return false
		}
		return unicode.IsLetter(r)
	})
	if letter >= 0 {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func sheetFromXLS(workbook xls.Workbook) (*Sheet, error) {
	if len(workbook.GetSheets()) == 0 {
		return nil, ErrNoSheets
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading .xls sheet: %w", err)
	}

	var grid [][]Value
	for _, row := range sheet.GetRows() {
		var values []Value
		for _, cell := range row.GetCols() {
			values = append(values, classifyRaw(cell.GetString()))
		}
		grid = append(grid, values)
	}
	return NewSheet(sheet.GetName(), grid), nil
}
