package invoice

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestSheet builds a sheet from literal rows: strings become text cells,
// numbers become numeric cells and nil leaves the cell empty.
func newTestSheet(rows ...[]any) *Sheet {
	grid := make([][]Value, len(rows))
	for ri, row := range rows {
		grid[ri] = make([]Value, len(row))
		for ci, v := range row {
			grid[ri][ci] = toValue(v)
		}
	}
	return NewSheet("Лист1", grid)
}

func toValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case string:
		return Text(x)
	case int:
		return Number(float64(x))
	case float64:
		return Number(x)
	default:
		panic("unsupported test cell")
	}
}

// invoiceRows is a small well-formed invoice: title block, header row 3,
// three trips, a blank row and a summary row.
func invoiceRows() [][]any {
	return [][]any{
		{"Счёт на оплату № 17 от 10 сентября 2025 г."},
		{},
		{"№", "Товары (работы, услуги)", "Кол-во", "Ед.", "Цена", "Сумма"},
		{1, "Москва - Тверь, от 06.09.25, Иванов И.И., а/м 777ABC", 1, "рейс", 15000, 15000},
		{2, "Тверь - Клин, от 07.09.25, Петров П.П., а/м 123", 1, "рейс", "12 500,50", "12 500,50"},
		{3, "Клин - Москва, от 08.09.25, Иванов И.И., а/м 777ABC", 1, "рейс", 9000, 9000},
		{},
		{nil, "Итого:", nil, nil, nil, 36500.5},
	}
}

// writeXLSX stores rows in a new workbook under dir and returns its path.
// Cells are placed starting at (rowOffset+1, colOffset+1).
func writeXLSX(t *testing.T, dir, name string, rows [][]any, rowOffset, colOffset int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for ri, row := range rows {
		for ci, v := range row {
			if v == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(ci+1+colOffset, ri+1+rowOffset)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, v))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

type skipEvent struct {
	Source string
	Row    int
	Reason SkipReason
}

type fileEvent struct {
	Source  string
	Records int
	Err     error
}

// recordingObserver collects every event it receives.
type recordingObserver struct {
	mu    sync.Mutex
	files []fileEvent
	skips []skipEvent
}

func (o *recordingObserver) FileProcessed(source string, records int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, fileEvent{Source: source, Records: records, Err: err})
}

func (o *recordingObserver) RowSkipped(source string, row int, reason SkipReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skips = append(o.skips, skipEvent{Source: source, Row: row, Reason: reason})
}

func (o *recordingObserver) reasons() []SkipReason {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]SkipReason, len(o.skips))
	for i, s := range o.skips {
		out[i] = s.Reason
	}
	return out
}
