package invoice

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/redjkee/transport-analytics/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultMaxEmptyRows is how many consecutive rows with an empty
	// description end a table.
	DefaultMaxEmptyRows = 5
	// DefaultMaxScanRows caps the rows read below the header row.
	DefaultMaxScanRows = 1000
)

var summaryWords = []string{"итого", "всего", "итог", "сумма"}

var (
	errNonNumeric = errors.New("amount is not numeric")
	errNotFinite  = errors.New("amount is not a finite number")
)

// amountPrinter formats amounts for debug logs. Sprintf is safe for concurrent use.
var amountPrinter = message.NewPrinter(language.Russian)

// RowWalker walks the rows below a detected header and emits records.
type RowWalker struct {
	extractor    FieldExtractor
	observer     Observer
	log          *zap.Logger
	maxEmptyRows int
	maxScanRows  int
}

// NewRowWalker builds a walker. Non-positive limits fall back to the defaults.
func NewRowWalker(log *zap.Logger, extractor FieldExtractor, observer Observer, maxEmptyRows, maxScanRows int) *RowWalker {
	if maxEmptyRows <= 0 {
		maxEmptyRows = DefaultMaxEmptyRows
	}
	if maxScanRows <= 0 {
		maxScanRows = DefaultMaxScanRows
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &RowWalker{
		extractor:    extractor,
		observer:     observer,
		log:          log,
		maxEmptyRows: maxEmptyRows,
		maxScanRows:  maxScanRows,
	}
}

// Walk scans from the row after the header until maxEmptyRows consecutive empty
// description cells, or until maxScanRows rows past the header have been read.
func (w *RowWalker) Walk(sheet *Sheet, headers domain.HeaderPositions, source string) []domain.InvoiceRecord {
	headerRow := headers.HeaderRow()
	descCol := headers[domain.HeaderDescription].Col
	amountCol := headers[domain.HeaderAmount].Col
	lastRow := headerRow + w.maxScanRows

	records := make([]domain.InvoiceRecord, 0)
	emptyRows := 0

	row := headerRow + 1
	for ; row <= lastRow; row++ {
		desc := sheet.Cell(row, descCol)
		if desc.IsEmpty() {
			emptyRows++
			if emptyRows >= w.maxEmptyRows {
				break
			}
			continue
		}
		emptyRows = 0

		description := desc.String()
		if isSummary(description) {
			w.skip(source, row, SkipSummary)
			continue
		}

		amountCell := sheet.Cell(row, amountCol)
		if amountCell.IsEmpty() {
			w.skip(source, row, SkipEmptyAmount)
			continue
		}

		amount, err := parseAmount(amountCell)
		if errors.Is(err, errNonNumeric) {
			w.skip(source, row, SkipNonNumericAmount)
			continue
		}
		if err != nil {
			w.skip(source, row, SkipUnparsableAmount)
			continue
		}

		fields := w.extractor.Extract(description)
		if !fields.Plate.Found {
			w.skip(source, row, SkipNoPlate)
			continue
		}
		if amount <= 0 {
			w.skip(source, row, SkipNonPositiveAmount)
			continue
		}

		rec := domain.InvoiceRecord{
			Date:     fields.Date,
			Route:    fields.Route,
			Amount:   amount,
			Plate:    fields.Plate.Value,
			Driver:   fields.Driver,
			Source:   source,
			RowIndex: row,
		}
		records = append(records, rec)

		if ce := w.log.Check(zap.DebugLevel, "record extracted"); ce != nil {
			ce.Write(
				zap.String("source", source),
				zap.Int("row", row),
				zap.String("date", rec.Date.Or(domain.SentinelDate)),
				zap.String("route", rec.Route),
				zap.String("plate", rec.Plate),
				zap.String("driver", rec.Driver.Or(domain.SentinelDriver)),
				zap.String("amount", amountPrinter.Sprintf("%.0f руб.", rec.Amount)))
		}
	}

	if row > lastRow {
		w.log.Warn("row scan limit reached",
			zap.String("source", source),
			zap.Int("limit", w.maxScanRows))
	}

	return records
}

func (w *RowWalker) skip(source string, row int, reason SkipReason) {
	w.observer.RowSkipped(source, row, reason)
	w.log.Debug("row skipped",
		zap.String("source", source),
		zap.Int("row", row),
		zap.String("reason", string(reason)))
}

func isSummary(description string) bool {
	lower := strings.ToLower(description)
	for _, word := range summaryWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// parseAmount normalises "12 500,50" style amounts. Text containing any letter
// after stripping spaces and swapping commas for periods is rejected outright,
// and so is anything that parses to an infinity or NaN.
func parseAmount(v Value) (float64, error) {
	s := strings.ReplaceAll(v.String(), " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	if v.Kind == CellText && strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return 0, errNonNumeric
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotFinite
	}
	return f, nil
}
