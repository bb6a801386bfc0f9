package invoice

// SkipReason says why a data row produced no record.
type SkipReason string

const (
	SkipSummary           SkipReason = "summary"
	SkipEmptyAmount       SkipReason = "empty_amount"
	SkipNonNumericAmount  SkipReason = "non_numeric_amount"
	SkipUnparsableAmount  SkipReason = "unparsable_amount"
	SkipNoPlate           SkipReason = "no_plate"
	SkipNonPositiveAmount SkipReason = "non_positive_amount"
)

// Observer receives per-file and per-row diagnostic events. Events never
// change which records are produced. Implementations must be safe for
// concurrent use when files are processed in parallel.
type Observer interface {
	FileProcessed(source string, records int, err error)
	RowSkipped(source string, row int, reason SkipReason)
}

type nopObserver struct{}

func (nopObserver) FileProcessed(string, int, error) {}
func (nopObserver) RowSkipped(string, int, SkipReason) {}
