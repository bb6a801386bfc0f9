// package domain/models.go
package domain

import "errors"

// Sentinel texts rendered at the serialization boundary when a field was not found.
const (
	SentinelDate   = "date-not-found"
	SentinelPlate  = "unknown"
	SentinelDriver = "surname-not-found"
)

// Batch-level outcomes.
var (
	ErrNoInput   = errors.New("no input files")
	ErrNoRecords = errors.New("no qualifying records")
)

// Field is an extracted text value that may be absent.
type Field struct {
	Value string
	Found bool
}

// Found builds a present Field.
func Found(v string) Field {
	return Field{Value: v, Found: true}
}

// Missing is the absent Field.
var Missing = Field{}

// Or returns the value when present, fallback otherwise.
func (f Field) Or(fallback string) string {
	if f.Found {
		return f.Value
	}
	return fallback
}

// HeaderField names a column the header scan looks for.
type HeaderField string

// Header fields recognised in invoice sheets. Only description and amount are mandatory.
const (
	HeaderDescription HeaderField = "description"
	HeaderAmount      HeaderField = "amount"
	HeaderNumber      HeaderField = "number"
	HeaderQuantity    HeaderField = "quantity"
	HeaderUnit        HeaderField = "unit"
	HeaderPrice       HeaderField = "price"
)

// Position is a 1-based (row, column) coordinate inside a sheet.
type Position struct {
	Row int
	Col int
}

// HeaderPositions maps each detected header field to the cell it was found in.
type HeaderPositions map[HeaderField]Position

// Complete reports whether both mandatory columns were found.
func (h HeaderPositions) Complete() bool {
	_, hasDesc := h[HeaderDescription]
	_, hasAmount := h[HeaderAmount]
	return hasDesc && hasAmount
}

// HeaderRow is the lowest (largest index) row among all detected headers.
func (h HeaderPositions) HeaderRow() int {
	row := 0
	for _, p := range h {
		if p.Row > row {
			row = p.Row
		}
	}
	return row
}

// DescriptionFields holds the sub-fields parsed out of a description cell.
type DescriptionFields struct {
	Route  string
	Date   Field
	Plate  Field
	Driver Field
}

// InvoiceRecord is one trip line extracted from an invoice.
// Amount is always > 0 and Plate is always present for emitted records.
type InvoiceRecord struct {
	Date     Field
	Route    string
	Amount   float64
	Plate    string
	Driver   Field
	Source   string
	RowIndex int
}

// Statistics summarises a batch of records.
type Statistics struct {
	TotalRecords int
	TotalAmount  float64
	Plates       []string
	Drivers      []string
}

// Batch is the ordered concatenation of all per-file records plus derived statistics.
type Batch struct {
	Records []InvoiceRecord
	Stats   Statistics
	// Inputs counts candidate files handed to the batch, including skipped ones.
	Inputs int
}

// Err maps the batch onto its batch-level failure, if any.
func (b Batch) Err() error {
	if b.Inputs == 0 {
		return ErrNoInput
	}
	if len(b.Records) == 0 {
		return ErrNoRecords
	}
	return nil
}
