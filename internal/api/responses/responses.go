// internal/api/responses/responses.go
package responses

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/redjkee/transport-analytics/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// User-facing messages.
const (
	MsgNoInput    = "Нет Excel-файлов для обработки"
	MsgNoRecords  = "Не найдено данных для обработки"
	MsgNoUploads  = "Файлы не загружены"
	msgUnexpected = "Ошибка выполнения: %v"
	msgProcessed  = "Обработано %d записей из %d файлов"
)

var logger = zap.NewNop()

// InitLogger sets the logger used by the gin helpers.
func InitLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Record is one extracted row as published to callers.
type Record struct {
	Date     string  `json:"Date"`
	Route    string  `json:"Route"`
	Amount   float64 `json:"Amount"`
	Plate    string  `json:"Plate"`
	Driver   string  `json:"Driver"`
	Source   string  `json:"Source"`
	RowIndex int     `json:"RowIndex"`
}

// Statistics mirrors domain.Statistics on the wire.
type Statistics struct {
	TotalRecords  int      `json:"total_records"`
	TotalAmount   float64  `json:"total_amount"`
	UniqueCars    int      `json:"unique_cars"`
	UniqueDrivers int      `json:"unique_drivers"`
	CarList       []string `json:"car_list"`
	DriverList    []string `json:"driver_list"`
}

// Result is the single JSON object every invocation produces.
type Result struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Data       []Record    `json:"data"`
}

// FromBatch builds the result for a processed batch, including the two
// batch-level failure outcomes.
func FromBatch(b domain.Batch) Result {
	if err := b.Err(); err != nil {
		return Failure(err)
	}

	data := make([]Record, len(b.Records))
	for i, r := range b.Records {
		data[i] = NewRecord(r)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(msgProcessed, len(b.Records), b.Inputs),
		Statistics: &Statistics{
			TotalRecords:  b.Stats.TotalRecords,
			TotalAmount:   b.Stats.TotalAmount,
			UniqueCars:    len(b.Stats.Plates),
			UniqueDrivers: len(b.Stats.Drivers),
			CarList:       b.Stats.Plates,
			DriverList:    b.Stats.Drivers,
		},
		Data: data,
	}
}

// NewRecord renders a record, substituting sentinels for absent fields.
func NewRecord(r domain.InvoiceRecord) Record {
	return Record{
		Date:     r.Date.Or(domain.SentinelDate),
		Route:    r.Route,
		Amount:   r.Amount,
		Plate:    r.Plate,
		Driver:   r.Driver.Or(domain.SentinelDriver),
		Source:   r.Source,
		RowIndex: r.RowIndex,
	}
}

// Failure builds an unsuccessful result. Unknown errors become the generic
// execution-error message.
func Failure(err error) Result {
	var msg string
	switch {
	case errors.Is(err, domain.ErrNoInput):
		msg = MsgNoInput
	case errors.Is(err, domain.ErrNoRecords):
		msg = MsgNoRecords
	default:
		msg = fmt.Sprintf(msgUnexpected, err)
	}
	return Message(msg)
}

// Message builds an unsuccessful result with a literal message.
func Message(msg string) Result {
	return Result{Success: false, Error: msg, Data: []Record{}}
}

// Write encodes res as one JSON document, keeping non-ASCII text readable.
func Write(w io.Writer, res Result, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

// JSON sends res with the given HTTP status.
func JSON(c *gin.Context, code int, res Result) {
	c.JSON(code, res)
	if res.Success {
		logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", code),
			zap.Int("records", len(res.Data)))
		return
	}
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code),
		zap.String("error", res.Error))
}

// Batch sends a processed batch. Logical failures still use 200, callers read "success".
func Batch(c *gin.Context, b domain.Batch) {
	JSON(c, http.StatusOK, FromBatch(b))
}
