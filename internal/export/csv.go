package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redjkee/transport-analytics/internal/domain"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var csvHeader = []string{"Дата", "Маршрут", "Стоимость", "Гос_номер", "Водитель", "Источник", "Строка"}

// WriteCSV writes records as ';'-separated Windows-1251 CSV, the encoding
// spreadsheet tools open without an import dialog on Russian locales.
// Characters with no cp1251 mapping make the encoder fail.
func WriteCSV(w io.Writer, records []domain.InvoiceRecord) error {
	tw := transform.NewWriter(w, charmap.Windows1251.NewEncoder())
	writer := csv.NewWriter(tw)
	writer.Comma = ';'

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		record := []string{
			sanitizeForCSV(r.Date.Or(domain.SentinelDate)),
			sanitizeForCSV(r.Route),
			formatAmount(r.Amount),
			sanitizeForCSV(r.Plate),
			sanitizeForCSV(r.Driver.Or(domain.SentinelDriver)),
			sanitizeForCSV(r.Source),
			strconv.Itoa(r.RowIndex),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return tw.Close()
}

func formatAmount(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// sanitizeForCSV trims the value and drops embedded line breaks and tabs;
// other control characters become spaces.
func sanitizeForCSV(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < 32 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
