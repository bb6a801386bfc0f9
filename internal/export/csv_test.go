package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/redjkee/transport-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func decodeCP1251(t *testing.T, b []byte) [][]string {
	t.Helper()
	utf, err := charmap.Windows1251.NewDecoder().Bytes(b)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(utf))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	records := []domain.InvoiceRecord{
		{
			Date:     domain.Found("06.09.25"),
			Route:    "Москва - Тверь",
			Amount:   12500.5,
			Plate:    "777",
			Driver:   domain.Found("Иванов"),
			Source:   "счёт.xlsx",
			RowIndex: 4,
		},
		{
			Route:    "  Тверь;\nКлин ",
			Amount:   15000,
			Plate:    "123",
			Source:   "счёт.xlsx",
			RowIndex: 5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows := decodeCP1251(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Дата", "Маршрут", "Стоимость", "Гос_номер", "Водитель", "Источник", "Строка"}, rows[0])
	assert.Equal(t, []string{"06.09.25", "Москва - Тверь", "12500,50", "777", "Иванов", "счёт.xlsx", "4"}, rows[1])
	assert.Equal(t, []string{"date-not-found", "Тверь;Клин", "15000,00", "123", "surname-not-found", "счёт.xlsx", "5"}, rows[2])
}

func TestWriteCSV_IsNotUTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.NotContains(t, buf.String(), "Дата")
	assert.Equal(t, []byte{0xC4, 0xE0, 0xF2, 0xE0}, buf.Bytes()[:4])
}

func TestWriteCSV_Unencodable(t *testing.T) {
	records := []domain.InvoiceRecord{{Route: "Рейс 🚚", Amount: 1, Plate: "111"}}

	err := WriteCSV(&bytes.Buffer{}, records)
	assert.Error(t, err)
}

func TestSanitizeForCSV(t *testing.T) {
	assert.Equal(t, "", sanitizeForCSV("   "))
	assert.Equal(t, "ab", sanitizeForCSV(" a\r\n\tb "))
	assert.Equal(t, "a b", sanitizeForCSV("a\x01b"))
}
