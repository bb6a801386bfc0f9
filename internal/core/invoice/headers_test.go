package invoice

import (
	"testing"

	"github.com/redjkee/transport-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHeaderLocator_Locate(t *testing.T) {
	locator := NewHeaderLocator(zap.NewNop())

	t.Run("standard header row", func(t *testing.T) {
		sheet := newTestSheet(invoiceRows()...)

		got := locator.Locate(sheet)

		assert.Equal(t, domain.HeaderPositions{
			domain.HeaderNumber:      {Row: 3, Col: 1},
			domain.HeaderDescription: {Row: 3, Col: 2},
			domain.HeaderQuantity:    {Row: 3, Col: 3},
			domain.HeaderUnit:        {Row: 3, Col: 4},
			domain.HeaderPrice:       {Row: 3, Col: 5},
			domain.HeaderAmount:      {Row: 3, Col: 6},
		}, got)
		assert.True(t, got.Complete())
		assert.Equal(t, 3, got.HeaderRow())
	})

	t.Run("later match wins", func(t *testing.T) {
		sheet := newTestSheet(
			[]any{"Сумма прописью"},
			[]any{"Товары (работы, услуги)", "Сумма"},
		)

		got := locator.Locate(sheet)

		assert.Equal(t, domain.Position{Row: 2, Col: 2}, got[domain.HeaderAmount])
	})

	t.Run("amount with VAT is not the amount column", func(t *testing.T) {
		sheet := newTestSheet(
			[]any{"Товары (работы, услуги)", "Сумма", "Сумма с НДС"},
		)

		got := locator.Locate(sheet)

		assert.Equal(t, domain.Position{Row: 1, Col: 2}, got[domain.HeaderAmount])
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		sheet := newTestSheet(
			[]any{"Товары (работы, услуги)", "Сумма", "  Сумма с НДС "},
		)

		got := locator.Locate(sheet)

		assert.Equal(t, domain.Position{Row: 1, Col: 2}, got[domain.HeaderAmount])
	})

	t.Run("number sign only in leftmost columns", func(t *testing.T) {
		row := make([]any, 12)
		row[10] = "№"
		sheet := newTestSheet(row)

		got := locator.Locate(sheet)

		_, ok := got[domain.HeaderNumber]
		assert.False(t, ok)
	})

	t.Run("number sign must match exactly", func(t *testing.T) {
		sheet := newTestSheet([]any{"№ п/п"})

		_, ok := locator.Locate(sheet)[domain.HeaderNumber]
		assert.False(t, ok)
	})

	t.Run("header row is the lowest header cell", func(t *testing.T) {
		sheet := newTestSheet(
			[]any{"Товары (работы, услуги)"},
			[]any{nil, "Кол-во"},
			[]any{nil, nil, "Сумма"},
		)

		got := locator.Locate(sheet)

		assert.True(t, got.Complete())
		assert.Equal(t, 3, got.HeaderRow())
	})

	t.Run("missing amount is incomplete", func(t *testing.T) {
		sheet := newTestSheet([]any{"Товары (работы, услуги)", "Цена"})

		got := locator.Locate(sheet)

		assert.False(t, got.Complete())
	})
}

func TestHeaderLocator_Suggest(t *testing.T) {
	locator := NewHeaderLocator(zap.NewNop())
	sheet := newTestSheet(
		[]any{"Товары (работы,услуги)", "Cумма", 100},
		[]any{"Поставщик", "ООО Ромашка"},
	)

	assert.Equal(t, "Товары (работы,услуги)", locator.Suggest(sheet, domain.HeaderDescription))
	assert.Empty(t, locator.Suggest(sheet, domain.HeaderUnit))
	assert.Empty(t, locator.Suggest(newTestSheet(), domain.HeaderAmount))
}
