package invoice

import (
	"testing"

	"github.com/redjkee/transport-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRegexExtractor_Extract(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        domain.DescriptionFields
	}{
		{
			name:        "full description",
			description: "Москва - Тверь, от 06.09.25, Иванов И.И., а/м 777ABC",
			want: domain.DescriptionFields{
				Route:  "Москва - Тверь",
				Date:   domain.Found("06.09.25"),
				Plate:  domain.Found("777"),
				Driver: domain.Found("Иванов"),
			},
		},
		{
			name:        "no comma keeps whole trimmed text as route",
			description: "  Перевозка груза  ",
			want: domain.DescriptionFields{
				Route: "Перевозка груза",
			},
		},
		{
			name:        "surname without initials uses fallback",
			description: "Тула - Орёл, Петров, а/м 123",
			want: domain.DescriptionFields{
				Route:  "Тула - Орёл",
				Plate:  domain.Found("123"),
				Driver: domain.Found("Петров"),
			},
		},
		{
			name:        "zero plate is a real plate",
			description: "Склад - Магазин, а/м 000",
			want: domain.DescriptionFields{
				Route: "Склад - Магазин",
				Plate: domain.Found("000"),
			},
		},
		{
			name:        "plate picks first three digits anywhere",
			description: "Рейс 2025, от 01.02.25, Сидоров С.С.",
			want: domain.DescriptionFields{
				Route:  "Рейс 2025",
				Date:   domain.Found("01.02.25"),
				Plate:  domain.Found("202"),
				Driver: domain.Found("Сидоров"),
			},
		},
		{
			name:        "initials preferred over an earlier capitalised word",
			description: "Казань - Уфа, Доставка, Смирнов А.Б., 555",
			want: domain.DescriptionFields{
				Route:  "Казань - Уфа",
				Plate:  domain.Found("555"),
				Driver: domain.Found("Смирнов"),
			},
		},
		{
			name:        "no-break spaces around date and driver",
			description: "Москва - Тверь, от\u00a006.09.25,\u00a0Иванов\u00a0И.И., а/м 777ABC",
			want: domain.DescriptionFields{
				Route:  "Москва - Тверь",
				Date:   domain.Found("06.09.25"),
				Plate:  domain.Found("777"),
				Driver: domain.Found("Иванов"),
			},
		},
		{
			name:        "no-break space before a surname without initials",
			description: "Тула\u00a0- Орёл,\u00a0Петров,\u202fа/м 123",
			want: domain.DescriptionFields{
				Route:  "Тула\u00a0- Орёл",
				Plate:  domain.Found("123"),
				Driver: domain.Found("Петров"),
			},
		},
		{
			name:        "four digit year does not match date",
			description: "Маршрут, от 06.09.2025",
			want: domain.DescriptionFields{
				Route: "Маршрут",
				Date:  domain.Found("06.09.20"),
				Plate: domain.Found("202"),
			},
		},
	}

	ex := NewRegexExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.Extract(tt.description))
		})
	}
}

func TestField_Or(t *testing.T) {
	ex := NewRegexExtractor()
	got := ex.Extract("без данных")

	assert.Equal(t, domain.SentinelDate, got.Date.Or(domain.SentinelDate))
	assert.Equal(t, domain.SentinelPlate, got.Plate.Or(domain.SentinelPlate))
	assert.Equal(t, domain.SentinelDriver, got.Driver.Or(domain.SentinelDriver))
}
