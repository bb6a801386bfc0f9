package invoice

import (
	"strings"

	"github.com/redjkee/transport-analytics/internal/domain"

	"github.com/schollz/closestmatch"
	"go.uber.org/zap"
)

const (
	keywordDescription = "Товары (работы, услуги)"
	keywordAmount      = "Сумма"
	keywordAmountVAT   = "Сумма с НДС"
	keywordNumber      = "№"
	keywordQuantity    = "Кол-во"
	keywordUnit        = "Ед."
	keywordPrice       = "Цена"

	// "№" only counts in the leftmost columns.
	numberMaxCol = 10
)

type headerRule struct {
	Field domain.HeaderField
	Match func(text string, col int) bool
}

var headerRules = []headerRule{
	{domain.HeaderDescription, func(t string, _ int) bool { return strings.Contains(t, keywordDescription) }},
	{domain.HeaderAmount, func(t string, _ int) bool { return strings.Contains(t, keywordAmount) && t != keywordAmountVAT }},
	{domain.HeaderNumber, func(t string, col int) bool { return t == keywordNumber && col < numberMaxCol }},
	{domain.HeaderQuantity, func(t string, _ int) bool { return strings.Contains(t, keywordQuantity) }},
	{domain.HeaderUnit, func(t string, _ int) bool { return strings.Contains(t, keywordUnit) }},
	{domain.HeaderPrice, func(t string, _ int) bool { return strings.Contains(t, keywordPrice) }},
}

// headerKeywords is what a missing mandatory header is compared against when suggesting.
var headerKeywords = map[domain.HeaderField]string{
	domain.HeaderDescription: keywordDescription,
	domain.HeaderAmount:      keywordAmount,
}

// HeaderLocator finds the invoice table columns by keyword anywhere in a sheet.
type HeaderLocator struct {
	log *zap.Logger
}

// NewHeaderLocator creates a locator logging to log.
func NewHeaderLocator(log *zap.Logger) *HeaderLocator {
	return &HeaderLocator{log: log}
}

// Locate scans every non-empty cell in row-major order. Each rule is tested on
// its own; when a field matches more than once the last cell in scan order wins.
func (l *HeaderLocator) Locate(sheet *Sheet) domain.HeaderPositions {
	positions := make(domain.HeaderPositions)

	sheet.Each(func(c Cell) {
		text := strings.TrimSpace(c.String())
		for _, rule := range headerRules {
			if !rule.Match(text, c.Col) {
				continue
			}
			if prev, ok := positions[rule.Field]; ok {
				l.log.Debug("header found again, keeping later cell",
					zap.String("field", string(rule.Field)),
					zap.Int("prev_row", prev.Row), zap.Int("prev_col", prev.Col),
					zap.Int("row", c.Row), zap.Int("col", c.Col))
			}
			positions[rule.Field] = domain.Position{Row: c.Row, Col: c.Col}
			l.log.Debug("header found",
				zap.String("field", string(rule.Field)),
				zap.Int("row", c.Row), zap.Int("col", c.Col))
		}
	})

	return positions
}

// Suggest returns the cell text closest to the keyword of a missing mandatory
// field. Diagnostics only: it never changes which columns are used.
func (l *HeaderLocator) Suggest(sheet *Sheet, field domain.HeaderField) string {
	keyword, ok := headerKeywords[field]
	if !ok {
		return ""
	}

	seen := make(map[string]bool)
	var candidates []string
	sheet.Each(func(c Cell) {
		if c.Kind != CellText {
			return
		}
		text := strings.TrimSpace(c.String())
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		candidates = append(candidates, text)
	})
	if len(candidates) == 0 {
		return ""
	}

	cm := closestmatch.New(candidates, []int{2, 3})
	return cm.Closest(keyword)
}
