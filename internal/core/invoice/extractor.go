package invoice

import (
	"regexp"
	"strings"

	"github.com/redjkee/transport-analytics/internal/domain"
)

// FieldExtractor parses a free-text description into its sub-fields.
// Implementations must be safe for concurrent use.
type FieldExtractor interface {
	Extract(description string) domain.DescriptionFields
}

// RegexExtractor is the default extraction policy.
//
// The plate rule takes the first run of three digits anywhere in the text, so
// it can pick digits out of dates or quantities. Callers depend on that output;
// substitute another FieldExtractor rather than changing it.
type RegexExtractor struct {
	date           *regexp.Regexp
	plate          *regexp.Regexp
	driver         *regexp.Regexp
	driverFallback *regexp.Regexp
}

var _ FieldExtractor = (*RegexExtractor)(nil)

// space also matches no-break spaces, which \s does not.
const space = `[\s\p{Zs}]`

// NewRegexExtractor compiles the default patterns.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{
		date:           regexp.MustCompile(`от` + space + `+(\d{2}\.\d{2}\.\d{2})`),
		plate:          regexp.MustCompile(`(\d{3})`),
		driver:         regexp.MustCompile(`,` + space + `*([А-Я][а-я]+)` + space + `+[А-Я]\.[А-Я]\.`),
		driverFallback: regexp.MustCompile(`,` + space + `*([А-Я][а-я]+)`),
	}
}

// Extract returns the route (text before the first comma) and whichever of
// date, plate and driver surname could be found.
func (e *RegexExtractor) Extract(description string) domain.DescriptionFields {
	route, _, _ := strings.Cut(description, ",")

	return domain.DescriptionFields{
		Route:  strings.TrimSpace(route),
		Date:   firstGroup(e.date, description),
		Plate:  firstGroup(e.plate, description),
		Driver: e.extractDriver(description),
	}
}

func (e *RegexExtractor) extractDriver(description string) domain.Field {
	if f := firstGroup(e.driver, description); f.Found {
		return f
	}
	return firstGroup(e.driverFallback, description)
}

func firstGroup(re *regexp.Regexp, s string) domain.Field {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return domain.Missing
	}
	return domain.Found(m[1])
}
