package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

// CompositionRow carries the raw fields of one compositions-file row.
// Up to two time intervals are supported; the second is optional.
type CompositionRow struct {
	Months      string
	Days        string
	FuseFrom    string
	FuseTo      string
	Hints       map[string]string
	Unit        string
	PriceExcVat string
	PriceIncVat string
	From        string
	To          string
	Multiplier  string
	From2       string
	To2         string
	Multiplier2 string
}

var monthAbbr = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var (
	weekdayAbbr = []string{"mon", "tue", "wed", "thu", "fri"}
	weekendAbbr = []string{"sat", "sun"}
)

var whitespace = regexp.MustCompile(`\s+`)

// ParseComposition validates raw row fields into a Composition. It
// either returns a fully valid value or an error; callers never see a
// partially parsed composition.
func ParseComposition(row CompositionRow) (Composition, error) {
	months, err := parseMonths(row.Months)
	if err != nil {
		return Composition{}, err
	}

	days, err := parseDays(row.Days)
	if err != nil {
		return Composition{}, err
	}

	excVat, err := parsePrice("price_exc_vat", row.PriceExcVat)
	if err != nil {
		return Composition{}, err
	}
	incVat, err := parsePrice("price_inc_vat", row.PriceIncVat)
	if err != nil {
		return Composition{}, err
	}
	if incVat < excVat {
		return Composition{}, apperr.Validation("price_inc_vat",
			fmt.Sprintf("%v is below price_exc_vat %v", incVat, excVat))
	}

	intervals, err := parseIntervals(row)
	if err != nil {
		return Composition{}, err
	}

	return Composition{
		Months:      months,
		Days:        days,
		FuseFrom:    row.FuseFrom,
		FuseTo:      row.FuseTo,
		Hints:       row.Hints,
		Unit:        row.Unit,
		PriceExcVat: excVat,
		PriceIncVat: incVat,
		Intervals:   intervals,
	}, nil
}

// ParseBuildingType maps the free-text building-types column onto the
// house/apartment/all enum. Blank means all.
func ParseBuildingType(value string) (BuildingType, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return BuildingTypeAll, nil
	}
	hasHouse := strings.Contains(s, "_house")
	hasApartments := strings.Contains(s, "apartments")
	switch {
	case hasHouse && hasApartments:
		return BuildingTypeAll, nil
	case hasHouse:
		return BuildingTypeHouse, nil
	case hasApartments:
		return BuildingTypeApartment, nil
	default:
		return "", apperr.Validation("building_types", value)
	}
}

// parseMonths maps a comma-separated list of month numbers onto
// canonical abbreviations. Blank means every month.
func parseMonths(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return append([]string(nil), monthAbbr...), nil
	}
	parts := strings.Split(value, ",")
	months := make([]string, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 12 {
			return nil, apperr.Validation("months", part)
		}
		months = append(months, monthAbbr[n-1])
	}
	return months, nil
}

// parseDays recognizes exactly two literal patterns in the source data:
// the weekday run "M,T,W,T,F" and the weekend pair "S,S". This grammar
// is deliberately narrow; anything else non-blank is rejected rather
// than guessed at.
func parseDays(value string) ([]string, error) {
	s := whitespace.ReplaceAllString(value, "")
	if s == "" {
		return append(append([]string(nil), weekdayAbbr...), weekendAbbr...), nil
	}
	var days []string
	if strings.Contains(s, "M,T,W,T,F") {
		days = append(days, weekdayAbbr...)
	}
	if strings.Contains(s, "S,S") {
		days = append(days, weekendAbbr...)
	}
	if len(days) == 0 {
		return nil, apperr.Validation("days", value)
	}
	return days, nil
}

func parsePrice(field, value string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || price < 0 {
		return 0, apperr.Validation(field, value)
	}
	return price, nil
}

func parseIntervals(row CompositionRow) ([]TimeInterval, error) {
	if strings.TrimSpace(row.From) == "" {
		return nil, apperr.Validation("from", "primary interval start is required")
	}

	first, err := parseInterval(row.From, row.To, row.Multiplier)
	if err != nil {
		return nil, err
	}
	intervals := []TimeInterval{first}

	if strings.TrimSpace(row.From2) != "" {
		second, err := parseInterval(row.From2, row.To2, row.Multiplier2)
		if err != nil {
			return nil, err
		}
		if overlaps(first, second) {
			return nil, apperr.Validation("intervals",
				fmt.Sprintf("%s-%s overlaps %s-%s", first.From, first.To, second.From, second.To))
		}
		intervals = append(intervals, second)
	}

	return intervals, nil
}

func parseInterval(from, to, multiplier string) (TimeInterval, error) {
	to = NormalizeEndTime(to)

	fromMinutes, err := clockMinutes(from)
	if err != nil {
		return TimeInterval{}, apperr.Validation("from", from)
	}
	toMinutes, err := clockMinutes(to)
	if err != nil {
		return TimeInterval{}, apperr.Validation("to", to)
	}
	if fromMinutes >= toMinutes {
		return TimeInterval{}, apperr.Validation("interval",
			fmt.Sprintf("%s is not before %s", from, to))
	}

	m, err := strconv.ParseFloat(strings.TrimSpace(multiplier), 64)
	if err != nil || m <= 0 {
		return TimeInterval{}, apperr.Validation("multiplier", multiplier)
	}

	return TimeInterval{From: from, To: to, Multiplier: m}, nil
}

// NormalizeEndTime canonicalizes an end time of "0:00" to "24:00",
// meaning end of day rather than start. Any other value is returned
// unchanged.
func NormalizeEndTime(to string) string {
	if strings.TrimSpace(to) == "0:00" {
		return "24:00"
	}
	return to
}

func clockMinutes(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("malformed clock time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("malformed clock time %q", value)
	}
	total := hours*60 + minutes
	if total > 24*60 {
		return 0, fmt.Errorf("malformed clock time %q", value)
	}
	return total, nil
}

func overlaps(a, b TimeInterval) bool {
	aFrom, _ := clockMinutes(a.From)
	aTo, _ := clockMinutes(a.To)
	bFrom, _ := clockMinutes(b.From)
	bTo, _ := clockMinutes(b.To)
	return aFrom < bTo && bFrom < aTo
}
