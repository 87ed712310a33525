package parse

import (
	"strconv"
	"strings"
	"time"
)

// Source files carry dates in at least eight shapes: ISO datetimes, ISO
// dates, US and GB slash forms, dotted EU forms, Polish month names, and
// spreadsheet serial numbers. MM/DD vs DD/MM cannot be detected from the
// value alone, so interpretation order is part of the contract: the cascade
// below is tried in sequence and the first hit wins. Tests pin this order.

// serialMin/serialMax bound the accepted spreadsheet serial range
// (1954-09-30 .. 2064-04-25); anything outside is treated as not-a-date.
const (
	serialMin = 20000
	serialMax = 60000
)

// serialEpoch is the spreadsheet day-zero (1899-12-30).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Locale layouts cover 4- and 2-digit years with either the raw separator
// ("/" or ".") or the normalized "-".
var (
	usRawLayouts  = []string{"01/02/2006", "1/2/2006", "01/02/06", "1/2/06"}
	usNormLayouts = []string{"01-02-2006", "1-2-2006", "01-02-06", "1-2-06"}
	gbRawLayouts  = []string{"02/01/2006", "2/1/2006", "02/01/06", "2/1/06"}
	gbNormLayouts = []string{"02-01-2006", "2-1-2006", "02-01-06", "2-1-06"}
)

// Polish month names, genitive and nominative, lowercased.
var plMonths = map[string]time.Month{
	"stycznia": time.January, "styczen": time.January, "styczeń": time.January,
	"lutego": time.February, "luty": time.February,
	"marca": time.March, "marzec": time.March,
	"kwietnia": time.April, "kwiecien": time.April, "kwiecień": time.April,
	"maja": time.May, "maj": time.May,
	"czerwca": time.June, "czerwiec": time.June,
	"lipca": time.July, "lipiec": time.July,
	"sierpnia": time.August, "sierpien": time.August, "sierpień": time.August,
	"wrzesnia": time.September, "września": time.September, "wrzesien": time.September, "wrzesień": time.September,
	"pazdziernika": time.October, "października": time.October, "pazdziernik": time.October, "październik": time.October,
	"listopada": time.November, "listopad": time.November,
	"grudnia": time.December, "grudzien": time.December, "grudzień": time.December,
}

// Date parses v into a calendar date (UTC midnight). It returns nil when v
// is nil, blank, or matches no step of the cascade.
//
// Fast paths: a time.Time passes through truncated to its date; a numeric
// value is a spreadsheet serial. Text goes through the fixed cascade:
//
//  1. ISO 8601 on the raw trimmed text
//  2. ISO 8601 on the normalized text ("." and "/" replaced with "-")
//  3. en-US (month first), raw then normalized
//  4. en-GB (day first), raw then normalized
//  5. pl-PL (day, Polish month name, year), raw then normalized
//  6. bare integer in the spreadsheet serial range
func Date(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return datePtr(t)
	case int:
		return serialDate(float64(t))
	case int64:
		return serialDate(float64(t))
	case float64:
		return serialDate(t)
	}

	raw := strings.TrimSpace(asString(v))
	if raw == "" {
		return nil
	}
	norm := strings.NewReplacer(".", "-", "/", "-").Replace(raw)

	for _, step := range []func() *time.Time{
		func() *time.Time { return tryLayouts(raw, isoLayouts) },
		func() *time.Time { return tryLayouts(norm, isoLayouts) },
		func() *time.Time { return tryLayouts(raw, usRawLayouts) },
		func() *time.Time { return tryLayouts(norm, usNormLayouts) },
		func() *time.Time { return tryLayouts(raw, gbRawLayouts) },
		func() *time.Time { return tryLayouts(norm, gbNormLayouts) },
		func() *time.Time { return tryPolish(raw) },
		func() *time.Time { return tryPolish(norm) },
		func() *time.Time { return trySerialText(raw) },
	} {
		if d := step(); d != nil {
			return d
		}
	}
	return nil
}

func tryLayouts(s string, layouts []string) *time.Time {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return datePtr(t)
		}
	}
	return nil
}

// tryPolish accepts "15 stycznia 2023" style dates (day, month name, year).
func tryPolish(s string) *time.Time {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 3 {
		return nil
	}
	day, err := strconv.Atoi(strings.TrimSuffix(fields[0], "."))
	if err != nil || day < 1 || day > 31 {
		return nil
	}
	month, ok := plMonths[fields[1]]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil
	}
	if year < 100 {
		year += 2000
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed days like "31 lutego 2023".
	if t.Day() != day || t.Month() != month {
		return nil
	}
	return &t
}

// trySerialText accepts a bare integer string carrying a spreadsheet serial.
// CSV sources deliver serials as text, so the numeric fast path alone is not
// enough.
func trySerialText(s string) *time.Time {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return serialDate(float64(n))
}

func serialDate(n float64) *time.Time {
	if n < serialMin || n > serialMax {
		return nil
	}
	t := serialEpoch.AddDate(0, 0, int(n))
	return &t
}

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
