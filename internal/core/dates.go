package core

import (
	"strconv"
	"strings"
	"time"
)

const isoDateFormat = "2006-01-02"

// ParseLegacyDate parses the seed-file date format DD/MM/YYYY. All three
// components must be positive integers; anything else yields an absent date
// rather than an error, since absence is a legitimate contract state.
func ParseLegacyDate(s string) Date {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day <= 0 {
		return Date{}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month <= 0 {
		return Date{}
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year <= 0 {
		return Date{}
	}
	return NewDate(year, month, day)
}

// ParseDateRange splits a seed-file range "<start> - <end>" on the first
// dash and parses each half independently. Dates themselves use slashes, so
// the naive split is unambiguous in practice. Empty input yields two absent
// dates.
func ParseDateRange(s string) (start, end Date) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, Date{}
	}
	startRaw, endRaw, _ := strings.Cut(s, "-")
	return ParseLegacyDate(startRaw), ParseLegacyDate(endRaw)
}

// ParseISODate parses an interactive-form date (YYYY-MM-DD) as a UTC
// midnight instant. Empty or malformed input yields an absent date.
func ParseISODate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	t, err := time.ParseInLocation(isoDateFormat, s, time.UTC)
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// ISO renders the date in YYYY-MM-DD form, or "" when absent. Used both for
// persistence and to prefill the edit form's date inputs.
func (d Date) ISO() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format(isoDateFormat)
}
