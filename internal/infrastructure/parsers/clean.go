package parsers

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the date formats seen in the exports, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

// CleanString trims a cell value. Export tools write "NaN" into empty
// numeric-typed cells; treat that as empty too.
func CleanString(value string) string {
	s := strings.TrimSpace(value)
	if s == "NaN" {
		return ""
	}
	return s
}

// CleanFloat parses a cell as a float, returning 0 for empty or malformed
// values. Cleaning is best-effort and never fails.
func CleanFloat(value string) float64 {
	s := CleanString(value)
	if s == "" {
		return 0
	}
	// Exports use comma decimal separators in some locales.
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CleanDate parses a cell as a date in one of the accepted layouts,
// returning nil for empty or unparseable values. Parsed dates are UTC.
func CleanDate(value string) *time.Time {
	s := CleanString(value)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// CleanBool parses a cell as a boolean. Exports write booleans in several
// spellings; anything unrecognized is false.
func CleanBool(value string) bool {
	switch strings.ToLower(CleanString(value)) {
	case "true", "1", "yes", "ja", "x":
		return true
	default:
		return false
	}
}

// CleanOrgNumber normalizes an organization number cell. Spreadsheet tools
// export these as floats ("977195500.0"), so parse numerically and format
// back as an integer string. Returns "" when the cell isn't numeric.
func CleanOrgNumber(value string) string {
	s := CleanString(value)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

// CleanPostalCode normalizes a postal code cell to four digits with leading
// zeros, matching Norwegian postal codes. Returns "" when not numeric.
func CleanPostalCode(value string) string {
	s := CleanString(value)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	code := strconv.FormatInt(int64(f), 10)
	for len(code) < 4 {
		code = "0" + code
	}
	return code
}

// CleanCreditLimit parses a credit limit cell, returning nil when unset so
// zero limits stay distinguishable from absent ones.
func CleanCreditLimit(value string) *float64 {
	s := CleanString(value)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
