// Package fieldmap holds the pure conversions applied to ERP and carrier
// values before they are stored. Numeric parsers never return NaN or
// infinities; unparseable input maps to zero.
package fieldmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

// Float parses the leading numeric prefix of s, or returns 0.
func Float(s string) float64 {
	prefix := numericPrefix(strings.TrimSpace(s), true)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Int parses the leading integer of s, or returns 0. "12.9" yields 12.
func Int(s string) int {
	prefix := numericPrefix(strings.TrimSpace(s), false)
	if prefix == "" {
		return 0
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return v
}

// Decimal is Float for money columns.
func Decimal(s string) decimal.Decimal {
	prefix := numericPrefix(strings.TrimSpace(s), true)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the leading [+-]digits[.digits] run of s, normalized
// so both strconv and decimal accept it, or "" when s does not start with a
// number. Exponents are not recognized.
func numericPrefix(s string, allowFraction bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	sign := s[:i]
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[start:i]
	fracPart := ""
	if allowFraction && i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracPart = s[i+1 : j]
	}
	if intPart == "" && fracPart == "" {
		return ""
	}
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Text returns nil for empty or whitespace-only input.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// TextOr returns s, or def when s is empty.
func TextOr(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// FirstText returns the first non-empty value as a nullable string.
func FirstText(values ...string) *string {
	for _, v := range values {
		if t := Text(v); t != nil {
			return t
		}
	}
	return nil
}

// Flag reports the ERP's "1" boolean convention.
func Flag(s string) bool {
	return strings.TrimSpace(s) == "1"
}

// Date reformats M/D/YYYY into YYYY-MM-DD. Any other shape is returned
// unchanged, and empty input yields nil.
func Date(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return &s
	}
	out := fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[0]), pad2(parts[1]))
	return &out
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp parses the carrier's timestamp forms. Zone-less values are UTC.
func Timestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// PaymentStatus derives the invoice payment state: paid when nothing is owed
// or the paid amount covers the total, partial when something was paid.
func PaymentStatus(balance, paid, total decimal.Decimal) enums.PaymentStatus {
	switch {
	case balance.LessThanOrEqual(decimal.Zero) || paid.GreaterThanOrEqual(total):
		return enums.PaymentStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return enums.PaymentStatusPartial
	default:
		return enums.PaymentStatusUnpaid
	}
}
