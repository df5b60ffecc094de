package helpers

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places used for display
const DisplayPlaces = 2

// Lakh is the display unit: 1 lakh = 100,000 base currency units
var Lakh = decimal.NewFromInt(100000)

const lakhExponent = 5

// ErrNotANumber is returned when an amount string cannot be parsed
var ErrNotANumber = errors.New("amount is not a number")

// LakhsToRupees converts a lakh amount to base units without rounding
func LakhsToRupees(lakhs decimal.Decimal) decimal.Decimal {
	return lakhs.Shift(lakhExponent)
}

// RupeesToLakhs converts base units to lakhs at full precision
func RupeesToLakhs(rupees decimal.Decimal) decimal.Decimal {
	return rupees.Shift(-lakhExponent)
}

// DisplayLakhs converts base units to lakhs rounded to 2 decimal places.
// Only output paths should call this; arithmetic stays in base units.
func DisplayLakhs(rupees decimal.Decimal) decimal.Decimal {
	return RupeesToLakhs(rupees).Round(DisplayPlaces)
}

// ParseLakhs parses user input such as "12.5", " 7 " or "1,000" into a lakh amount
func ParseLakhs(input string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, errors.Wrap(ErrNotANumber, "empty input")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrNotANumber, "%q", input)
	}
	return amount, nil
}

// FormatLakhs renders a lakh amount with 2 decimal places, e.g. "₹12.35 Lakhs"
func FormatLakhs(lakhs decimal.Decimal) string {
	return "₹" + lakhs.StringFixed(DisplayPlaces) + " Lakhs"
}

// FormatRupees renders base units with Indian digit grouping, e.g. "₹12,34,567.89"
func FormatRupees(rupees decimal.Decimal) string {
	formatted := rupees.StringFixed(DisplayPlaces)

	parts := strings.SplitN(formatted, ".", 2)
	integerPart := addIndianSeparators(parts[0])
	if len(parts) > 1 {
		return "₹" + integerPart + "." + parts[1]
	}
	return "₹" + integerPart
}

// addIndianSeparators groups the last three digits, then pairs: 1,23,45,678
func addIndianSeparators(numStr string) string {
	negative := false
	if strings.HasPrefix(numStr, "-") {
		negative = true
		numStr = numStr[1:]
	}

	if len(numStr) <= 3 {
		if negative {
			return "-" + numStr
		}
		return numStr
	}

	head := numStr[:len(numStr)-3]
	tail := numStr[len(numStr)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	result := strings.Join(groups, ",") + "," + tail
	if negative {
		return "-" + result
	}
	return result
}
