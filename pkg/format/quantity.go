package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Volume returns a cubic-meter quantity with thousands separators (e.g., "1,234.56 m³").
func Volume(v float64) string {
	return signed(v) + " m³"
}

// Area returns a square-meter quantity with thousands separators (e.g., "1,234.56 m²").
func Area(a float64) string {
	return signed(a) + " m²"
}

// Elevation returns a meter elevation without separators (e.g., "100.50 m").
func Elevation(z float64) string {
	return fmt.Sprintf("%.2f m", z)
}

func signed(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	return sign + formatPositive(math.Abs(value))
}

func formatPositive(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
