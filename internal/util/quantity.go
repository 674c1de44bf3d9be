package util

import (
	"fmt"
	"math"
	"strings"
)

// ParseQuantity converts a count string (e.g., "1000", "10k", "2.5M") to a number.
// If the string is empty, it returns 0.
func ParseQuantity(quantity string) (float64, error) {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return 0, nil
	}

	var value float64
	var unit string

	// Try to parse number and unit
	n, err := fmt.Sscanf(quantity, "%f%s", &value, &unit)

	if err != nil && n == 0 {
		return 0, fmt.Errorf("invalid quantity: %s", quantity)
	}

	if n == 1 {
		return value, nil
	}

	unit = strings.ToUpper(strings.TrimSpace(unit))
	switch unit {
	case "K":
		return value * 1e3, nil
	case "M":
		return value * 1e6, nil
	case "G", "B":
		return value * 1e9, nil
	default:
		return 0, fmt.Errorf("unknown quantity suffix: %s", unit)
	}
}

// ParseCount is ParseQuantity restricted to whole, non-negative numbers.
func ParseCount(quantity string) (int, error) {
	v, err := ParseQuantity(quantity)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt32*1e3 {
		return 0, fmt.Errorf("invalid count: %s", quantity)
	}
	return int(v), nil
}
