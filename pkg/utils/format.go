package utils

import (
	"fmt"
)

// FormatPrice formats a price with precision adapted to its magnitude:
// sub-unit prices (many altcoin pairs) keep more decimals than large ones.
func FormatPrice(price float64) string {
	abs := price
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1000:
		return fmt.Sprintf("%.2f", price)
	case abs >= 1:
		return fmt.Sprintf("%.4f", price)
	case abs == 0:
		return "0"
	default:
		return fmt.Sprintf("%.6f", price)
	}
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatAge renders an age in seconds as a compact human-readable duration.
func FormatAge(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
	default:
		return fmt.Sprintf("%dd%02dh", seconds/86400, (seconds%86400)/3600)
	}
}
