package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatKRW formats an integer won amount with thousand grouping,
// e.g. ₩1,234,567. Won has no minor unit, so no decimals are shown.
func FormatKRW(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n > 3 {
		var b strings.Builder
		rem := n % 3
		if rem > 0 {
			b.WriteString(s[:rem])
		}
		for i := rem; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}

	result := "₩" + s
	if negative {
		result = "-" + result
	}
	return result
}

// FormatSigned formats a signed won amount with an explicit plus sign for
// positive values, used for the target gap column.
func FormatSigned(amount int64) string {
	if amount > 0 {
		return "+" + FormatKRW(amount)
	}
	return FormatKRW(amount)
}

// FormatPercent renders a percentage with up to two decimals, trimming
// trailing zeros (20.00 → "20%", 5.60 → "5.6%").
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + "%"
}

// Timestamp renders the short save stamp written into the Updated At column.
func Timestamp(t time.Time) string {
	return t.Format("01/02 15:04")
}

// StatusLabel renders the colored status text for a row. The working color
// follows the calculation direction (green forward, amber reverse); a price
// inversion always shows red.
func StatusLabel(r Row) string {
	dot := "🟢"
	mode := "Normal"
	if r.Reverse {
		dot = "🟠"
		mode = "Reverse"
	}
	switch r.Status {
	case StatusPriceInversion:
		return "🔴 Inverted"
	case StatusBelowTarget:
		return dot + " Below target"
	default:
		return fmt.Sprintf("%s %s", dot, mode)
	}
}

// DisplayName renders the item name with its transient status icons. Only
// the displayed copy carries icons; the stored name stays clean.
func DisplayName(r Row) string {
	prefix := ""
	if r.Reverse {
		prefix = "🔄 "
	}
	switch r.Status {
	case StatusPriceInversion:
		prefix = "⚠️ " + prefix
	case StatusBelowTarget:
		prefix = "🔻 " + prefix
	}
	return prefix + r.ItemName
}
