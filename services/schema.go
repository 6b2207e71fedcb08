// Package services provides the canonical price-row schema, the row
// normalizer and the pricing calculation engine shared by the editor,
// the workbook store and the export surfaces.
package services

import (
	"math"
	"strconv"
	"strings"
)

// Canonical column headers, in the exact order rows are persisted,
// exported and displayed.
const (
	ColNo           = "No"
	ColReverse      = "Reverse"
	ColStatus       = "Status"
	ColItemName     = "Item Name"
	ColPurchaseCost = "Purchase Cost"
	ColTargetMargin = "Target Margin %"
	ColActualMargin = "Margin %"
	ColMarginAmount = "Margin Amount"
	ColTargetGap    = "Target Gap"
	ColFeeRate      = "Fee Rate %"
	ColFeeAmount    = "Fee Amount"
	ColSellingPrice = "Selling Price"
	ColUpdatedAt    = "Updated At"
	ColUpdatedBy    = "Updated By"
)

// Columns lists all 14 canonical columns in persistence order.
var Columns = []string{
	ColNo, ColReverse, ColStatus, ColItemName,
	ColPurchaseCost, ColTargetMargin, ColActualMargin, ColMarginAmount,
	ColTargetGap, ColFeeRate, ColFeeAmount, ColSellingPrice,
	ColUpdatedAt, ColUpdatedBy,
}

// Status classifies a calculated row. The stored value is the plain tag;
// icons and colors are applied at render time only (see format.go).
type Status string

const (
	StatusNormal         Status = "normal"
	StatusBelowTarget    Status = "below_target"
	StatusPriceInversion Status = "price_inversion"
)

// Row is one priced item in the canonical 14-field shape. Currency amounts
// are integer won; percentages are plain floats. ItemName always holds the
// clean name without display icons.
type Row struct {
	No              int
	Reverse         bool
	Status          Status
	ItemName        string
	PurchaseCost    int64
	TargetMarginPct float64
	ActualMarginPct float64
	MarginAmount    int64
	TargetGap       int64
	FeeRatePct      float64
	FeeAmount       int64
	SellingPrice    int64
	UpdatedAt       string
	UpdatedBy       string
}

// Cells returns the row's values in canonical column order, ready to be
// written to a worksheet.
func (r Row) Cells() []any {
	return []any{
		r.No, r.Reverse, string(r.Status), r.ItemName,
		r.PurchaseCost, r.TargetMarginPct, r.ActualMarginPct, r.MarginAmount,
		r.TargetGap, r.FeeRatePct, r.FeeAmount, r.SellingPrice,
		r.UpdatedAt, r.UpdatedBy,
	}
}

// Table converts rows to a [][]any table in canonical column order.
func Table(rows []Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}
	return out
}

// Normalize coerces loosely-typed records (as read from a workbook tab or an
// uploaded file) into canonical rows. Missing fields become type defaults,
// unparseable numbers become 0 and the "0" placeholder that empty sheet
// cells produce is mapped back to an empty name / normal status. Normalize
// never fails; malformed input degrades to defaults.
func Normalize(raw []map[string]any) []Row {
	rows := make([]Row, 0, len(raw))
	for _, rec := range raw {
		rows = append(rows, normalizeRecord(rec))
	}
	return rows
}

func normalizeRecord(rec map[string]any) Row {
	name := toText(rec[ColItemName])
	if name == "0" {
		name = ""
	}
	return Row{
		No:              int(toInt(rec[ColNo])),
		Reverse:         toBool(rec[ColReverse]),
		Status:          ParseStatus(toText(rec[ColStatus])),
		ItemName:        CleanName(name),
		PurchaseCost:    toInt(rec[ColPurchaseCost]),
		TargetMarginPct: toFloat(rec[ColTargetMargin]),
		ActualMarginPct: toFloat(rec[ColActualMargin]),
		MarginAmount:    toInt(rec[ColMarginAmount]),
		TargetGap:       toInt(rec[ColTargetGap]),
		FeeRatePct:      toFloat(rec[ColFeeRate]),
		FeeAmount:       toInt(rec[ColFeeAmount]),
		SellingPrice:    toInt(rec[ColSellingPrice]),
		UpdatedAt:       toText(rec[ColUpdatedAt]),
		UpdatedBy:       toText(rec[ColUpdatedBy]),
	}
}

// ParseStatus maps a stored status cell to its tag. Legacy sheets written by
// older revisions carried icon-annotated strings; those are recognized too.
// Anything unknown (including the "0" empty-cell placeholder) is normal.
func ParseStatus(s string) Status {
	s = strings.ToLower(strings.TrimSpace(stripIcons(s)))
	switch {
	case s == string(StatusBelowTarget), strings.Contains(s, "below"):
		return StatusBelowTarget
	case s == string(StatusPriceInversion), strings.Contains(s, "invers"), strings.Contains(s, "invert"):
		return StatusPriceInversion
	default:
		return StatusNormal
	}
}

// iconPrefixes are the display markers older revisions persisted into the
// item name. CleanName strips them so only the clean name is ever stored.
var iconPrefixes = []string{"⚠️", "🔻", "🔄", "🔴", "🟠", "🟢"}

// CleanName removes any stacked display-icon prefixes from an item name.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	for {
		stripped := false
		for _, icon := range iconPrefixes {
			if strings.HasPrefix(name, icon) {
				name = strings.TrimSpace(strings.TrimPrefix(name, icon))
				stripped = true
			}
		}
		if !stripped {
			return name
		}
	}
}

func stripIcons(s string) string {
	for _, icon := range iconPrefixes {
		s = strings.ReplaceAll(s, icon, "")
	}
	return s
}

// toFloat coerces a raw cell to a float64, mapping nil, empty and
// unparseable values to 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(n)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "₩")
		s = strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt(v any) int64 {
	return int64(math.Round(toFloat(v)))
}

// toBool coerces checkbox-ish representations: real bools, 0/1 numbers and
// the usual true/false spellings sheets produce.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "y", "checked", "on":
			return true
		}
		return false
	default:
		return toFloat(v) != 0
	}
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
