package services

import (
	"fmt"
	"math"
)

// Basis selects the denominator a percentage is computed against.
type Basis string

const (
	BasisPrice Basis = "price"
	BasisCost  Basis = "cost"
)

// ParseBasis maps a stored toggle value to a Basis, defaulting to price.
func ParseBasis(s string) Basis {
	if s == string(BasisCost) {
		return BasisCost
	}
	return BasisPrice
}

// RowError reports a row the calculator had to skip. The row itself is left
// exactly as it came in.
type RowError struct {
	Index int
	Name  string
	Err   error
}

// Recompute runs the hybrid pricing engine over a full row set and returns
// the recalculated rows plus the rows it had to skip.
//
// Rows are independent of each other, with one exception: a row whose No is
// 0 (freshly appended) is assigned the running maximum sequence plus one,
// which is why row order is preserved. A skipped row never aborts the batch;
// it keeps its pre-calculation values and is reported in the second return.
//
// marginBasis picks the denominator of the actual margin rate (selling price
// or purchase cost). targetBasis picks what the target margin percentage is
// a fraction of, which changes both the price/cost solve and the target
// amount the margin is compared against.
func Recompute(rows []Row, marginBasis, targetBasis Basis) ([]Row, []RowError) {
	out := make([]Row, len(rows))
	var failed []RowError

	seq := 0
	for i, r := range rows {
		if r.No > seq {
			seq = r.No
		} else if r.No == 0 {
			seq++
			r.No = seq
		}

		calc, err := recomputeRow(r, marginBasis, targetBasis)
		if err != nil {
			out[i] = r
			failed = append(failed, RowError{Index: i, Name: r.ItemName, Err: err})
			continue
		}
		out[i] = calc
	}
	return out, failed
}

// recomputeRow resolves one row. Reverse rows solve purchase cost from the
// market selling price; forward rows solve selling price from cost. Both
// guard the degenerate denominators so every output field stays finite.
func recomputeRow(r Row, marginBasis, targetBasis Basis) (Row, error) {
	cost := float64(r.PurchaseCost)
	price := float64(r.SellingPrice)
	feeRate := r.FeeRatePct
	targetRate := r.TargetMarginPct

	for _, v := range []float64{cost, price, feeRate, targetRate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r, fmt.Errorf("non-finite input value")
		}
	}

	r.ItemName = CleanName(r.ItemName)

	if r.Reverse {
		if targetBasis == BasisPrice {
			cost = math.Round(price * (1 - (feeRate+targetRate)/100))
		} else {
			denom := 1 + targetRate/100
			if denom > 0 {
				cost = math.Round(price * (1 - feeRate/100) / denom)
			} else {
				cost = 0
			}
		}
	} else {
		if targetBasis == BasisPrice {
			denom := 1 - (feeRate+targetRate)/100
			if denom > 0 {
				price = math.Round(cost / denom)
			} else {
				price = 0
			}
		} else {
			price = math.Round(cost * (1 + (feeRate+targetRate)/100))
		}
	}

	feeAmount := math.Round(price * feeRate / 100)
	marginAmount := int64(price) - int64(cost) - int64(feeAmount)

	var actualPct float64
	switch marginBasis {
	case BasisCost:
		if cost > 0 {
			actualPct = float64(marginAmount) / cost * 100
		}
	default:
		if price > 0 {
			actualPct = float64(marginAmount) / price * 100
		}
	}
	actualPct = math.Round(actualPct*100) / 100

	var targetAmount int64
	if targetBasis == BasisPrice {
		targetAmount = int64(math.Round(price * targetRate / 100))
	} else {
		targetAmount = int64(math.Round(cost * targetRate / 100))
	}

	r.PurchaseCost = int64(cost)
	r.SellingPrice = int64(price)
	r.FeeAmount = int64(feeAmount)
	r.MarginAmount = marginAmount
	r.ActualMarginPct = actualPct
	r.TargetGap = marginAmount - targetAmount

	// Inversion takes priority over missing the target.
	switch {
	case r.SellingPrice < r.PurchaseCost+r.FeeAmount && r.SellingPrice > 0:
		r.Status = StatusPriceInversion
	case marginAmount < targetAmount:
		r.Status = StatusBelowTarget
	default:
		r.Status = StatusNormal
	}

	return r, nil
}

// NextSequence returns the sequence number a newly appended row will get.
func NextSequence(rows []Row) int {
	max := 0
	for _, r := range rows {
		if r.No > max {
			max = r.No
		}
	}
	return max + 1
}
