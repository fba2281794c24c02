package report

import "github.com/shopspring/decimal"

// SafeDivide returns a/b, or nil when b is nil or zero.
func SafeDivide(a float64, b *float64) *float64 {
	if b == nil || *b == 0 {
		return nil
	}
	v := a / *b
	return &v
}

// Ratio divides two counts, returning nil for a zero denominator.
func Ratio(a, b int) *float64 {
	d := float64(b)
	return SafeDivide(float64(a), &d)
}

// ProfitMargin returns price - cost, nil when either is unknown.
func ProfitMargin(price *float64, cost *int) *float64 {
	if price == nil || cost == nil {
		return nil
	}
	v := *price - float64(*cost)
	return &v
}

// ProfitMarginPct returns 100*(price-cost)/cost, nil when undefined.
func ProfitMarginPct(price *float64, cost *int) *float64 {
	margin := ProfitMargin(price, cost)
	if margin == nil {
		return nil
	}
	c := float64(*cost)
	return SafeDivide(100*(*margin), &c)
}

// ContributionPct returns 100*value/total rounded half away from zero to two
// decimal places, or 0 when total is 0.
func ContributionPct(value, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(value)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
	f, _ := pct.Float64()
	return f
}
