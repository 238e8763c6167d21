package scoring

// MarginTrend is the tri-state financing-balance signal. Unknown (no margin
// row found for the security) renders differently from NotIncreased and
// contributes nothing to the score.
type MarginTrend int

const (
	MarginUnknown MarginTrend = iota
	MarginIncreased
	MarginNotIncreased
)

// String returns an ASCII name for logs.
func (t MarginTrend) String() string {
	switch t {
	case MarginIncreased:
		return "increased"
	case MarginNotIncreased:
		return "not-increased"
	default:
		return "unknown"
	}
}

// Display returns the table symbol. 資增
func (t MarginTrend) Display() string {
	switch t {
	case MarginIncreased:
		return "✅"
	case MarginNotIncreased:
		return "❌"
	default:
		return "—"
	}
}

// MarginFlow is the outcome of the margin-balance lookup for one security.
type MarginFlow struct {
	Trend MarginTrend
	Delta float64 // current balance minus prior balance, in lots (張)
}

// EvaluateMargin finds the security's margin row and computes the financing
// balance delta. Lookup is by normalized identifier; when the export carries
// duplicate rows for one code the first match wins, matching the exchange's
// own presentation order. No match yields MarginUnknown with a zero delta.
func EvaluateMargin(code string, rows []MarginRow) MarginFlow {
	for _, row := range rows {
		if NormalizeID(row.RawCode) != code {
			continue
		}

		delta := CoerceFloat(row.CurrBalance) - CoerceFloat(row.PrevBalance)
		trend := MarginNotIncreased
		if delta > 0 {
			trend = MarginIncreased
		}
		return MarginFlow{Trend: trend, Delta: delta}
	}

	return MarginFlow{Trend: MarginUnknown, Delta: 0}
}
