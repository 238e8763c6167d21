package scoring

// FlowRow is one security from the institutional net-buy/sell export (T86),
// in input order. Fields carry the raw cell text; normalization happens at
// scan time.
type FlowRow struct {
	RawCode string
	Name    string
}

// MarginRow is one security from the margin-financing balance export
// (MI_MARGN): the prior-day and current-day financing balances as raw text.
type MarginRow struct {
	RawCode     string
	PrevBalance string
	CurrBalance string
}
