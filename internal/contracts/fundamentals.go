package contracts

// FundamentalSnapshot holds the fundamental ratios for a symbol.
// Every field is optional; nil means the provider had no value and the
// corresponding scoring rule is skipped, never an error.
type FundamentalSnapshot struct {
	Symbol string `json:"symbol"`

	EPS                  *float64 `json:"eps,omitempty"`
	PERatio              *float64 `json:"pe_ratio,omitempty"`
	DebtToEquity         *float64 `json:"debt_to_equity,omitempty"`
	ROE                  *float64 `json:"roe,omitempty"` // fraction, e.g. 0.15
	InstitutionalHolding *float64 `json:"institutional_holding,omitempty"`

	// YearReturn is the trailing 1-year return in percent, used only
	// by the sector comparator.
	YearReturn *float64 `json:"year_return,omitempty"`
}

// Float64Ptr is a convenience constructor for optional fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
