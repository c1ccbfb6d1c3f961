package models

// SipResult is the outcome of solving for the monthly contribution that grows
// to a target value. ProjectedGain is target minus total contributed, i.e. the
// growth the contributions must earn, not a forecast.
type SipResult struct {
	MonthlyContribution float64 `json:"monthly_contribution"`
	TotalContributed    float64 `json:"total_contributed"`
	ProjectedGain       float64 `json:"projected_gain"`
	TargetValue         float64 `json:"target_value"`
}

// IsZero reports whether the result is the degenerate all-zero value.
func (s SipResult) IsZero() bool {
	return s == SipResult{}
}

// EmiResult is the equal monthly installment that amortizes a loan.
type EmiResult struct {
	MonthlyInstallment float64 `json:"monthly_installment"`
	TotalPaid          float64 `json:"total_paid"`
	TotalInterest      float64 `json:"total_interest"`
}
