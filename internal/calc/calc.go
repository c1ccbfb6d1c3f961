// Package calc implements the deterministic money math used to size a
// savings goal: the SIP required to reach a target, the EMI that repays a
// loan, and Indian-style rupee formatting. Nothing here calls a model.
package calc

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/spboyer/vitta/internal/models"
)

// ComputeSIP returns the monthly contribution that grows to target after
// years at annualRatePercent, compounded monthly (ordinary annuity).
// Degenerate input (years <= 0 or target <= 0) yields a zero result.
func ComputeSIP(target float64, years int, annualRatePercent float64) models.SipResult {
	if years <= 0 || target <= 0 {
		return models.SipResult{}
	}

	r := monthlyRate(annualRatePercent)
	n := float64(years * 12)

	// (1+r)^n - 1, accurate when 1+r rounds to 1.
	growth := math.Expm1(n * math.Log1p(r))

	var contribution float64
	if growth == 0 {
		contribution = target / n
	} else {
		contribution = target * (r / growth)
	}

	total := contribution * n

	return models.SipResult{
		MonthlyContribution: Round2(contribution),
		TotalContributed:    Round2(total),
		ProjectedGain:       Round2(target - total),
		TargetValue:         Round2(target),
	}
}

// ComputeEMI returns the equal monthly installment that amortizes principal
// over years at annualRatePercent. Degenerate input yields a zero result.
func ComputeEMI(principal float64, years int, annualRatePercent float64) models.EmiResult {
	if years <= 0 || principal <= 0 {
		return models.EmiResult{}
	}

	r := monthlyRate(annualRatePercent)
	n := float64(years * 12)

	// 1 - (1+r)^-n, which stays finite when (1+r)^n overflows.
	discount := -math.Expm1(-n * math.Log1p(r))

	var installment float64
	if discount == 0 {
		installment = principal / n
	} else {
		installment = principal * (r / discount)
	}

	total := installment * n

	return models.EmiResult{
		MonthlyInstallment: Round2(installment),
		TotalPaid:          Round2(total),
		TotalInterest:      Round2(total - principal),
	}
}

// Round2 rounds v to two decimal places, half away from zero, on the
// shortest decimal representation of v. NaN and ±Inf are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// IncomeSharePercent is monthly as a percentage of income, or 0 when income
// is not positive.
func IncomeSharePercent(monthly, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return monthly / income * 100
}
