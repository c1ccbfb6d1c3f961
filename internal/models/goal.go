package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is wrapped by every GoalInput validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Input bounds enforced by GoalInput.Validate. The calculator itself never
// rejects input; it returns zeroed results instead.
const (
	MinYears        = 1
	MaxYears        = 30
	MinAnnualReturn = 5.0
	MaxAnnualReturn = 15.0
)

// RiskProfile is the investor's declared appetite for risk. The value is the
// label shown to users and interpolated into prompts.
type RiskProfile string

const (
	RiskLow    RiskProfile = "कम जोखिम (Low)"
	RiskMedium RiskProfile = "मध्यम जोखिम (Medium)"
	RiskHigh   RiskProfile = "उच्च जोखिम (High)"
)

// RiskProfiles lists the known profiles in display order.
var RiskProfiles = []RiskProfile{RiskLow, RiskMedium, RiskHigh}

// Key returns the short ASCII key for the profile ("low", "medium", "high").
func (r RiskProfile) Key() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return ""
}

// ParseRiskProfile accepts either a short key (case-insensitive) or a full label.
func ParseRiskProfile(s string) (RiskProfile, error) {
	trimmed := strings.TrimSpace(s)
	for _, p := range RiskProfiles {
		if strings.EqualFold(trimmed, p.Key()) || trimmed == string(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown risk profile %q (want low, medium or high)", ErrInvalidInput, s)
}

// GoalInput is one user's savings goal as collected by an input surface.
type GoalInput struct {
	MonthlyIncome       float64     `json:"monthly_income"`
	TargetAmount        float64     `json:"target_amount"`
	Years               int         `json:"years"`
	RiskProfile         RiskProfile `json:"risk_profile"`
	AnnualReturnPercent float64     `json:"annual_return_percent"`
	Notes               string      `json:"notes,omitempty"`
}

// Validate reports the first field that falls outside the accepted ranges.
func (g GoalInput) Validate() error {
	switch {
	case !isFinite(g.MonthlyIncome) || !isFinite(g.TargetAmount) || !isFinite(g.AnnualReturnPercent):
		return fmt.Errorf("%w: amounts and rates must be finite numbers", ErrInvalidInput)
	case g.MonthlyIncome <= 0:
		return fmt.Errorf("%w: monthly income must be positive, got %v", ErrInvalidInput, g.MonthlyIncome)
	case g.TargetAmount <= 0:
		return fmt.Errorf("%w: target amount must be positive, got %v", ErrInvalidInput, g.TargetAmount)
	case g.Years < MinYears || g.Years > MaxYears:
		return fmt.Errorf("%w: years must be between %d and %d, got %d", ErrInvalidInput, MinYears, MaxYears, g.Years)
	case g.AnnualReturnPercent < MinAnnualReturn || g.AnnualReturnPercent > MaxAnnualReturn:
		return fmt.Errorf("%w: annual return must be between %.1f%% and %.1f%%, got %v",
			ErrInvalidInput, MinAnnualReturn, MaxAnnualReturn, g.AnnualReturnPercent)
	}
	if _, err := ParseRiskProfile(string(g.RiskProfile)); err != nil {
		return err
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
