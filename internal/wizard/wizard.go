// Package wizard collects a savings goal interactively.
package wizard

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/vitta/internal/models"
	"golang.org/x/term"
)

// Defaults pre-fill the goal form.
type Defaults struct {
	MonthlyIncome       float64
	TargetAmount        float64
	Years               int
	AnnualReturnPercent float64
	RiskProfile         models.RiskProfile
}

// DefaultGoal mirrors the values the form opens with when nothing is configured.
var DefaultGoal = Defaults{
	MonthlyIncome:       50000,
	TargetAmount:        1000000,
	Years:               5,
	AnnualReturnPercent: 12,
	RiskProfile:         models.RiskMedium,
}

// GoalAnswers holds the raw text typed into the form.
type GoalAnswers struct {
	MonthlyIncome string
	TargetAmount  string
	Years         string
	RiskProfile   models.RiskProfile
	AnnualReturn  string
	Notes         string
}

// NewGoalAnswers returns answers pre-filled from d.
func NewGoalAnswers(d Defaults) *GoalAnswers {
	a := &GoalAnswers{RiskProfile: d.RiskProfile}
	if d.MonthlyIncome > 0 {
		a.MonthlyIncome = formatNumber(d.MonthlyIncome)
	}
	if d.TargetAmount > 0 {
		a.TargetAmount = formatNumber(d.TargetAmount)
	}
	if d.Years > 0 {
		a.Years = strconv.Itoa(d.Years)
	}
	if d.AnnualReturnPercent > 0 {
		a.AnnualReturn = formatNumber(d.AnnualReturnPercent)
	}
	if a.RiskProfile == "" {
		a.RiskProfile = models.RiskMedium
	}
	return a
}

// Goal converts the answers into a validated GoalInput.
func (a *GoalAnswers) Goal() (models.GoalInput, error) {
	income, err := ParseAmount(a.MonthlyIncome)
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: monthly income: %v", models.ErrInvalidInput, err)
	}
	target, err := ParseAmount(a.TargetAmount)
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: target amount: %v", models.ErrInvalidInput, err)
	}
	years, err := strconv.Atoi(strings.TrimSpace(a.Years))
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: years must be a whole number, got %q", models.ErrInvalidInput, a.Years)
	}
	rate, err := ParseAmount(strings.TrimSuffix(strings.TrimSpace(a.AnnualReturn), "%"))
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: annual return: %v", models.ErrInvalidInput, err)
	}

	goal := models.GoalInput{
		MonthlyIncome:       income,
		TargetAmount:        target,
		Years:               years,
		RiskProfile:         a.RiskProfile,
		AnnualReturnPercent: rate,
		Notes:               strings.TrimSpace(a.Notes),
	}
	if err := goal.Validate(); err != nil {
		return models.GoalInput{}, err
	}
	return goal, nil
}

// ParseAmount reads a rupee amount, ignoring a leading ₹ and Indian or
// Western digit grouping ("₹10,00,000", "1,000,000", "1000000").
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("a number is required")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// RunGoalWizard runs an interactive huh form to collect a savings goal.
func RunGoalWizard(in io.Reader, out io.Writer, d Defaults) (models.GoalInput, error) {
	answers := NewGoalAnswers(d)

	form := newGoalForm(answers).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return models.GoalInput{}, fmt.Errorf("wizard failed: %w", err)
	}
	return answers.Goal()
}

func newGoalForm(a *GoalAnswers) *huh.Form {
	riskOptions := make([]huh.Option[models.RiskProfile], 0, len(models.RiskProfiles))
	for _, p := range models.RiskProfiles {
		riskOptions = append(riskOptions, huh.NewOption(string(p), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("मासिक आय (₹)").
				Description("आपकी कुल मासिक आय").
				Placeholder("50,000").
				Value(&a.MonthlyIncome).
				Validate(validatePositive),
			huh.NewInput().
				Title("लक्ष्य राशि (₹)").
				Description("आप कितनी राशि जुटाना चाहते हैं?").
				Placeholder("10,00,000").
				Value(&a.TargetAmount).
				Validate(validatePositive),
			huh.NewInput().
				Title("समय सीमा (वर्ष)").
				Description(fmt.Sprintf("%d से %d वर्ष", models.MinYears, models.MaxYears)).
				Placeholder("5").
				Value(&a.Years).
				Validate(validateYears),
			huh.NewSelect[models.RiskProfile]().
				Title("जोखिम प्रोफाइल").
				Options(riskOptions...).
				Value(&a.RiskProfile),
			huh.NewInput().
				Title("अपेक्षित वार्षिक रिटर्न (%)").
				Description(fmt.Sprintf("%.0f%% से %.0f%%", models.MinAnnualReturn, models.MaxAnnualReturn)).
				Placeholder("12").
				Value(&a.AnnualReturn).
				Validate(validateAnnualReturn),
			huh.NewText().
				Title("अतिरिक्त नोट्स (वैकल्पिक)").
				Placeholder("कोई विशेष आवश्यकता या लक्ष्य...").
				Value(&a.Notes),
		),
	)
}

func validatePositive(s string) error {
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateYears(s string) error {
	years, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of years")
	}
	if years < models.MinYears || years > models.MaxYears {
		return fmt.Errorf("years must be between %d and %d", models.MinYears, models.MaxYears)
	}
	return nil
}

func validateAnnualReturn(s string) error {
	v, err := ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return err
	}
	if v < models.MinAnnualReturn || v > models.MaxAnnualReturn {
		return fmt.Errorf("annual return must be between %.0f%% and %.0f%%", models.MinAnnualReturn, models.MaxAnnualReturn)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
