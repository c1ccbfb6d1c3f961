package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spboyer/vitta/internal/calc"
	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/utils"
	"github.com/spboyer/vitta/internal/wizard"
	"github.com/spf13/cobra"
)

func newCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the SIP and EMI calculators",
		Long: `Run the savings calculators without contacting any model.

Amounts accept plain numbers or rupee notation such as ₹10,00,000.`,
	}

	cmd.AddCommand(newCalcSipCommand())
	cmd.AddCommand(newCalcEmiCommand())

	return cmd
}

func newCalcSipCommand() *cobra.Command {
	var annualReturn float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sip <target> <years>",
		Short: "Monthly SIP needed to reach a target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePositiveAmount("target", args[0])
			if err != nil {
				return err
			}
			years, err := parseYears(args[1])
			if err != nil {
				return err
			}
			if !validRate(annualReturn) {
				return fmt.Errorf("%w: --return must be a non-negative number", models.ErrInvalidInput)
			}

			res := calc.ComputeSIP(target, years, annualReturn)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printRows(cmd.OutOrStdout(), [][2]string{
				{"मासिक SIP", calc.FormatINR(res.MonthlyContribution)},
				{"कुल निवेश", calc.FormatINR(res.TotalContributed)},
				{"अपेक्षित लाभ", calc.FormatINR(res.ProjectedGain)},
				{"लक्ष्य राशि", calc.FormatINR(res.TargetValue)},
			})
			return nil
		},
	}

	cmd.Flags().Float64Var(&annualReturn, "return", 12, "Expected annual return in percent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func newCalcEmiCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "emi <principal> <years> <rate>",
		Short: "Monthly installment that repays a loan",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, err := parsePositiveAmount("principal", args[0])
			if err != nil {
				return err
			}
			years, err := parseYears(args[1])
			if err != nil {
				return err
			}
			rate, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[2]), "%"), 64)
			if err != nil || !validRate(rate) {
				return fmt.Errorf("%w: rate must be a non-negative percentage, got %q", models.ErrInvalidInput, args[2])
			}

			res := calc.ComputeEMI(principal, years, rate)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printRows(cmd.OutOrStdout(), [][2]string{
				{"मासिक EMI", calc.FormatINR(res.MonthlyInstallment)},
				{"कुल भुगतान", calc.FormatINR(res.TotalPaid)},
				{"कुल ब्याज", calc.FormatINR(res.TotalInterest)},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func parsePositiveAmount(name, s string) (float64, error) {
	v, err := wizard.ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", models.ErrInvalidInput, name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", models.ErrInvalidInput, name, s)
	}
	return v, nil
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func parseYears(s string) (int, error) {
	years, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || years < 1 {
		return 0, fmt.Errorf("%w: years must be a whole number of at least 1, got %q", models.ErrInvalidInput, s)
	}
	return years, nil
}

func printRows(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, utils.DisplayWidth(r[0])+1)
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", utils.PadRight(r[0]+":", width), r[1])
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
