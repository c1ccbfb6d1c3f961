package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/vitta/internal/agents"
	"github.com/spboyer/vitta/internal/calc"
	"github.com/spboyer/vitta/internal/generator"
	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/projectconfig"
	"github.com/spboyer/vitta/internal/reporting"
	"github.com/spboyer/vitta/internal/session"
	"github.com/spboyer/vitta/internal/spinner"
	"github.com/spboyer/vitta/internal/transcript"
	"github.com/spboyer/vitta/internal/wizard"
	"github.com/spf13/cobra"
)

type planOptions struct {
	income       string
	target       string
	years        int
	risk         string
	annualReturn float64
	notes        string

	engine      string
	model       string
	logsDir     string
	sessionsDir string
	sessionLog  bool
	noSave      bool
}

func newPlanCommand() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a savings plan with the three advisor agents",
		Long: `Build a savings plan for one goal.

Without --income and --target an interactive form collects the goal. The
required monthly SIP is computed locally, then the advisor, risk analyst and
planner answer in turn. A failed agent never stops the run: its section
carries an error note instead. The finished plan is printed as Markdown and
saved as a JSON transcript unless --no-save is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.income, "income", "", "Monthly income in rupees (e.g. 50000 or ₹50,000)")
	cmd.Flags().StringVar(&opts.target, "target", "", "Target amount in rupees (e.g. 10,00,000)")
	cmd.Flags().IntVar(&opts.years, "years", 5, "Time horizon in years (1-30)")
	cmd.Flags().StringVar(&opts.risk, "risk", "", "Risk profile: low, medium or high (default from config)")
	cmd.Flags().Float64Var(&opts.annualReturn, "return", 0, "Expected annual return in percent, 5-15 (default from config)")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "Additional notes passed to the advisor")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "Generator engine: openai, copilot or mock (default from config)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name (default from config)")
	cmd.Flags().StringVar(&opts.logsDir, "logs-dir", "", "Directory for saved transcripts (default from config)")
	cmd.Flags().StringVar(&opts.sessionsDir, "sessions-dir", "", "Directory for session logs (default from config)")
	cmd.Flags().BoolVar(&opts.sessionLog, "session-log", false, "Write an NDJSON session log for this run")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "Do not save a transcript")

	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	in, err := collectGoal(cmd, cfg, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sip := calc.ComputeSIP(in.TargetAmount, in.Years, in.AnnualReturnPercent)
	printSip(out, in, sip)

	genCfg := generatorConfig(cfg, opts.engine, opts.model)
	gen, err := generator.New(genCfg)
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}
	defer func() {
		if err := gen.Shutdown(cmd.Context()); err != nil {
			slog.Warn("Generator shutdown failed", "error", err)
		}
	}()

	runID := uuid.NewString()
	events, err := openSessionLog(cfg, opts, runID)
	if err != nil {
		return err
	}
	defer events.Close() //nolint:errcheck

	sp := spinner.Start(cmd.ErrOrStderr(), "🤖 एजेंट सोच रहे हैं...")
	pipeline := &agents.Pipeline{
		Generator: gen,
		RunID:     runID,
		Engine:    genCfg.Engine,
		Model:     genCfg.Model,
		Events:    events,
		OnStage: func(role agents.Role, num, total int) {
			sp.Update(fmt.Sprintf("🤖 (%d/%d) %s सोच रहे हैं...", num, total, role.Label))
		},
	}
	outcome := pipeline.Run(cmd.Context(), in, sip)
	sp.Stop()

	if failed := outcome.Failed(); failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %d of 3 agents failed; their sections contain an error note.\n", failed)
	}

	store := transcript.NewStore(firstNonEmpty(opts.logsDir, cfg.Paths.Logs))
	store.SummaryLength = cfg.Defaults.SummaryLength
	run := outcome.PipelineRun()

	t := store.Build(run, time.Now())
	fmt.Fprintln(out)
	fmt.Fprint(out, reporting.PlanMarkdown(t))

	if opts.noSave {
		return nil
	}
	path, err := store.Save(run)
	if err != nil {
		_ = events.Log(session.NewEvent(session.EventError, session.ErrorData(err.Error(), map[string]any{"run_id": runID})))
		return fmt.Errorf("saving transcript: %w", err)
	}
	_ = events.Log(session.NewEvent(session.EventTranscriptSaved, session.TranscriptSavedData(runID, path)))
	fmt.Fprintf(out, "\n💾 योजना सहेजी गई: %s\n", path)
	return nil
}

// collectGoal reads the goal from flags, or from the interactive form when
// neither --income nor --target is set.
func collectGoal(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, opts *planOptions) (models.GoalInput, error) {
	risk := models.RiskMedium
	if p, err := models.ParseRiskProfile(firstNonEmpty(opts.risk, cfg.Defaults.RiskProfile)); err == nil {
		risk = p
	} else if opts.risk != "" {
		return models.GoalInput{}, err
	}

	annualReturn := cfg.Defaults.AnnualReturn
	if cmd.Flags().Changed("return") {
		annualReturn = opts.annualReturn
	}

	if !cmd.Flags().Changed("income") && !cmd.Flags().Changed("target") {
		d := wizard.DefaultGoal
		d.AnnualReturnPercent = annualReturn
		d.RiskProfile = risk
		return wizard.RunGoalWizard(cmd.InOrStdin(), cmd.OutOrStdout(), d)
	}

	income, err := wizard.ParseAmount(opts.income)
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: --income: %v", models.ErrInvalidInput, err)
	}
	target, err := wizard.ParseAmount(opts.target)
	if err != nil {
		return models.GoalInput{}, fmt.Errorf("%w: --target: %v", models.ErrInvalidInput, err)
	}

	in := models.GoalInput{
		MonthlyIncome:       income,
		TargetAmount:        target,
		Years:               opts.years,
		RiskProfile:         risk,
		AnnualReturnPercent: annualReturn,
		Notes:               opts.notes,
	}
	if err := in.Validate(); err != nil {
		return models.GoalInput{}, err
	}
	return in, nil
}

// generatorConfig merges config-file generator settings with flag overrides.
func generatorConfig(cfg *projectconfig.ProjectConfig, engine, model string) generator.Config {
	gc := cfg.Generator
	if engine != "" {
		gc.Engine = engine
		// The configured default model only exists on the Hugging Face router.
		if model == "" && gc.Engine != generator.EngineOpenAI && gc.Model == projectconfig.DefaultModel {
			gc.Model = ""
		}
	}
	if model != "" {
		gc.Model = model
	}

	temperature := projectconfig.DefaultTemperature
	if gc.Temperature != nil {
		temperature = *gc.Temperature
	}

	return generator.Config{
		Engine:      gc.Engine,
		Model:       gc.Model,
		BaseURL:     gc.BaseURL,
		APIToken:    cfg.APIToken(),
		Temperature: temperature,
		MaxTokens:   gc.MaxTokens,
		Timeout:     cfg.GeneratorTimeout(),
		Options:     gc.Options,
	}
}

func openSessionLog(cfg *projectconfig.ProjectConfig, opts *planOptions, runID string) (session.Logger, error) {
	if !opts.sessionLog && !cfg.SessionLogEnabled() {
		return session.NopLogger{}, nil
	}
	dir := firstNonEmpty(opts.sessionsDir, cfg.Paths.Sessions)
	logger, err := session.NewJSONLogger(session.DefaultLogPath(dir, runID))
	if err != nil {
		return nil, err
	}
	slog.Debug("Writing session log", "path", logger.Path())
	return logger, nil
}

func printSip(w io.Writer, in models.GoalInput, sip models.SipResult) {
	rows := [][2]string{
		{"आवश्यक मासिक SIP", calc.FormatINR(sip.MonthlyContribution)},
		{"कुल निवेश", calc.FormatINR(sip.TotalContributed)},
		{"अपेक्षित लाभ", calc.FormatINR(sip.ProjectedGain)},
		{"आय का %", fmt.Sprintf("%.1f%%", calc.IncomeSharePercent(sip.MonthlyContribution, in.MonthlyIncome))},
	}
	fmt.Fprintln(w, "📊 गणना परिणाम")
	printRows(w, rows)
}
