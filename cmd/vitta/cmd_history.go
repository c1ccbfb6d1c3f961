package main

import (
	"fmt"
	"os"

	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/reporting"
	"github.com/spboyer/vitta/internal/transcript"
	"github.com/spboyer/vitta/internal/utils"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and show saved plans",
		Long: `List and show saved plan transcripts.

Transcripts are the finance_plan_<date>_<time>.json files written by
vitta plan. They are read from the configured logs directory.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var dir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}

			runs, err := transcript.List(firstNonEmpty(dir, cfg.Paths.Logs))
			if err != nil {
				return fmt.Errorf("listing transcripts: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No saved plans found.")
				return nil
			}

			const nameWidth, dateWidth = 36, 28
			fmt.Fprintf(out, "%s %s %s\n", utils.PadRight("File", nameWidth), utils.PadRight("Date", dateWidth), "Size (KB)")
			fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
			for _, r := range runs {
				fmt.Fprintf(out, "%s %s %.2f\n",
					utils.PadRight(r.Filename, nameWidth),
					utils.PadRight(r.TimestampReadable, dateWidth),
					r.SizeKB)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Transcript directory (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	var dir string
	var asHTML, asSummary, asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name|path>",
		Short: "Render a saved plan",
		Long: `Render a saved plan as Markdown (default), HTML, a short summary or
the raw transcript JSON.

The argument is either a transcript file name inside the logs directory or
a path to a transcript file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := 0
			for _, f := range []bool{asHTML, asSummary, asJSON} {
				if f {
					formats++
				}
			}
			if formats > 1 {
				return fmt.Errorf("--html, --summary and --json are mutually exclusive")
			}

			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			t, err := openTranscript(firstNonEmpty(dir, cfg.Paths.Logs), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asHTML:
				page, err := reporting.PlanHTML(t)
				if err != nil {
					return err
				}
				fmt.Fprint(out, page)
			case asSummary:
				fmt.Fprint(out, reporting.Summary(t))
			case asJSON:
				data, err := transcript.Marshal(t)
				if err != nil {
					return err
				}
				out.Write(data) //nolint:errcheck
			default:
				fmt.Fprint(out, reporting.PlanMarkdown(t))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Transcript directory (default from config)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the plan as a standalone HTML page")
	cmd.Flags().BoolVar(&asSummary, "summary", false, "Print a short text summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the transcript JSON")

	return cmd
}

// openTranscript loads arg as a transcript name inside dir, or as a file path
// when it names an existing file.
func openTranscript(dir, arg string) (*models.Transcript, error) {
	if transcript.IsTranscriptName(arg) {
		return transcript.NewStore(dir).Open(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return transcript.Load(arg)
	}
	return nil, fmt.Errorf("%w: %s", transcript.ErrNotFound, arg)
}
