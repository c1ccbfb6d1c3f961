package main

import (
	"fmt"

	"github.com/spboyer/vitta/internal/archive"
	"github.com/spboyer/vitta/internal/projectconfig"
	"github.com/spboyer/vitta/internal/transcript"
	"github.com/spf13/cobra"
)

type archiveOptions struct {
	dir        string
	to         string
	accountURL string
	container  string
	workers    int
}

func newArchiveCommand() *cobra.Command {
	var opts archiveOptions

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Compress saved plans into an archive",
		Long: `Compress every saved transcript with zstd and copy it to an archive.

With --account-url (or archive.account_url in .vitta.yaml) the files are
uploaded to an Azure Blob Storage container. Authentication uses a SAS token
in the URL when present, otherwise the default Azure credential chain.
Without an account URL the files are written to a local directory.

Transcripts that fail to load are skipped and reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}

			sink, err := archiveSink(cfg, &opts)
			if err != nil {
				return err
			}

			runs, err := transcript.List(firstNonEmpty(opts.dir, cfg.Paths.Logs))
			if err != nil {
				return fmt.Errorf("listing transcripts: %w", err)
			}

			workers := cfg.Archive.Workers
			if cmd.Flags().Changed("workers") {
				workers = opts.workers
			}
			a := &archive.Archiver{Sink: sink, Workers: workers}
			results, err := a.Archive(cmd.Context(), runs)

			out := cmd.OutOrStdout()
			archived := 0
			for _, r := range results {
				switch {
				case r.Skipped != "":
					fmt.Fprintf(out, "⚠️  %s skipped: %s\n", r.Name, r.Skipped)
				case r.Object != "":
					archived++
					fmt.Fprintf(out, "📦 %s → %s (%d → %d bytes)\n", r.Name, r.Object, r.SizeBytes, r.CompressedBytes)
				}
			}
			if err != nil {
				return fmt.Errorf("archive failed: %w", err)
			}
			fmt.Fprintf(out, "Archived %d of %d transcripts to %s\n", archived, len(runs), sink.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Transcript directory (default from config)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Local archive directory (default from config)")
	cmd.Flags().StringVar(&opts.accountURL, "account-url", "", "Azure Blob Storage account URL")
	cmd.Flags().StringVar(&opts.container, "container", "", "Blob container name (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", archive.DefaultWorkers, "Concurrent uploads")

	return cmd
}

func archiveSink(cfg *projectconfig.ProjectConfig, opts *archiveOptions) (archive.Sink, error) {
	if opts.to != "" {
		return archive.DirSink{Dir: opts.to}, nil
	}
	if accountURL := firstNonEmpty(opts.accountURL, cfg.Archive.AccountURL); accountURL != "" {
		return archive.NewBlobSink(accountURL, firstNonEmpty(opts.container, cfg.Archive.Container), nil)
	}
	return archive.DirSink{Dir: cfg.Archive.Dir}, nil
}
