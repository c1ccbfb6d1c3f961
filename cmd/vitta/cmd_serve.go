package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/vitta/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	var dir string
	var noBrowser bool
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Browse saved plans in a web browser",
		Long: `Start a local HTTP server for saved plans.

Routes:
  GET /                  HTML list of saved plans
  GET /plans/{name}      One plan rendered as HTML
  GET /api/health        Health check
  GET /api/plans         Saved plans as JSON, newest first
  GET /api/plans/{name}  One transcript with its summary as JSON

The server binds to 127.0.0.1 only and stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				PlansDir:       firstNonEmpty(dir, cfg.Paths.Logs),
				NoBrowser:      noBrowser,
				AllowedOrigins: origins,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "vitta plans: %s\n", srv.URL())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 3000, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Transcript directory (default from config)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Origins allowed to call the JSON API (CORS)")

	return cmd
}
