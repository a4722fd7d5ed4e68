package main

import (
	"github.com/indigo-web/rawfetch/cache"
	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/fetch"
	"github.com/indigo-web/rawfetch/internal/cli"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		cfg     = config.Default()
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "fetchbin <version>",
		Short: "Download a versioned binary once and make it executable",
		Long: `fetchbin - download <prefix><version> into <cache-dir>/<version>.

Nothing happens if the file is already there. Otherwise the response body is
stored and the file is marked executable for owner, group and others.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.NewLogger(cmd.ErrOrStderr(), verbose)
			defer func() { _ = logger.Sync() }()

			cfg.Fetch.StripHeaders = true
			fetcher := fetch.New(fetch.Options{Config: cfg, Logger: logger})

			report, err := cache.New(fetcher, logger).Ensure(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout())
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&cfg.Fetch.MarkExecutable, "chmod", cfg.Fetch.MarkExecutable, "Mark downloaded files executable")
	flags.BoolVar(&asJSON, "json", false, "Print the download report as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	cfg.BindRemote(flags)
	cfg.BindCache(flags)
	cfg.BindNET(flags)

	return cmd
}
