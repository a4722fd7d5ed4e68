package main

import (
	"fmt"
	"strconv"

	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/errors"
	"github.com/indigo-web/rawfetch/fetch"
	"github.com/indigo-web/rawfetch/internal/cli"
	"github.com/spf13/cobra"
)

// stdout as the output streams the response instead of storing it
const stdout = "-"

func newRootCmd() *cobra.Command {
	var (
		cfg     = config.Default()
		output  string
		path    string
		strip   bool
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "rawfetch <hostname> <port>",
		Short: "Fetch a resource over plain HTTP/1.1 and save the response",
		Long: `rawfetch - fetch a single resource over a raw TCP connection.

The request is a hand-built HTTP/1.1 GET. The response is stored as it came from
the wire, headers included, unless --strip is set.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := strconv.ParseUint(args[1], 10, 16)
			if err != nil {
				return fmt.Errorf("%w %q: %w", errors.ErrBadPort, args[1], err)
			}

			if asJSON && output == stdout {
				return fmt.Errorf("--json cannot be used when writing the response to stdout")
			}

			cfg.Fetch.Host, cfg.Fetch.Port = args[0], uint16(port)
			cfg.Fetch.StripHeaders = strip

			logger := cli.NewLogger(cmd.ErrOrStderr(), verbose)
			defer func() { _ = logger.Sync() }()

			fetcher := fetch.New(fetch.Options{Config: cfg, Logger: logger})

			var report fetch.Report
			if output == stdout {
				report, err = fetcher.Stream(path, cmd.OutOrStdout())
			} else {
				report, err = fetcher.Fetch(path, output)
			}

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
	flags.StringVarP(&output, "output", "o", cfg.Fetch.DemoOutput, `Output file, "-" for stdout`)
	flags.StringVar(&path, "path", cfg.Fetch.DemoPath, "Requested resource")
	flags.BoolVar(&strip, "strip", false, "Store the body only")
	flags.BoolVar(&asJSON, "json", false, "Print the download report as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	cfg.BindNET(flags)

	return cmd
}
