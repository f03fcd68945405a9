package main

import (
	"fmt"
	"os"

	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/internal/log"
	"github.com/spf13/cobra"
)

func splitCmd() *cobra.Command {
	var (
		numLines    int
		header      bool
		headerLines int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "split PATH",
		Short: "Split a file into numbered chunks",
		Long: `Split PATH into <stem>-<N>.<ext> files in the same directory.

Each output file starts with the header lines (none by default, one with
--header, or N with --header-lines N) followed by up to --lines data lines.
Existing output files are overwritten.

When --lines is omitted the chunk size of the last successful run is used,
falling back to DEFAULT_NUM_LINES (default: 10).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := log.NewFromConfig(cfg, os.Stderr)
			client, err := csvsplit.New(clientOptions(cfg, logger)...)
			if err != nil {
				return fmt.Errorf("create csvsplit client: %w", err)
			}
			defer func() { _ = client.Close() }()

			ctx := cmd.Context()
			if !cmd.Flags().Changed("lines") {
				numLines = client.NumLines(ctx)
			}

			var opts []split.RequestOption
			if cmd.Flags().Changed("header-lines") {
				opts = append(opts, split.WithHeaderLines(headerLines))
			} else {
				opts = append(opts, split.WithHeader(header))
			}

			result, err := client.Splits.Split(ctx, split.NewRequest(args[0], numLines, opts...))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputText {
				_, err = fmt.Fprintln(out, result.Files())
				return err
			}
			return writeStructured(out, output, newSplitOutput(result))
		},
	}

	cmd.Flags().IntVarP(&numLines, "lines", "n", 0, "Maximum data lines per output file")
	cmd.Flags().BoolVar(&header, "header", false, "Treat the first line as a header")
	cmd.Flags().IntVar(&headerLines, "header-lines", 0, "Number of header lines (overrides --header)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}
