package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/internal/config"
	"github.com/helixml/csvsplit/internal/log"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent split runs",
		Args:  cobra.NoArgs,
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

			runs, err := client.Splits.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != outputText {
				return writeStructured(out, output, newRunOutputs(runs))
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tFINISHED\tSTATE\tLINES\tHEADER\tFILES\tSOURCE")
			for _, r := range runs {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.ID(),
					r.FinishedAt().Local().Format(time.DateTime),
					r.State(),
					r.NumLines(),
					r.HeaderLines(),
					r.Files(),
					r.Source(),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", config.DefaultHistoryLimit, "Maximum number of runs to list")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}
