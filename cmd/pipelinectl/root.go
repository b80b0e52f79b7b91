package main

import (
	"time"

	"github.com/spf13/cobra"
)

type cliOptions struct {
	snapshotPath string
	jsonOutput   bool
	now          func() time.Time
}

func newRootCommand() *cobra.Command {
	return buildRootCommand(&cliOptions{now: time.Now})
}

func buildRootCommand(opts *cliOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pipelinectl",
		Short:         "Hiring pipeline reports and stage transitions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.snapshotPath, "snapshot", "s", "snapshot.json", "Path to the JSON snapshot file")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print machine-readable JSON")

	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newTransitionCommand(opts))
	rootCmd.AddCommand(newStagesCommand(opts))

	return rootCmd
}
