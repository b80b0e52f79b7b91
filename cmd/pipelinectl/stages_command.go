package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	"github.com/noah-isme/hiring-pipeline-api/pkg/export"
)

type stageInfo struct {
	Stage    string `json:"stage"`
	Status   string `json:"status,omitempty"`
	Terminal bool   `json:"terminal"`
}

func newStagesCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List pipeline stages and the status each one sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := pipeline.Stages()
			infos := make([]stageInfo, 0, len(stages))
			for _, s := range stages {
				status, _ := pipeline.StatusFor(s)
				infos = append(infos, stageInfo{Stage: string(s), Status: string(status), Terminal: pipeline.IsTerminal(s)})
			}
			if opts.jsonOutput {
				return writeJSON(cmd, infos)
			}

			ds := export.Dataset{Headers: []string{"Stage", "Sets status", "Terminal"}}
			for _, info := range infos {
				terminal := "no"
				if info.Terminal {
					terminal = "yes"
				}
				ds.Rows = append(ds.Rows, map[string]string{
					"Stage": info.Stage, "Sets status": orDash(info.Status), "Terminal": terminal,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDataset(ds, nil))
			return nil
		},
	}
}
