package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/hiring-pipeline-api/internal/dto"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/export"
)

func newTransitionCommand(opts *cliOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "transition <application-id> <stage>",
		Short: "Move an application to another stage and save the snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(opts.snapshotPath)
			if err != nil {
				return err
			}

			idx := -1
			for i := range snap.Applications {
				if snap.Applications[i].ID == args[0] {
					idx = i
					break
				}
			}
			if idx < 0 {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("application %s not found", args[0]))
			}

			before := snap.Applications[idx]
			after, err := pipeline.NewEngine(opts.now).Apply(before, args[1])
			if err != nil {
				return err
			}
			recordHire(before, &after)
			snap.Applications[idx] = after

			if !dryRun {
				if err := saveSnapshot(opts.snapshotPath, snap); err != nil {
					return err
				}
			}

			if opts.jsonOutput {
				return writeJSON(cmd, dto.StageTransitionResponse{Application: after, Change: pipeline.Change(before, after)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDataset(export.Dataset{
				Title:   "Application " + after.ID,
				Headers: []string{"Field", "Before", "After"},
				Rows: []map[string]string{
					{"Field": "Stage", "Before": string(before.CurrentStage), "After": string(after.CurrentStage)},
					{"Field": "Status", "Before": orDash(string(before.Status)), "After": orDash(string(after.Status))},
					{"Field": "Updated", "Before": before.UpdatedAt.Format(timeLayout), "After": after.UpdatedAt.Format(timeLayout)},
				},
			}, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without saving the snapshot")
	return cmd
}

// recordHire stamps the instant an application enters hired from another
// stage. Snapshot files have no history table, so this field is the only
// record of it; records saved without it fall back to updated_at.
func recordHire(before models.Application, after *models.Application) {
	if after.CurrentStage == models.StageHired && before.CurrentStage != models.StageHired {
		hiredAt := after.UpdatedAt
		after.HiredAt = &hiredAt
	}
}

const timeLayout = "2006-01-02 15:04:05"

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
