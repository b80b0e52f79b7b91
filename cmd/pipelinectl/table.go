package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/noah-isme/hiring-pipeline-api/pkg/export"
)

// renderDataset draws the dataset rows as a table. Columns whose header is
// in numeric are right aligned.
func renderDataset(ds export.Dataset, numeric map[string]bool) string {
	if len(ds.Headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if ds.Title != "" {
		tw.SetTitle(ds.Title)
	}

	header := make(table.Row, len(ds.Headers))
	configs := make([]table.ColumnConfig, len(ds.Headers))
	for i, h := range ds.Headers {
		header[i] = h
		align := text.AlignLeft
		if numeric[h] {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range ds.Rows {
		r := make(table.Row, len(ds.Headers))
		for i, h := range ds.Headers {
			r[i] = row[h]
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func renderSummary(items []export.SummaryItem) string {
	if len(items) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	for _, item := range items {
		tw.AppendRow(table.Row{item.Label, item.Value})
	}
	return tw.Render()
}
