package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/neal-igolgi/h265-benchmark/src/figure"
)

var summaryHeaders = []string{"Figure", "Title", "Label", "Score", "Frames", "Mean", "Std.Dev", "Min", "Max"}

// numeric columns are right aligned
var summaryRightAligned = map[int]bool{1: true, 5: true, 6: true, 7: true, 8: true, 9: true}

func summaryRows(reg *figure.Registry) [][]string {
	var rows [][]string
	for _, fig := range reg.Figures() {
		for _, s := range fig.Series {
			rows = append(rows, []string{
				strconv.Itoa(fig.ID),
				fig.Title(),
				s.Label,
				s.ScoreType,
				strconv.Itoa(len(s.Values)),
				fmt.Sprintf("%.3f", s.Stats.Mean),
				fmt.Sprintf("%.3f", s.Stats.Stdev),
				fmt.Sprintf("%.2f", s.Stats.Min),
				fmt.Sprintf("%.2f", s.Stats.Max),
			})
		}
	}
	return rows
}

func renderSummary(reg *figure.Registry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range summaryRows(reg) {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(summaryHeaders))
	for i := 1; i <= len(summaryHeaders); i++ {
		align := text.AlignLeft
		if summaryRightAligned[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
