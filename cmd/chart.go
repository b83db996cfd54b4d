package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/colors"
	"github.com/harrisonrobin/takt/pkg/layout"
	"github.com/harrisonrobin/takt/pkg/util"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the timeline layout of the current plan",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func (e *env) timeline() (*layout.Timeline, error) {
	palette, err := colors.ParsePalette(e.cfg.Palette)
	if err != nil {
		return nil, err
	}
	p, err := e.plan()
	if err != nil {
		return nil, err
	}
	tl, ok := layout.Compute(p.Tasks, palette)
	if !ok {
		return nil, fmt.Errorf("plan has no tasks")
	}
	return tl, nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	e, err := setup("chart")
	if err != nil {
		return err
	}
	tl, err := e.timeline()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	from, to := "?", "?"
	if tl.HasMinDate {
		from = tl.MinDate.Format(util.DateLayout)
	}
	if tl.HasMaxDate {
		to = tl.MaxDate.Format(util.DateLayout)
	}
	fmt.Fprintf(out, "%s .. %s (%d days)\n", from, to, tl.TotalSpanDays)

	g := e.geometry().WithDefaults()
	cols := g.Columns(tl)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("id", "name", "offset", "span", "color", "").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, bar := range tl.Bars {
		name := bar.Task.Name
		if bar.Degenerate {
			name += " (no dates)"
		}
		// same clipping as the rendered chart
		lead := min(max(0, bar.OffsetDays), cols)
		width := min(lead+max(1, bar.SpanDays), cols) - lead
		track := strings.Repeat(" ", lead) +
			lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color.Hex)).Render(strings.Repeat("█", width))
		if lead+width < max(0, bar.OffsetDays)+bar.SpanDays {
			track += ">>"
		}
		t.Row(bar.Task.ID, name, strconv.Itoa(bar.OffsetDays), strconv.Itoa(bar.SpanDays), bar.Color.Hex, track)
	}
	fmt.Fprintln(out, t.String())

	for _, entry := range tl.Legend {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color.Hex)).Render("■")
		fmt.Fprintf(out, "%s %s (%s)\n", swatch, entry.Trade, entry.Color.Hex)
	}
	return nil
}
