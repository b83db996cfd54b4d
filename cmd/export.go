package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/export"
	"github.com/harrisonrobin/takt/pkg/layout"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:       "export xlsx|png|pdf",
	Short:     "Write the plan as a spreadsheet or the chart as an image or PDF",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"xlsx", "png", "pdf"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func (e *env) geometry() layout.Geometry {
	return layout.Geometry{
		DayWidth:   e.cfg.Chart.DayWidth,
		LabelWidth: e.cfg.Chart.LabelWidth,
		RowHeight:  e.cfg.Chart.RowHeight,
		RowGap:     layout.DefaultGeometry.RowGap,
		Padding:    layout.DefaultGeometry.Padding,
		MaxDays:    e.cfg.Chart.MaxDays,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := setup("export")
	if err != nil {
		return err
	}

	var (
		path  string
		write func(io.Writer) error
	)
	switch args[0] {
	case "xlsx":
		path = e.cfg.Export.Spreadsheet
		p, err := e.plan()
		if err != nil {
			return err
		}
		write = func(w io.Writer) error { return export.WriteSpreadsheet(w, p.Tasks) }
	case "png", "pdf":
		tl, err := e.timeline()
		if err != nil {
			return err
		}
		img := export.Render(tl, e.geometry(), e.cfg.Chart.Scale)
		if args[0] == "png" {
			path = e.cfg.Export.Image
			write = func(w io.Writer) error { return export.WritePNG(w, img) }
		} else {
			path = e.cfg.Export.PDF
			write = func(w io.Writer) error { return export.WritePDF(w, img) }
		}
	}
	if exportOutput != "" {
		path = exportOutput
	}

	if err := writeFile(path, write); err != nil {
		return fmt.Errorf("export %s: %w", args[0], err)
	}
	e.log.Debugf("wrote %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
