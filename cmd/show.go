package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the tasks of the current plan",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit INDEX FIELD VALUE",
	Short: "Change one field of one task (INDEX as listed by show)",
	Long: "Change one field of one task. INDEX is the row number printed by show,\n" +
		"FIELD is one of: id, name, startDate, endDate, location, trade, dependencies.",
	Args: cobra.ExactArgs(3),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
}

func taskTable(tasks []model.Task) *table.Table {
	headers := append([]string{"#"}, model.Columns...)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, task := range tasks {
		t.Row(append([]string{strconv.Itoa(i + 1)}, task.Values()...)...)
	}
	return t
}

func runShow(cmd *cobra.Command, _ []string) error {
	e, err := setup("show")
	if err != nil {
		return err
	}
	p, err := e.plan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("plan %s from %s", p.ID, p.Source)))
	if len(p.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}
	if dups := model.DuplicateIDs(p.Tasks); len(dups) > 0 {
		e.log.Warnf("duplicate task ids: %s", strings.Join(dups, ", "))
	}
	fmt.Fprintln(out, taskTable(p.Tasks).String())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	e, err := setup("edit")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	p, err := e.plan()
	if err != nil {
		return err
	}

	tasks, err := model.SetField(p.Tasks, n-1, args[1], args[2])
	if err != nil {
		return err
	}
	if err := e.store.Save(p.WithTasks(tasks)); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %d: %s = %q\n", n, args[1], args[2])
	return nil
}
