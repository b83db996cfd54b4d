package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harrisonrobin/takt/pkg/model"
)

// Row is one worksheet row keyed by header text. Missing cells are "".
type Row map[string]string

// Candidate column names per task field, highest priority first.
var (
	idColumns           = []string{"ID", "Task ID"}
	nameColumns         = []string{"Name", "Task", "Task Name"}
	startColumns        = []string{"Start", "Start Date"}
	endColumns          = []string{"Finish", "End Date"}
	locationColumns     = []string{"Location", "Zone"}
	tradeColumns        = []string{"Trade", "Resource Names"}
	dependenciesColumns = []string{"Predecessors"}
)

// first returns the first non-empty value among columns.
func (r Row) first(columns []string) string {
	for _, c := range columns {
		if v := r[c]; v != "" {
			return v
		}
	}
	return ""
}

// NormalizeRows maps rows to tasks through the alias table. A row without an
// id gets its 1-based position.
func NormalizeRows(rows []Row) []model.Task {
	tasks := make([]model.Task, 0, len(rows))
	for i, row := range rows {
		task := model.Task{
			ID:           row.first(idColumns),
			Name:         row.first(nameColumns),
			StartDate:    row.first(startColumns),
			EndDate:      row.first(endColumns),
			Location:     row.first(locationColumns),
			Trade:        row.first(tradeColumns),
			Dependencies: row.first(dependenciesColumns),
		}
		if task.ID == "" {
			task.ID = strconv.Itoa(i + 1)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// ReadRows reads the first worksheet of an xlsx workbook. The first row is the
// header; blank rows are skipped. Built-in short date cells render as
// YYYY-MM-DD.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r, excelize.Options{ShortDatePattern: "yyyy-mm-dd"})
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	header := grid[0]
	var rows []Row
	for _, cells := range grid[1:] {
		if blank(cells) {
			continue
		}
		row := make(Row, len(header))
		for col, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			if col < len(cells) {
				row[name] = cells[col]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
