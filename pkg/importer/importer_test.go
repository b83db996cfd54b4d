package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harrisonrobin/takt/pkg/model"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		want Format
	}{
		{"schedule.xlsx", FormatSpreadsheet},
		{"export.xml", FormatProjectXML},
		{"dir.xml/plan.xlsx", FormatSpreadsheet},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.name)
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, got, c.name)
	}

	for _, name := range []string{"schedule.csv", "schedule.xls", "schedule.XLSX", "schedule", ""} {
		_, err := DetectFormat(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestNormalizeRowsAliases(t *testing.T) {
	rows := []Row{
		{"ID": "5", "Name": "Pour slab", "Start": "2024-01-01", "Finish": "2024-01-01"},
		{"Task ID": "T-2", "Task": "Frame", "Start Date": "2024-01-02", "End Date": "2024-01-05", "Zone": "L2", "Resource Names": "Carpenter"},
		{"Task Name": "Paint", "Location": "L3", "Trade": "Painter", "Zone": "ignored", "Predecessors": "5, T-2"},
		{"ID": "", "Task ID": "", "Name": "", "Task": "", "Task Name": "Fallback id"},
	}

	tasks := NormalizeRows(rows)
	require.Len(t, tasks, 4)

	assert.Equal(t, model.Task{ID: "5", Name: "Pour slab", StartDate: "2024-01-01", EndDate: "2024-01-01"}, tasks[0])
	assert.Equal(t, model.Task{ID: "T-2", Name: "Frame", StartDate: "2024-01-02", EndDate: "2024-01-05", Location: "L2", Trade: "Carpenter"}, tasks[1])
	assert.Equal(t, model.Task{ID: "3", Name: "Paint", Location: "L3", Trade: "Painter", Dependencies: "5, T-2"}, tasks[2])
	assert.Equal(t, "4", tasks[3].ID)
	assert.Equal(t, "Fallback id", tasks[3].Name)
}

func TestNormalizeRowsPriority(t *testing.T) {
	tasks := NormalizeRows([]Row{{
		"ID": "1", "Task ID": "99",
		"Name": "first", "Task": "second", "Task Name": "third",
		"Start": "2024-02-01", "Start Date": "2024-03-01",
		"Finish": "2024-02-02", "End Date": "2024-03-02",
		"Trade": "Electrician", "Resource Names": "Bob",
	}})
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "first", tasks[0].Name)
	assert.Equal(t, "2024-02-01", tasks[0].StartDate)
	assert.Equal(t, "2024-02-02", tasks[0].EndDate)
	assert.Equal(t, "Electrician", tasks[0].Trade)
}

func TestNormalizeRowsFillsEveryField(t *testing.T) {
	tasks := NormalizeRows([]Row{{
		"Task ID": "A7", "Task Name": "Hang doors", "Start Date": "2024-04-01",
		"End Date": "2024-04-03", "Zone": "L4", "Resource Names": "Joiner",
		"Predecessors": "A5",
	}})
	require.Len(t, tasks, 1)
	assert.Equal(t, model.Task{
		ID: "A7", Name: "Hang doors", StartDate: "2024-04-01", EndDate: "2024-04-03",
		Location: "L4", Trade: "Joiner", Dependencies: "A5",
	}, tasks[0])
	for _, col := range model.Columns {
		v, err := tasks[0].Get(col)
		require.NoError(t, err)
		assert.NotEmpty(t, v, col)
	}
}

func TestImportSpreadsheet(t *testing.T) {
	buf := workbook(t,
		[]any{"ID", "Name", "Start", "Finish", "Trade"},
		[]any{"5", "Pour slab", "2024-01-01", "2024-01-01", "Concrete"},
		[]any{},
		[]any{"", "Strip forms", "2024-01-03"},
	)

	tasks, err := Import("schedule.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, model.Task{ID: "5", Name: "Pour slab", StartDate: "2024-01-01", EndDate: "2024-01-01", Trade: "Concrete"}, tasks[0])
	// ragged row: missing cells are empty strings, id falls back to position
	assert.Equal(t, model.Task{ID: "2", Name: "Strip forms", StartDate: "2024-01-03"}, tasks[1])
}

func TestImportSpreadsheetEmptySheet(t *testing.T) {
	tasks, err := Import("empty.xlsx", workbook(t))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestImportSpreadsheetCorrupt(t *testing.T) {
	_, err := Import("broken.xlsx", strings.NewReader("not a zip archive"))
	assert.ErrorIs(t, err, ErrParseFailure)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FormatSpreadsheet, perr.Format)
	assert.Equal(t, "Failed to parse file. Check format.", Message(err))
}

func TestImportUnsupportedReadsNothing(t *testing.T) {
	r := strings.NewReader("ID,Name\n1,x\n")
	tasks, err := Import("schedule.csv", r)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, tasks)
	assert.Equal(t, r.Size(), int64(r.Len()), "reader must not be consumed")
	assert.Equal(t, "Please upload a .xlsx or .xml file.", Message(err))
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleProject), 0o644))

	tasks, err := ImportFile(path)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	_, err = ImportFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ImportFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
