package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField    = errors.New("unknown task field")
	ErrIndexOutOfRange = errors.New("task index out of range")
)

// Task is a normalized schedule entry. Dates are YYYY-MM-DD strings and are
// not validated; Dependencies is a comma-joined list of task ids.
type Task struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Location     string `json:"location"`
	Trade        string `json:"trade"`
	Dependencies string `json:"dependencies"`
}

// Columns is the display and export order of task fields.
var Columns = []string{
	"id",
	"name",
	"startDate",
	"endDate",
	"location",
	"trade",
	"dependencies",
}

func (t *Task) field(name string) (*string, error) {
	switch name {
	case "id":
		return &t.ID, nil
	case "name":
		return &t.Name, nil
	case "startDate":
		return &t.StartDate, nil
	case "endDate":
		return &t.EndDate, nil
	case "location":
		return &t.Location, nil
	case "trade":
		return &t.Trade, nil
	case "dependencies":
		return &t.Dependencies, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of the named column.
func (t Task) Get(name string) (string, error) {
	p, err := t.field(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Values returns the task's fields in Columns order.
func (t Task) Values() []string {
	return []string{t.ID, t.Name, t.StartDate, t.EndDate, t.Location, t.Trade, t.Dependencies}
}

// With returns a copy of t with the named column set to value.
func (t Task) With(name, value string) (Task, error) {
	p, err := t.field(name)
	if err != nil {
		return Task{}, err
	}
	*p = value
	return t, nil
}

// DependencyIDs splits Dependencies into trimmed, non-empty ids.
func (t Task) DependencyIDs() []string {
	var ids []string
	for _, id := range strings.Split(t.Dependencies, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Replace returns a new list with the record at i replaced by t. The input
// slice is left untouched.
func Replace(tasks []Task, i int, t Task) ([]Task, error) {
	if i < 0 || i >= len(tasks) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(tasks))
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[i] = t
	return out, nil
}

// SetField is Replace with a single field edit.
func SetField(tasks []Task, i int, name, value string) ([]Task, error) {
	if i < 0 || i >= len(tasks) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(tasks))
	}
	updated, err := tasks[i].With(name, value)
	if err != nil {
		return nil, err
	}
	return Replace(tasks, i, updated)
}

// DuplicateIDs returns ids used by more than one task, in first-seen order.
func DuplicateIDs(tasks []Task) []string {
	seen := make(map[string]int, len(tasks))
	var dups []string
	for _, t := range tasks {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}

// SampleTasks is the plan shown before anything is imported.
func SampleTasks() []Task {
	return []Task{
		{ID: "1", Name: "Task 1", StartDate: "2024-08-01", EndDate: "2024-08-03", Trade: "Carpenter"},
		{ID: "2", Name: "Task 2", StartDate: "2024-08-04", EndDate: "2024-08-07", Trade: "Electrician"},
	}
}
