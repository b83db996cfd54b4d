// Package layout computes the day grid of a Gantt-style timeline.
package layout

import (
	"time"

	"github.com/harrisonrobin/takt/pkg/colors"
	"github.com/harrisonrobin/takt/pkg/model"
	"github.com/harrisonrobin/takt/pkg/util"
)

// Bar is one task placed on the day grid.
type Bar struct {
	Task       model.Task
	OffsetDays int
	SpanDays   int
	Color      colors.Color
	// Degenerate is set when the start or end date did not parse. Such bars
	// sit at offset 0 with a one-day span.
	Degenerate bool
}

// Timeline is the layout of a task list, in input order.
type Timeline struct {
	MinDate       time.Time
	MaxDate       time.Time
	HasMinDate    bool // some start date parsed
	HasMaxDate    bool // some end date parsed
	TotalSpanDays int
	Bars          []Bar
	Legend        []colors.Entry
}

// Compute lays out tasks. It returns false for an empty list.
//
// Dates that do not parse are left out of the min/max scan; inverted ranges
// are drawn one day wide. Neither is reported as an error.
func Compute(tasks []model.Task, palette []colors.Color) (*Timeline, bool) {
	if len(tasks) == 0 {
		return nil, false
	}

	starts := make([]time.Time, len(tasks))
	ends := make([]time.Time, len(tasks))
	valid := make([]bool, len(tasks))

	var (
		minDate, maxDate time.Time
		haveMin, haveMax bool
	)
	for i, t := range tasks {
		start, serr := util.ParseDate(t.StartDate)
		end, eerr := util.ParseDate(t.EndDate)
		if serr == nil && (!haveMin || start.Before(minDate)) {
			minDate, haveMin = start, true
		}
		if eerr == nil && (!haveMax || end.After(maxDate)) {
			maxDate, haveMax = end, true
		}
		starts[i], ends[i], valid[i] = start, end, serr == nil && eerr == nil
	}

	tl := &Timeline{
		MinDate:       minDate,
		MaxDate:       maxDate,
		HasMinDate:    haveMin,
		HasMaxDate:    haveMax,
		TotalSpanDays: 1,
		Bars:          make([]Bar, len(tasks)),
	}
	if haveMin && haveMax {
		tl.TotalSpanDays = max(1, util.DaysBetween(minDate, maxDate))
	}

	assignment := colors.Assign(tasks, palette)
	tl.Legend = assignment.Entries()

	for i, t := range tasks {
		bar := Bar{Task: t, SpanDays: 1, Color: assignment.Lookup(t.Trade)}
		if valid[i] {
			bar.OffsetDays = util.DaysBetween(minDate, starts[i])
			bar.SpanDays = max(1, util.DaysBetween(starts[i], ends[i])+1)
		} else {
			bar.Degenerate = true
		}
		tl.Bars[i] = bar
	}
	return tl, true
}

// Days returns the first n header dates starting at MinDate, at most
// TotalSpanDays+1 of them. It is empty when no start date parsed.
func (tl *Timeline) Days(n int) []time.Time {
	if !tl.HasMinDate {
		return nil
	}
	n = max(0, min(n, tl.TotalSpanDays+1))
	days := make([]time.Time, n)
	for i := range days {
		days[i] = tl.MinDate.AddDate(0, 0, i)
	}
	return days
}
