package google

import (
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/takt/pkg/colors"
	"github.com/harrisonrobin/takt/pkg/model"
	"github.com/harrisonrobin/takt/pkg/util"
)

// Private extended properties stamped on every pushed event.
const (
	PlanProperty = "takt_plan"
	TaskProperty = "takt_task"
)

// ConvertTask builds an all-day event spanning the task's dates. The event end
// is exclusive, so it is the day after EndDate. An inverted range collapses to
// its start day.
func ConvertTask(task model.Task, color colors.Color, planID string) (*calendar.Event, error) {
	start, err := util.ParseDate(task.StartDate)
	if err != nil {
		return nil, fmt.Errorf("task %q start: %w", task.ID, err)
	}
	end, err := util.ParseDate(task.EndDate)
	if err != nil {
		return nil, fmt.Errorf("task %q end: %w", task.ID, err)
	}
	if end.Before(start) {
		end = start
	}

	summary := task.Name
	if summary == "" {
		summary = "Task " + task.ID
	}

	var desc strings.Builder
	if task.Location != "" {
		desc.WriteString(fmt.Sprintf("Location: %s\n", task.Location))
	}
	if task.Trade != "" {
		desc.WriteString(fmt.Sprintf("Trade: %s\n", task.Trade))
	}
	if deps := task.DependencyIDs(); len(deps) > 0 {
		desc.WriteString(fmt.Sprintf("Depends on: %s\n", strings.Join(deps, ", ")))
	}
	desc.WriteString(fmt.Sprintf("ID: %s\n", task.ID))

	return &calendar.Event{
		Summary:     summary,
		Description: desc.String(),
		ColorId:     color.CalendarColorID,
		Start:       &calendar.EventDateTime{Date: util.FormatDate(start)},
		End:         &calendar.EventDateTime{Date: util.FormatDate(end.AddDate(0, 0, 1))},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				PlanProperty: planID,
				TaskProperty: task.ID,
			},
		},
	}, nil
}

func eventDate(dt *calendar.EventDateTime) string {
	if dt == nil {
		return ""
	}
	if dt.Date != "" {
		return dt.Date
	}
	return util.DatePortion(dt.DateTime)
}

// EventNeedsUpdate returns a patch carrying the fields of target that differ
// from existing, or nil when they match.
func EventNeedsUpdate(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}
	if eventDate(existing.Start) != eventDate(target.Start) || eventDate(existing.End) != eventDate(target.End) {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch
	}
	return nil
}
