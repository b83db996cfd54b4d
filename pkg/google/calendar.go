package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/takt/pkg/auth"
	"github.com/harrisonrobin/takt/pkg/colors"
	"github.com/harrisonrobin/takt/pkg/index"
	"github.com/harrisonrobin/takt/pkg/logging"
	"github.com/harrisonrobin/takt/pkg/model"
)

// CalendarClient pushes plan tasks into one Google Calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	log        logging.Logger
}

// Scopes are the OAuth scopes takt asks for.
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// NewClient authenticates and resolves calendarName to its id.
func NewClient(ctx context.Context, calendarName string, idx *index.EventIndex, log logging.Logger) (*CalendarClient, error) {
	if log == nil {
		log = logging.NopLogger{}
	}
	client, err := auth.GetClient(ctx, Scopes, log)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	calendarID, err := FindCalendarID(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx, log), nil
}

// FindCalendarID returns the id of the calendar whose summary is name.
func FindCalendarID(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range calendarList.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", name)
}

// NewCalendarClient wraps an existing service. idx may be nil.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, log logging.Logger) *CalendarClient {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, log: log}
}

// SyncTask creates the task's event or patches the existing one.
func (c *CalendarClient) SyncTask(ctx context.Context, planID string, task model.Task, color colors.Color) (*calendar.Event, error) {
	target, err := ConvertTask(task, color, planID)
	if err != nil {
		return nil, err
	}

	var existing *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(planID, task.ID); eventID != "" {
			existing, err = c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil || existing.Status == "cancelled" {
				c.log.Debugf("indexed event %s for task %s unusable, searching", eventID, task.ID)
				existing = nil
			}
		}
	}
	if existing == nil {
		existing, err = c.FindEvent(ctx, planID, task.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existing != nil {
		patch := EventNeedsUpdate(existing, target)
		if patch == nil {
			c.remember(planID, task.ID, existing.Id)
			return existing, nil
		}
		updated, err := c.PatchEvent(ctx, existing.Id, patch)
		if err != nil {
			return nil, err
		}
		c.remember(planID, task.ID, updated.Id)
		return updated, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, target).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event for task %s: %w", task.ID, err)
	}
	c.remember(planID, task.ID, created.Id)
	return created, nil
}

func (c *CalendarClient) remember(planID, taskID, eventID string) {
	if c.index != nil {
		c.index.Set(planID, taskID, eventID)
	}
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// FindEvent looks the task's event up by its private extended properties.
func (c *CalendarClient) FindEvent(ctx context.Context, planID, taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(
			fmt.Sprintf("%s=%s", PlanProperty, planID),
			fmt.Sprintf("%s=%s", TaskProperty, taskID),
		).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

// PushResult counts the outcome of Push.
type PushResult struct {
	Synced  int
	Skipped int
	Failed  int
}

// Push syncs every task of a plan. Tasks whose dates do not parse are skipped;
// API failures are logged and counted, and the first one is returned after
// the remaining tasks have been tried.
func (c *CalendarClient) Push(ctx context.Context, planID string, tasks []model.Task, assignment *colors.Assignment) (PushResult, error) {
	var (
		res      PushResult
		firstErr error
	)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := ConvertTask(task, colors.Default, planID); err != nil {
			c.log.Warnf("skipping task %q: %v", task.ID, err)
			res.Skipped++
			continue
		}
		if _, err := c.SyncTask(ctx, planID, task, assignment.Lookup(task.Trade)); err != nil {
			c.log.Errorf("sync task %q: %v", task.ID, err)
			res.Failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		res.Synced++
	}
	return res, firstErr
}
