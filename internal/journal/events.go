package journal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/easeaico/shadow/internal/types"
)

// DefaultUpcomingLimit caps the upcoming events listing.
const DefaultUpcomingLimit = 20

// EventTimeLayout is the "HH:MM AM/PM" form stored in events.time.
const EventTimeLayout = "03:04 PM"

var dottedClock = regexp.MustCompile(`(\d{1,2})\.(\d{2})`)

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
	"2006-01-02T15:04",
}

// EventStore persists calendar events.
type EventStore interface {
	Create(ctx context.Context, event *types.Event) error
	Upcoming(ctx context.Context, userID, fromDate string, limit int) ([]types.Event, error)
	Delete(ctx context.Context, userID, id string) error
}

// Events manages calendar events created by hand.
type Events struct {
	store   EventStore
	nowFunc func() time.Time
}

// NewEvents creates the event service.
func NewEvents(store EventStore) *Events {
	return &Events{store: store, nowFunc: time.Now}
}

// WithClock overrides the clock that defines "today".
func (e *Events) WithClock(now func() time.Time) *Events {
	e.nowFunc = now
	return e
}

// CreateEvent validates and stores an event. date must be YYYY-MM-DD.
func (e *Events) CreateEvent(ctx context.Context, userID string, event types.Event) (*types.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	event.Date = strings.TrimSpace(event.Date)
	if strings.TrimSpace(event.Time) == "" {
		event.Date, event.Time = splitDateTime(event.Date)
	}
	if _, err := time.Parse(time.DateOnly, event.Date); err != nil {
		return nil, fmt.Errorf("event date must be YYYY-MM-DD: %w", err)
	}
	event.ID = ""
	event.UserID = userID
	event.Time = strings.TrimSpace(event.Time)
	event.Type = types.NormalizeEventType(event.Type)
	event.CreatedAt = e.nowFunc().UTC()
	if err := e.store.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	return &event, nil
}

// UpcomingEvents lists events from today (UTC) on, soonest first.
func (e *Events) UpcomingEvents(ctx context.Context, userID string) ([]types.Event, error) {
	return e.store.Upcoming(ctx, userID, types.DateKey(e.nowFunc()), DefaultUpcomingLimit)
}

// DeleteEvent removes an event.
func (e *Events) DeleteEvent(ctx context.Context, userID, id string) error {
	return e.store.Delete(ctx, userID, id)
}

// splitDateTime separates a combined value such as "2026-01-20 11.30" into
// a date and a formatted time. Values it cannot parse are returned unchanged.
func splitDateTime(value string) (string, string) {
	clean := dottedClock.ReplaceAllString(value, "$1:$2")
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(time.DateOnly), t.Format(EventTimeLayout)
		}
	}
	return value, ""
}
