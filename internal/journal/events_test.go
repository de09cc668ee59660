package journal

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/shadow/internal/types"
)

type fakeEventStore struct {
	events   []types.Event
	fromDate string
}

func (f *fakeEventStore) Create(ctx context.Context, event *types.Event) error {
	event.ID = "ev-" + event.Title
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventStore) Upcoming(ctx context.Context, userID, fromDate string, limit int) ([]types.Event, error) {
	f.fromDate = fromDate
	var out []types.Event
	for _, e := range f.events {
		if e.UserID == userID && e.Date >= fromDate {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeEventStore) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func TestCreateEventValidatesDate(t *testing.T) {
	events := NewEvents(&fakeEventStore{})
	_, err := events.CreateEvent(context.Background(), "alice", types.Event{Title: "Dentist", Date: "next friday"})
	require.Error(t, err)

	_, err = events.CreateEvent(context.Background(), "alice", types.Event{Title: " ", Date: "2026-01-20"})
	require.Error(t, err)
}

func TestCreateEventNormalizes(t *testing.T) {
	store := &fakeEventStore{}
	events := NewEvents(store).WithClock(func() time.Time { return testNow })

	ev, err := events.CreateEvent(context.Background(), "alice", types.Event{Title: "Sync", Date: "2026-01-20 11.30", Type: "work"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20", ev.Date)
	assert.Equal(t, "11:30 AM", ev.Time)
	assert.Equal(t, types.EventTypeWork, ev.Type)
	assert.Equal(t, "alice", ev.UserID)

	ev, err = events.CreateEvent(context.Background(), "alice", types.Event{Title: "Party", Date: "2026-01-24", Time: "08:00 PM"})
	require.NoError(t, err)
	assert.Equal(t, types.EventTypePersonal, ev.Type)
	assert.Equal(t, "08:00 PM", ev.Time)
}

func TestUpcomingEventsStartsToday(t *testing.T) {
	store := &fakeEventStore{events: []types.Event{
		{UserID: "alice", Title: "old", Date: "2026-01-18"},
		{UserID: "alice", Title: "today", Date: "2026-01-19"},
		{UserID: "bob", Title: "other", Date: "2026-01-25"},
	}}
	events := NewEvents(store).WithClock(func() time.Time { return testNow })

	got, err := events.UpcomingEvents(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-19", store.fromDate)
	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].Title)
}
