package types

import (
	"strings"
	"time"
)

// Event types accepted by the calendar.
const (
	EventTypeWork     = "Work"
	EventTypePersonal = "Personal"
)

// Event is a calendar record owned by a user.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEventType maps free-form input to Work or Personal.
func NormalizeEventType(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), EventTypeWork) {
		return EventTypeWork
	}
	return EventTypePersonal
}
