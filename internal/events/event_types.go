package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated EventType = "staff_created"
	EventStaffUpdated EventType = "staff_updated"
	EventStaffDeleted EventType = "staff_deleted"
)

// Event represents a staff lifecycle event emitted by the service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   string      `json:"staff_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	Email    string `json:"email"`
	Position string `json:"position"`
}

// StaffUpdatedPayload payload.
type StaffUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct{}
