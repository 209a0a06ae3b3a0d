package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/sq-invest/crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted        EventType = "session_started"
	EventSessionEnded          EventType = "session_ended"
	EventContactReclassified   EventType = "contact_reclassified"
	EventContactsBulkUpdated   EventType = "contacts_bulk_updated"
	EventContactAdded          EventType = "contact_added"
	EventDirectoryEntryUpdated EventType = "directory_entry_updated"
	EventDirectoryEntryRemoved EventType = "directory_entry_removed"
)

// Actor identifies who triggered an event.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActorOf builds event actor metadata from a signed-in actor.
func ActorOf(a domain.Actor) Actor {
	return Actor{ID: a.ID, Name: a.Name}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, sessionID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ContactReclassifiedPayload payload.
type ContactReclassifiedPayload struct {
	ContactID   string               `json:"contact_id"`
	ContactName string               `json:"contact_name"`
	OldStatus   domain.ContactStatus `json:"old_status"`
	NewStatus   domain.ContactStatus `json:"new_status"`
	Destination string               `json:"destination"`
}

// ContactsBulkUpdatedPayload payload.
type ContactsBulkUpdatedPayload struct {
	Action   string   `json:"action"`
	Selected []string `json:"selected"`
	Affected int      `json:"affected"`
}

// ContactAddedPayload payload.
type ContactAddedPayload struct {
	ContactID   string               `json:"contact_id"`
	ContactName string               `json:"contact_name"`
	Status      domain.ContactStatus `json:"status"`
	Template    string               `json:"template,omitempty"`
}

// DirectoryEntryPayload payload for roster edits and removals.
type DirectoryEntryPayload struct {
	EntryID  string `json:"entry_id"`
	Username string `json:"username"`
	SelfEdit bool   `json:"self_edit,omitempty"`
}

// Reasons a session ends.
const (
	SessionEndLogout  = "logout"
	SessionEndExpired = "expired"
)

// SessionEndedPayload payload.
type SessionEndedPayload struct {
	Reason string `json:"reason"`
}
