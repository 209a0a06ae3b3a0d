package domain

import "time"

// ActivityType categorises entries of the recent-activity feed.
type ActivityType string

const (
	ActivitySession   ActivityType = "session"
	ActivityLead      ActivityType = "lead"
	ActivityPipeline  ActivityType = "pipeline"
	ActivityDirectory ActivityType = "directory"
)

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ActorID     string       `json:"actorId,omitempty"`
	ContactID   string       `json:"contactId,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
