package domain

import (
	"encoding/json"
	"fmt"
)

// ContactStatus is the pipeline stage tag of a contact.
type ContactStatus string

const (
	StatusFreshLeads ContactStatus = "Fresh Leads"
	StatusOpened     ContactStatus = "Opened"
	StatusCallBacks  ContactStatus = "Call Backs"
	StatusKOL        ContactStatus = "KOL"
	StatusLegal      ContactStatus = "Legal"
	StatusNeedsTO    ContactStatus = "Needs TO"
	StatusDeals      ContactStatus = "Deals"
	StatusClients    ContactStatus = "Clients"
	StatusDead       ContactStatus = "Dead"
)

// ContactStatuses returns the status vocabulary in pipeline order.
func ContactStatuses() []ContactStatus {
	return []ContactStatus{
		StatusFreshLeads,
		StatusOpened,
		StatusCallBacks,
		StatusKOL,
		StatusLegal,
		StatusNeedsTO,
		StatusDeals,
		StatusClients,
		StatusDead,
	}
}

// ParseContactStatus validates a raw status value.
func ParseContactStatus(raw string) (ContactStatus, error) {
	for _, status := range ContactStatuses() {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown contact status %q", raw)
}

// Priority ranks contacts for follow-up.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a raw priority value.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw), nil
	}
	return "", fmt.Errorf("unknown priority %q", raw)
}

// AutomationStatus reports the state of a contact's nurture automation.
type AutomationStatus string

const (
	AutomationActive    AutomationStatus = "active"
	AutomationPaused    AutomationStatus = "paused"
	AutomationCompleted AutomationStatus = "completed"
)

// Contact is a lead, prospect or client record on the pipeline board.
type Contact struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Company          string           `json:"company"`
	Status           ContactStatus    `json:"status"`
	Priority         Priority         `json:"priority"`
	InvestmentType   string           `json:"investmentType"`
	DealSize         string           `json:"dealSize"`
	LeadScore        int              `json:"leadScore"`
	LastContact      string           `json:"lastContact"`
	Source           string           `json:"source"`
	Notes            string           `json:"notes"`
	AssignedAgent    string           `json:"assignedAgent"`
	DateAdded        string           `json:"dateAdded"`
	Activities       int              `json:"activities"`
	AutomationStatus AutomationStatus `json:"automationStatus,omitempty"`
	IsStarred        bool             `json:"isStarred"`
	Tags             []string         `json:"tags"`

	// Opaque attachments, carried through untouched.
	Documents            json.RawMessage `json:"documents,omitempty"`
	Meetings             json.RawMessage `json:"meetings,omitempty"`
	CommunicationHistory json.RawMessage `json:"communicationHistory,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Contact) Clone() Contact {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	out.Documents = cloneRaw(c.Documents)
	out.Meetings = cloneRaw(c.Meetings)
	out.CommunicationHistory = cloneRaw(c.CommunicationHistory)
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
