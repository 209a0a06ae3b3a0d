package dto

import (
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/pipeline"
)

// MoveRequest payload for POST /pipeline/move. An empty destination is a cancelled drop.
type MoveRequest struct {
	ContactID   string `json:"contactId" validate:"required"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// MoveResponse reports the outcome of a drag.
type MoveResponse struct {
	Contact    domain.Contact       `json:"contact"`
	FromStatus domain.ContactStatus `json:"fromStatus"`
	ToStatus   domain.ContactStatus `json:"toStatus"`
	Changed    bool                 `json:"changed"`
}

// BulkRequest payload for POST /pipeline/bulk.
type BulkRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,dive,required"`
	Action string   `json:"action" validate:"required"`
}

// ColumnResponse is one bucket of the board.
type ColumnResponse struct {
	ID       pipeline.Bucket  `json:"id"`
	Title    string           `json:"title"`
	Contacts []domain.Contact `json:"contacts"`
}

// BoardResponse is the filtered board.
type BoardResponse struct {
	Columns         []ColumnResponse `json:"columns"`
	InvestmentTypes []string         `json:"investmentTypes"`
}

// ContactRequest payload for adding or editing a contact.
type ContactRequest struct {
	Template       string   `json:"template"`
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone"`
	Company        string   `json:"company"`
	Status         string   `json:"status" validate:"omitempty,oneof='Fresh Leads' Opened 'Call Backs' KOL Legal 'Needs TO' Deals Clients Dead"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	InvestmentType string   `json:"investmentType"`
	DealSize       string   `json:"dealSize"`
	LeadScore      int      `json:"leadScore" validate:"gte=0,lte=100"`
	Source         string   `json:"source"`
	Notes          string   `json:"notes"`
	AssignedAgent  string   `json:"assignedAgent"`
	Tags           []string `json:"tags"`
}

// Input converts the request into add-contact input.
func (r ContactRequest) Input() pipeline.ContactInput {
	return pipeline.ContactInput{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Company:        r.Company,
		Status:         domain.ContactStatus(r.Status),
		Priority:       domain.Priority(r.Priority),
		InvestmentType: r.InvestmentType,
		DealSize:       r.DealSize,
		LeadScore:      r.LeadScore,
		Source:         r.Source,
		Notes:          r.Notes,
		AssignedAgent:  r.AssignedAgent,
	}
}

// Apply overlays the request onto an existing contact. Empty fields keep their value.
func (r ContactRequest) Apply(c domain.Contact) domain.Contact {
	out := c.Clone()
	out.Name = r.Name
	out.Email = r.Email
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.Phone, r.Phone)
	set(&out.Company, r.Company)
	set(&out.InvestmentType, r.InvestmentType)
	set(&out.DealSize, r.DealSize)
	set(&out.Source, r.Source)
	set(&out.Notes, r.Notes)
	set(&out.AssignedAgent, r.AssignedAgent)
	if r.Status != "" {
		out.Status = domain.ContactStatus(r.Status)
	}
	if r.Priority != "" {
		out.Priority = domain.Priority(r.Priority)
	}
	if r.LeadScore != 0 {
		out.LeadScore = r.LeadScore
	}
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	return out
}
