package pipeline

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sq-invest/crm-service/internal/domain"
)

// Defaults for newly added contacts.
const (
	DefaultInvestmentType = "Residential Property Investment"
	DefaultDealSize       = "£150K - £300K"
	DefaultLeadScore      = 50
	DefaultSource         = "Website"
	DefaultAgent          = "Truckers"
)

// ErrMissingIdentity is returned when a new contact lacks a name or email.
var ErrMissingIdentity = errors.New("name and email are required")

// ContactInput carries the add-contact form. Zero values take defaults.
type ContactInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	Status         domain.ContactStatus
	Priority       domain.Priority
	InvestmentType string
	DealSize       string
	LeadScore      int
	Source         string
	Notes          string
	AssignedAgent  string
}

// NewContact builds a contact from input with defaulted fields.
func NewContact(input ContactInput, now time.Time) (domain.Contact, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return domain.Contact{}, ErrMissingIdentity
	}

	c := domain.Contact{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		Phone:            input.Phone,
		Company:          input.Company,
		Status:           input.Status,
		Priority:         input.Priority,
		InvestmentType:   input.InvestmentType,
		DealSize:         input.DealSize,
		LeadScore:        input.LeadScore,
		LastContact:      "Just added",
		Source:           input.Source,
		Notes:            input.Notes,
		AssignedAgent:    input.AssignedAgent,
		DateAdded:        now.Format("2006-01-02"),
		AutomationStatus: domain.AutomationActive,
		Tags:             []string{},
	}
	if c.Status == "" {
		c.Status = domain.StatusFreshLeads
	}
	if c.Priority == "" {
		c.Priority = domain.PriorityMedium
	}
	if c.InvestmentType == "" {
		c.InvestmentType = DefaultInvestmentType
	}
	if c.DealSize == "" {
		c.DealSize = DefaultDealSize
	}
	if c.LeadScore == 0 {
		c.LeadScore = DefaultLeadScore
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.AssignedAgent == "" {
		c.AssignedAgent = DefaultAgent
	}
	return c, nil
}

// Template pre-fills the add-contact form for a common enquiry type.
type Template struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	InvestmentType string               `json:"investmentType"`
	DealSize       string               `json:"dealSize"`
	Priority       domain.Priority      `json:"priority"`
	Status         domain.ContactStatus `json:"status"`
	Source         string               `json:"source"`
}

// Apply overlays the template onto input. Lead score follows priority.
func (t Template) Apply(input ContactInput) ContactInput {
	input.InvestmentType = t.InvestmentType
	input.DealSize = t.DealSize
	input.Priority = t.Priority
	input.Status = t.Status
	input.Source = t.Source
	switch t.Priority {
	case domain.PriorityHigh:
		input.LeadScore = 80
	case domain.PriorityMedium:
		input.LeadScore = 60
	default:
		input.LeadScore = 40
	}
	return input
}

// Templates returns the built-in contact templates.
func Templates() []Template {
	return []Template{
		{ID: "residential", Name: "Residential Investor", InvestmentType: "Residential Property Investment", DealSize: "£150K - £300K", Priority: domain.PriorityMedium, Status: domain.StatusFreshLeads, Source: "Website"},
		{ID: "off-plan", Name: "Off-Plan Investor", InvestmentType: "Off-Plan Property Investment", DealSize: "£300K - £500K", Priority: domain.PriorityHigh, Status: domain.StatusFreshLeads, Source: "Referral"},
		{ID: "commercial", Name: "Commercial Investor", InvestmentType: "Commercial Property Investment", DealSize: "£500K+", Priority: domain.PriorityHigh, Status: domain.StatusFreshLeads, Source: "LinkedIn"},
		{ID: "student", Name: "Student Property Investor", InvestmentType: "Student Property Investment", DealSize: "£100K - £200K", Priority: domain.PriorityMedium, Status: domain.StatusFreshLeads, Source: "Website"},
		{ID: "first-time", Name: "First-Time Investor", InvestmentType: "Residential Property Investment", DealSize: "£50K - £150K", Priority: domain.PriorityLow, Status: domain.StatusFreshLeads, Source: "Social Media"},
		{ID: "assisted-living", Name: "Assisted Living Investor", InvestmentType: "Assisted Living Property Investment", DealSize: "£200K - £400K", Priority: domain.PriorityMedium, Status: domain.StatusFreshLeads, Source: "Event"},
	}
}

// FindTemplate returns the template with id.
func FindTemplate(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
