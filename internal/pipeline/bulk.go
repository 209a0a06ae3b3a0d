package pipeline

import (
	"errors"
	"fmt"

	"github.com/sq-invest/crm-service/internal/domain"
)

// ErrUnknownAction is returned for an unsupported bulk action token.
var ErrUnknownAction = errors.New("unknown bulk action")

// BulkAction is a transformation applied to every selected contact.
type BulkAction string

const (
	BulkStar            BulkAction = "star"
	BulkHighPriority    BulkAction = "high-priority"
	BulkAssignTruckers  BulkAction = "assign-truckers"
	BulkStartAutomation BulkAction = "start-automation"
	BulkDelete          BulkAction = "delete"
)

// ReassignAgent is the agent bulk reassignment hands contacts to.
const ReassignAgent = "Truckers"

// ParseBulkAction validates an action token.
func ParseBulkAction(raw string) (BulkAction, error) {
	switch BulkAction(raw) {
	case BulkStar, BulkHighPriority, BulkAssignTruckers, BulkStartAutomation, BulkDelete:
		return BulkAction(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// Selection is a set of contact ids.
type Selection map[string]struct{}

// Select builds a selection from ids.
func Select(ids ...string) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		sel[id] = struct{}{}
	}
	return sel
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ApplyBulk applies action to every contact in selection. Delete keeps the
// remaining contacts in their original relative order.
func ApplyBulk(contacts []domain.Contact, selection Selection, action BulkAction) ([]domain.Contact, error) {
	var mutate func(*domain.Contact)
	switch action {
	case BulkStar:
		mutate = func(c *domain.Contact) { c.IsStarred = true }
	case BulkHighPriority:
		mutate = func(c *domain.Contact) { c.Priority = domain.PriorityHigh }
	case BulkAssignTruckers:
		mutate = func(c *domain.Contact) { c.AssignedAgent = ReassignAgent }
	case BulkStartAutomation:
		mutate = func(c *domain.Contact) { c.AutomationStatus = domain.AutomationActive }
	case BulkDelete:
		out := make([]domain.Contact, 0, len(contacts))
		for _, c := range contacts {
			if !selection.Has(c.ID) {
				out = append(out, c.Clone())
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	out := cloneAll(contacts)
	for i := range out {
		if selection.Has(out[i].ID) {
			mutate(&out[i])
		}
	}
	return out, nil
}
