package pipeline

import (
	"strings"

	"github.com/sq-invest/crm-service/internal/domain"
)

const (
	AllPriorities      = "All Priority"
	AllInvestmentTypes = "All Investment Types"
)

// Criteria narrows the visible contacts. Empty fields and the All* sentinels
// disable their filter.
type Criteria struct {
	Search         string
	Priority       string
	InvestmentType string
}

// Predicate reports whether a contact stays visible.
type Predicate func(domain.Contact) bool

// MatchSearch is a case-insensitive substring match on name, email and company.
func MatchSearch(term string) Predicate {
	needle := strings.ToLower(term)
	return func(c domain.Contact) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.Company), needle)
	}
}

// MatchPriority keeps contacts of the given priority.
func MatchPriority(priority string) Predicate {
	return func(c domain.Contact) bool {
		if priority == "" || priority == AllPriorities {
			return true
		}
		return string(c.Priority) == priority
	}
}

// MatchInvestmentType keeps contacts of the given investment type.
func MatchInvestmentType(investmentType string) Predicate {
	return func(c domain.Contact) bool {
		if investmentType == "" || investmentType == AllInvestmentTypes {
			return true
		}
		return c.InvestmentType == investmentType
	}
}

// Apply keeps the contacts satisfying every predicate, preserving order.
func Apply(contacts []domain.Contact, preds ...Predicate) []domain.Contact {
	out := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		keep := true
		for _, pred := range preds {
			if !pred(c) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Filter applies all criteria.
func Filter(contacts []domain.Contact, criteria Criteria) []domain.Contact {
	return Apply(contacts,
		MatchSearch(criteria.Search),
		MatchPriority(criteria.Priority),
		MatchInvestmentType(criteria.InvestmentType),
	)
}

// InvestmentTypes lists distinct investment types in first-seen order.
func InvestmentTypes(contacts []domain.Contact) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range contacts {
		if _, ok := seen[c.InvestmentType]; ok {
			continue
		}
		seen[c.InvestmentType] = struct{}{}
		out = append(out, c.InvestmentType)
	}
	return out
}
