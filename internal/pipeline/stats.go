package pipeline

import (
	"math"

	"github.com/sq-invest/crm-service/internal/domain"
)

// Columns holds contacts grouped by bucket, each in working-set order.
type Columns struct {
	Leads     []domain.Contact `json:"leads"`
	Prospects []domain.Contact `json:"prospects"`
	Clients   []domain.Contact `json:"clients"`
}

// Group splits contacts into columns. Contacts with an unknown status are dropped.
func Group(contacts []domain.Contact) Columns {
	cols := Columns{
		Leads:     []domain.Contact{},
		Prospects: []domain.Contact{},
		Clients:   []domain.Contact{},
	}
	for _, c := range contacts {
		b, ok := BucketOf(c.Status)
		if !ok {
			continue
		}
		switch b {
		case BucketLeads:
			cols.Leads = append(cols.Leads, c.Clone())
		case BucketProspects:
			cols.Prospects = append(cols.Prospects, c.Clone())
		case BucketClients:
			cols.Clients = append(cols.Clients, c.Clone())
		}
	}
	return cols
}

// Stats summarises a working set.
type Stats struct {
	Total             int `json:"total"`
	Leads             int `json:"leads"`
	Prospects         int `json:"prospects"`
	Clients           int `json:"clients"`
	ConversionRate    int `json:"conversionRate"`
	ActiveAutomations int `json:"activeAutomations"`
	Starred           int `json:"starred"`
}

// Summarize computes board statistics. Conversion rate is the rounded percentage
// of contacts with status Clients.
func Summarize(contacts []domain.Contact) Stats {
	stats := Stats{Total: len(contacts)}
	converted := 0
	for _, c := range contacts {
		if b, ok := BucketOf(c.Status); ok {
			switch b {
			case BucketLeads:
				stats.Leads++
			case BucketProspects:
				stats.Prospects++
			case BucketClients:
				stats.Clients++
			}
		}
		if c.Status == domain.StatusClients {
			converted++
		}
		if c.AutomationStatus == domain.AutomationActive {
			stats.ActiveAutomations++
		}
		if c.IsStarred {
			stats.Starred++
		}
	}
	if stats.Total > 0 {
		stats.ConversionRate = int(math.Round(float64(converted) / float64(stats.Total) * 100))
	}
	return stats
}
