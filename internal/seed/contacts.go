package seed

import "github.com/sq-invest/crm-service/internal/domain"

// Contacts returns the initial pipeline, one contact per status.
func Contacts() []domain.Contact {
	return []domain.Contact{
		{
			ID: "1", Name: "Emma Davies", Email: "emma.davies@gmail.com", Phone: "+44 7700 456789",
			Company: "Self-employed", Status: domain.StatusFreshLeads, Priority: domain.PriorityMedium,
			InvestmentType: "Residential Property Investment", DealSize: "£150K - £300K", LeadScore: 65,
			LastContact: "2 days ago", Source: "Property Portal",
			Notes:         "First-time property investor. Interested in residential buy-to-let. Needs guidance on the process.",
			AssignedAgent: "Truckers", DateAdded: "2025-07-08", Activities: 3,
			AutomationStatus: domain.AutomationActive, Tags: []string{"first-time", "residential", "keen"},
		},
		{
			ID: "2", Name: "Michael Roberts", Email: "michael.roberts@business.com", Phone: "+44 7700 123456",
			Company: "Roberts Enterprises", Status: domain.StatusOpened, Priority: domain.PriorityMedium,
			InvestmentType: "Property Bonds", DealSize: "£250K - £500K", LeadScore: 72,
			LastContact: "5 days ago", Source: "Referral",
			Notes:         "Experienced investor looking for lower-risk bond investments.",
			AssignedAgent: "Squire", DateAdded: "2025-07-07", Activities: 5,
			AutomationStatus: domain.AutomationActive, IsStarred: true, Tags: []string{"experienced", "bonds", "portfolio"},
		},
		{
			ID: "3", Name: "James Anderson", Email: "james.anderson@wealth.co.uk", Phone: "+44 7700 789012",
			Company: "Anderson Wealth Management", Status: domain.StatusCallBacks, Priority: domain.PriorityHigh,
			InvestmentType: "Off-Plan Property Investment", DealSize: "£1.5M - £2.5M", LeadScore: 95,
			LastContact: "1 day ago", Source: "LinkedIn",
			Notes:         "High-net-worth individual. Looking for large-scale off-plan developments.",
			AssignedAgent: "Truckers", DateAdded: "2025-07-06", Activities: 8,
			AutomationStatus: domain.AutomationActive, IsStarred: true, Tags: []string{"high-value", "off-plan", "urgent"},
		},
		{
			ID: "4", Name: "Sarah Thompson", Email: "sarah.thompson@corp.com", Phone: "+44 7700 345678",
			Company: "Thompson Corporation", Status: domain.StatusKOL, Priority: domain.PriorityHigh,
			InvestmentType: "Commercial Property Investment", DealSize: "£500K - £1M", LeadScore: 88,
			LastContact: "3 days ago", Source: "Website",
			Notes:         "Key Opinion Leader in commercial property. Potential for large deals.",
			AssignedAgent: "Squire", DateAdded: "2025-07-05", Activities: 12,
			AutomationStatus: domain.AutomationPaused, IsStarred: true, Tags: []string{"kol", "commercial", "influencer"},
		},
		{
			ID: "5", Name: "David Wilson", Email: "david.wilson@holdings.com", Phone: "+44 7700 234567",
			Company: "Wilson Holdings", Status: domain.StatusLegal, Priority: domain.PriorityHigh,
			InvestmentType: "Student Property Investment", DealSize: "£800K - £1.2M", LeadScore: 92,
			LastContact: "1 day ago", Source: "Direct Marketing",
			Notes:         "Currently in legal review phase. Documents being prepared for completion.",
			AssignedAgent: "M1", DateAdded: "2025-07-04", Activities: 15,
			AutomationStatus: domain.AutomationCompleted, Tags: []string{"legal", "student", "completion"},
		},
		{
			ID: "6", Name: "Lisa Chen", Email: "lisa.chen@investments.com", Phone: "+44 7700 345612",
			Company: "Chen Investments", Status: domain.StatusNeedsTO, Priority: domain.PriorityMedium,
			InvestmentType: "Assisted Living Property Investment", DealSize: "£600K - £900K", LeadScore: 78,
			LastContact: "2 days ago", Source: "Referral",
			Notes:         "Needs Technical Officer review. Awaiting compliance check.",
			AssignedAgent: "Truckers", DateAdded: "2025-07-03", Activities: 6,
			AutomationStatus: domain.AutomationActive, Tags: []string{"assisted-living", "compliance", "review"},
		},
		{
			ID: "7", Name: "Robert Johnson", Email: "robert.johnson@capital.com", Phone: "+44 7700 456123",
			Company: "Johnson Capital", Status: domain.StatusDeals, Priority: domain.PriorityHigh,
			InvestmentType: "Off-Plan Property Investment", DealSize: "£2M - £3M", LeadScore: 96,
			LastContact: "1 day ago", Source: "Cold Outreach",
			Notes:         "Deal in progress. Awaiting final signatures.",
			AssignedAgent: "Squire", DateAdded: "2025-06-28", Activities: 20,
			AutomationStatus: domain.AutomationPaused, IsStarred: true, Tags: []string{"deals", "high-value", "completion"},
		},
		{
			ID: "8", Name: "Amanda Foster", Email: "amanda.foster@group.com", Phone: "+44 7700 567234",
			Company: "Foster Property Group", Status: domain.StatusClients, Priority: domain.PriorityMedium,
			InvestmentType: "Residential Property Investment", DealSize: "£400K - £600K", LeadScore: 85,
			LastContact: "4 days ago", Source: "Website",
			Notes:         "Confirmed client. Looking for additional opportunities.",
			AssignedAgent: "M1", DateAdded: "2025-06-20", Activities: 18,
			AutomationStatus: domain.AutomationActive, IsStarred: true, Tags: []string{"client", "residential", "expansion"},
		},
		{
			ID: "9", Name: "Mark Stevens", Email: "mark.stevens@email.com", Phone: "+44 7700 678345",
			Company: "Stevens Ltd", Status: domain.StatusDead, Priority: domain.PriorityLow,
			InvestmentType: "Property Bonds", DealSize: "£100K - £200K", LeadScore: 25,
			LastContact: "2 weeks ago", Source: "Social Media",
			Notes:         "Not interested. Budget constraints. Do not contact.",
			AssignedAgent: "Truckers", DateAdded: "2025-06-25", Activities: 4,
			AutomationStatus: domain.AutomationPaused, Tags: []string{"dead", "budget", "uninterested"},
		},
	}
}
