// Package seed provides the initial roster and the initial pipeline contacts.
package seed

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/repository"
)

// Credential pairs a seeded account with its plaintext secret.
type Credential struct {
	Account domain.Account
	Secret  string
}

func at(layout string) *time.Time {
	ts, err := time.ParseInLocation("2006-01-02 15:04", layout, time.UTC)
	if err != nil {
		panic(err)
	}
	return &ts
}

// Roster returns the initial known actors with plaintext secrets.
func Roster() []Credential {
	created := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	return []Credential{
		{
			Secret: "truckers123",
			Account: domain.Account{
				ID:          "1",
				Username:    "truckers",
				Name:        `Alex "Big Truck" Foster`,
				Email:       "truckers@sqinvest.co.uk",
				Role:        "Managing Director",
				Department:  "Management",
				AccessLevel: domain.AccessTierBoard,
				Permissions: domain.AllAccess(domain.PermissionAdmin, domain.PermissionReports, domain.PermissionDeals,
					domain.PermissionContacts, domain.PermissionAnalytics),
				Status:        domain.ActorStatusActive,
				CanDelete:     true,
				RequiresTwoFA: true,
				LastLogin:     at("2025-07-10 14:30"),
				CreatedAt:     created,
			},
		},
		{
			Secret: "squire123",
			Account: domain.Account{
				ID:          "2",
				Username:    "squire",
				Name:        "Squire",
				Email:       "squire@sqinvest.co.uk",
				Role:        "Senior Sales Agent",
				Department:  "Sales",
				AccessLevel: domain.AccessTierSales,
				Permissions: domain.Permissions(domain.PermissionContacts, domain.PermissionDeals, domain.PermissionReports,
					domain.PermissionCalendar, domain.PermissionDocuments),
				Status:    domain.ActorStatusActive,
				LastLogin: at("2025-07-10 09:15"),
				CreatedAt: created.Add(time.Minute),
			},
		},
		{
			Secret: "m1123",
			Account: domain.Account{
				ID:          "3",
				Username:    "m1",
				Name:        "M1",
				Email:       "m1@sqinvest.co.uk",
				Role:        "Sales Agent",
				Department:  "Sales",
				AccessLevel: domain.AccessTierSales,
				Permissions: domain.Permissions(domain.PermissionContacts, domain.PermissionDeals, domain.PermissionCalendar,
					domain.PermissionDocuments),
				Status:    domain.ActorStatusActive,
				LastLogin: at("2025-07-10 08:45"),
				CreatedAt: created.Add(2 * time.Minute),
			},
		},
		{
			Secret: "ed123",
			Account: domain.Account{
				ID:          "4",
				Username:    "ed",
				Name:        "Ed",
				Email:       "ed@sqinvest.co.uk",
				Role:        "Business Development Manager",
				Department:  "Business Development",
				AccessLevel: domain.AccessTierManagement,
				Permissions: domain.Permissions(domain.PermissionContacts, domain.PermissionDeals, domain.PermissionReports,
					domain.PermissionCalendar, domain.PermissionDocuments, domain.PermissionAnalytics),
				Status:    domain.ActorStatusActive,
				LastLogin: at("2025-07-09 16:20"),
				CreatedAt: created.Add(3 * time.Minute),
			},
		},
		{
			Secret: "admin123",
			Account: domain.Account{
				ID:            "5",
				Username:      "admin",
				Name:          "System Administrator",
				Email:         "admin@sqinvest.co.uk",
				Role:          "System Admin",
				Department:    "IT",
				AccessLevel:   domain.AccessTierAdministration,
				Permissions:   domain.AllAccess(domain.PermissionAdmin, domain.PermissionSystemConfig, domain.PermissionUserManagement),
				Status:        domain.ActorStatusActive,
				RequiresTwoFA: true,
				LastLogin:     at("2025-07-10 07:00"),
				CreatedAt:     created.Add(4 * time.Minute),
			},
		},
	}
}

// Accounts returns the roster with secrets hashed at cost.
func Accounts(cost int) ([]domain.Account, error) {
	roster := Roster()
	out := make([]domain.Account, 0, len(roster))
	for _, cred := range roster {
		hash, err := auth.HashSecret(cred.Secret, cost)
		if err != nil {
			return nil, err
		}
		account := cred.Account
		account.SecretHash = hash
		out = append(out, account)
	}
	return out, nil
}

// Apply inserts any roster account missing from repo. Existing accounts are left alone.
func Apply(ctx context.Context, repo repository.AccountRepository, cost int, logger *zap.Logger) error {
	accounts, err := Accounts(cost)
	if err != nil {
		return err
	}
	created := 0
	for i := range accounts {
		err := repo.Create(ctx, &accounts[i])
		switch {
		case errors.Is(err, repository.ErrDuplicateAccount):
			continue
		case err != nil:
			return err
		}
		created++
	}
	logger.Info("roster seeded", zap.Int("created", created), zap.Int("total", len(accounts)))
	return nil
}
