package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/pipeline"
	"github.com/sq-invest/crm-service/internal/repository"
)

func TestRosterHandlesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, cred := range Roster() {
		assert.False(t, seen[cred.Account.Username], cred.Account.Username)
		seen[cred.Account.Username] = true
	}
	assert.Len(t, seen, 5)
}

func TestOnlyBoardMayDelete(t *testing.T) {
	for _, cred := range Roster() {
		assert.Equal(t, cred.Account.AccessLevel == domain.AccessTierBoard, cred.Account.CanDelete, cred.Account.Username)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAccountRepository()
	require.NoError(t, Apply(ctx, repo, bcrypt.MinCost, zap.NewNop()))
	require.NoError(t, Apply(ctx, repo, bcrypt.MinCost, zap.NewNop()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "truckers", list[0].Username)

	truckers, err := repo.GetByUsername(ctx, "truckers")
	require.NoError(t, err)
	assert.NoError(t, auth.CompareSecret(truckers.SecretHash, "truckers123"))
	assert.True(t, truckers.Permissions.IsAllAccess())
}

func TestContactsCoverEveryStatus(t *testing.T) {
	seen := map[domain.ContactStatus]bool{}
	for _, c := range Contacts() {
		seen[c.Status] = true
		_, ok := pipeline.BucketOf(c.Status)
		assert.True(t, ok, c.Status)
	}
	for _, s := range domain.ContactStatuses() {
		assert.True(t, seen[s], s)
	}
}
