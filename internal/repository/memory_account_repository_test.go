package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sq-invest/crm-service/internal/domain"
)

func account(id, username string) *domain.Account {
	return &domain.Account{
		ID:          id,
		Username:    username,
		Name:        username,
		AccessLevel: domain.AccessTierSales,
		Permissions: domain.Permissions(domain.PermissionContacts),
		Status:      domain.ActorStatusActive,
		SecretHash:  "hash",
	}
}

func TestMemoryAccountsCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, account("1", "squire")))
	require.NoError(t, repo.Create(ctx, account("2", "m1")))

	assert.ErrorIs(t, repo.Create(ctx, account("3", "squire")), ErrDuplicateAccount)
	assert.ErrorIs(t, repo.Create(ctx, account("1", "other")), ErrDuplicateAccount)

	got, err := repo.GetByUsername(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "squire", list[0].Username)
}

func TestMemoryAccountsReturnCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, account("1", "squire")))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "squire", again.Name)
}

func TestMemoryAccountsUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, account("1", "squire")))
	require.NoError(t, repo.Create(ctx, account("2", "m1")))

	edited := account("1", "squire")
	edited.Status = domain.ActorStatusInactive
	require.NoError(t, repo.Update(ctx, edited))
	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActorStatusInactive, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, account("9", "ghost")), pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Update(ctx, account("1", "m1")), ErrDuplicateAccount)

	require.NoError(t, repo.Delete(ctx, "2"))
	require.NoError(t, repo.Delete(ctx, "2"))
	_, err = repo.GetByID(ctx, "2")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMemoryAccountsTouchLastLogin(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, account("1", "squire")))

	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(ctx, "1", at))
	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(at))

	assert.ErrorIs(t, repo.TouchLastLogin(ctx, "9", at), pgx.ErrNoRows)
}
