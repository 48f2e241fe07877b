package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

type fakeAccountStore struct {
	profiles []models.Profile
	roles    []models.RoleAssignment
	deleted  []string
}

func (f *fakeAccountStore) ListProfiles() ([]models.Profile, error) {
	return f.profiles, nil
}

func (f *fakeAccountStore) ListRoles() ([]models.RoleAssignment, error) {
	return f.roles, nil
}

func (f *fakeAccountStore) DeleteAccount(userID string) error {
	for _, p := range f.profiles {
		if p.ID == userID {
			f.deleted = append(f.deleted, userID)
			return nil
		}
	}
	return sql.ErrNoRows
}

func strPtr(s string) *string { return &s }

func accountsFixture() *fakeAccountStore {
	return &fakeAccountStore{
		profiles: []models.Profile{
			{ID: "u-1", Email: strPtr("alice@example.com"), FullName: strPtr("Alice Green")},
			{ID: "u-2", Email: strPtr("bob@example.com"), FullName: strPtr("Bob Stone")},
			{ID: "u-3", Email: nil, FullName: nil},
		},
		roles: []models.RoleAssignment{
			{UserID: "u-1", Role: "admin"},
			{UserID: "u-3", Role: "moderator"},
		},
	}
}

func TestListAccountsJoinsRoles(t *testing.T) {
	svc := NewUserService(accountsFixture())

	accounts, err := svc.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, models.RoleAdmin, accounts[0].Role)
	assert.Equal(t, models.RoleUser, accounts[1].Role, "no role row means plain user")
	assert.Equal(t, models.RoleUser, accounts[2].Role, "unrecognized role means plain user")
}

func TestJoinAccountsPreservesProfileOrder(t *testing.T) {
	store := accountsFixture()
	joined := JoinAccounts(store.profiles, store.roles)
	require.Len(t, joined, 3)
	for i, p := range store.profiles {
		assert.Equal(t, p.ID, joined[i].ID)
	}
}

func TestFilterAccounts(t *testing.T) {
	store := accountsFixture()
	accounts := JoinAccounts(store.profiles, store.roles)

	got := FilterAccounts(accounts, "ALICE", "")
	require.Len(t, got, 1)
	assert.Equal(t, "u-1", got[0].ID)

	got = FilterAccounts(accounts, "stone", "")
	require.Len(t, got, 1, "full name matches")

	got = FilterAccounts(accounts, "u-3", "")
	require.Len(t, got, 1, "identifier matches even without email")

	got = FilterAccounts(accounts, "", models.RoleAdmin)
	require.Len(t, got, 1)

	got = FilterAccounts(accounts, "example.com", models.RoleUser)
	require.Len(t, got, 1, "query and role combine")
	assert.Equal(t, "u-2", got[0].ID)

	assert.Len(t, FilterAccounts(accounts, "", ""), 3)
	assert.Empty(t, FilterAccounts(accounts, "nobody", ""))
}

func TestDeleteAccount(t *testing.T) {
	store := accountsFixture()
	svc := NewUserService(store)

	require.NoError(t, svc.DeleteAccount("u-2"))
	assert.Equal(t, []string{"u-2"}, store.deleted)

	assert.ErrorIs(t, svc.DeleteAccount("missing"), utils.ErrProfileNotFound)
}
