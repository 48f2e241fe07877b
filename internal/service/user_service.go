package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// AccountStore is the data access surface for profiles and role rows.
type AccountStore interface {
	ListProfiles() ([]models.Profile, error)
	ListRoles() ([]models.RoleAssignment, error)
	DeleteAccount(userID string) error
}

// UserService serves the admin user management view: profiles joined with
// their role assignments, plus account deletion.
type UserService struct {
	accounts AccountStore
}

// NewUserService constructs a UserService.
func NewUserService(accounts AccountStore) *UserService {
	return &UserService{accounts: accounts}
}

// ListAccounts fetches profiles and role assignments independently and
// joins them in memory. A profile with no role row is a plain user.
func (s *UserService) ListAccounts() ([]models.UserAccount, error) {
	profiles, err := s.accounts.ListProfiles()
	if err != nil {
		return nil, err
	}
	roles, err := s.accounts.ListRoles()
	if err != nil {
		return nil, err
	}
	return JoinAccounts(profiles, roles), nil
}

// JoinAccounts builds the joined view, resolving each profile's role via a
// typed lookup that defaults missing or unrecognized assignments to
// RoleUser.
func JoinAccounts(profiles []models.Profile, roles []models.RoleAssignment) []models.UserAccount {
	byUser := make(map[string]models.Role, len(roles))
	for _, r := range roles {
		byUser[r.UserID] = models.ParseRole(r.Role)
	}

	out := make([]models.UserAccount, len(profiles))
	for i, p := range profiles {
		role, ok := byUser[p.ID]
		if !ok {
			role = models.RoleUser
		}
		out[i] = models.UserAccount{Profile: p, Role: role}
	}
	return out
}

// FilterAccounts derives the subset matching a free-text query (substring
// on email, full name, or raw identifier, case-insensitive) and an optional
// role restriction. Pure and order-preserving.
func FilterAccounts(accounts []models.UserAccount, query string, role models.Role) []models.UserAccount {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.UserAccount, 0, len(accounts))
	for _, a := range accounts {
		if q != "" && !accountMatches(&a, q) {
			continue
		}
		if role != "" && a.Role != role {
			continue
		}
		out = append(out, a)
	}
	return out
}

func accountMatches(a *models.UserAccount, q string) bool {
	if a.Email != nil && strings.Contains(strings.ToLower(*a.Email), q) {
		return true
	}
	if a.FullName != nil && strings.Contains(strings.ToLower(*a.FullName), q) {
		return true
	}
	return strings.Contains(strings.ToLower(a.ID), q)
}

// DeleteAccount removes the account's role row and profile row as one
// transactional unit.
func (s *UserService) DeleteAccount(userID string) error {
	if err := s.accounts.DeleteAccount(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProfileNotFound
		}
		return err
	}
	return nil
}
