package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/greenleaf/leaf_api/internal/models"
)

// ProfileRepository handles data access for account profiles and their
// role assignments.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ListProfiles returns all profiles, newest first.
func (r *ProfileRepository) ListProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Select(&profiles, `SELECT * FROM profiles ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListRoles returns every role assignment row.
func (r *ProfileRepository) ListRoles() ([]models.RoleAssignment, error) {
	var roles []models.RoleAssignment
	if err := r.db.Select(&roles, `SELECT user_id, role FROM user_roles`); err != nil {
		return nil, err
	}
	return roles, nil
}

// DeleteAccount removes an account's role row and profile row inside one
// transaction, so a failure partway cannot leave an orphaned profile.
func (r *ProfileRepository) DeleteAccount(userID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM profiles WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
