package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// AdminUserStore is the data access surface for dashboard admin accounts.
type AdminUserStore interface {
	GetByEmail(email string) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
}

// AttemptLimiter throttles repeated failed logins per client IP.
type AttemptLimiter interface {
	Allow(ctx context.Context, ip string) bool
	Reset(ctx context.Context, ip string)
}

// AdminAuthService authenticates dashboard admins and issues session tokens.
type AdminAuthService struct {
	adminRepo AdminUserStore
	limiter   AttemptLimiter
}

// NewAdminAuthService constructs an AdminAuthService. The limiter may be
// nil, in which case attempts are not throttled.
func NewAdminAuthService(adminRepo AdminUserStore, limiter AttemptLimiter) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo, limiter: limiter}
}

// Login verifies credentials and returns a signed JWT. Failed attempts
// count against the per-IP window; a successful login resets it.
func (s *AdminAuthService) Login(ctx context.Context, email, password, ip string) (string, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, ip) {
		log.Warn().Str("ip", ip).Msg("login attempts throttled")
		return "", utils.ErrTooManyAttempts
	}

	user, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		log.Warn().Str("email", email).Msg("login failed: unknown email")
		return "", utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("login failed: account inactive")
		return "", utils.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("login failed: bad password")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, ip)
	}
	log.Info().Str("email", email).Msg("login successful")
	return token, nil
}

// CreateAdmin registers a dashboard admin with a bcrypt password hash.
func (s *AdminAuthService) CreateAdmin(email, password, name string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		IsActive:     true,
	}

	return s.adminRepo.Create(user)
}
