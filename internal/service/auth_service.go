package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retaildash/internal/auth"
	"retaildash/internal/errors"
	"retaildash/internal/model"
	"retaildash/internal/repository"
)

const bcryptCost = 10

// Session is the resolved identity behind a validated token. It never
// carries the password hash.
type Session struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthService handles login, session validation, and password resets.
type AuthService interface {
	// Login verifies credentials and returns a stamped session token plus
	// the matched user. Unknown user and wrong password are
	// indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	// ValidateSession verifies a raw cookie value and re-checks the
	// identity against the store, so deleting or renaming a user revokes
	// outstanding tokens immediately.
	ValidateSession(ctx context.Context, token string) (*Session, error)
	// ResetPassword rehashes and persists a new credential. The caller must
	// be an admin or the target user.
	ResetPassword(ctx context.Context, caller *Session, userID uint, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	signer   *auth.Signer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, signer *auth.Signer) AuthService {
	return &authService{userRepo: userRepo, signer: signer}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, errors.ErrValidation
	}

	// Lookup matches name or email; case sensitivity follows the store's
	// collation (case-insensitive under the MySQL utf8mb4 default).
	user, err := s.userRepo.FindByLogin(ctx, username)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.signer.Issue(user.Name, adminField(user.IsAdmin), time.Now().UnixMilli())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errors.ErrUnauthenticated
	}

	payload, err := s.signer.Verify(token)
	if err != nil {
		// Malformed or tampered tokens degrade to 401, never a 5xx.
		return nil, errors.ErrUnauthenticated
	}

	if time.Since(time.UnixMilli(payload.IssuedAtMs)) > auth.SessionTTL {
		return nil, errors.ErrTokenExpired
	}

	// The token is a weak reference: a user deleted or renamed after
	// issuance must fail validation, not error.
	user, err := s.userRepo.FindByName(ctx, payload.Identity)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("verify user: %w", err)
	}

	return &Session{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, caller *Session, userID uint, newPassword string) error {
	if userID == 0 || newPassword == "" {
		return errors.ErrValidation
	}
	if caller == nil {
		return errors.ErrUnauthenticated
	}
	if !caller.IsAdmin && caller.UserID != userID {
		return errors.ErrForbidden
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// adminField is the token discriminator: "1" for admins, "0" otherwise.
// Validation never trusts it; the store row is authoritative.
func adminField(isAdmin bool) string {
	if isAdmin {
		return "1"
	}
	return "0"
}
