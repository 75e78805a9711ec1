//go:generate go run go.uber.org/mock/mockgen -source=identity_service.go -destination=../mocks/mock_identity_service.go -package=mocks
package services

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"chat-workspace/auth"
	"chat-workspace/domain"
	"chat-workspace/errors"
	"chat-workspace/repositories"

	"github.com/samber/lo"
)

type IIdentityService interface {
	Register(email, password, nameFirst, nameLast string) (AuthResult, error)
	Login(email, password string) (AuthResult, error)
	Logout(token string) error
	Authenticate(token string) (domain.UserID, error)
	Profile(requesterID, targetID domain.UserID) (domain.Profile, error)
	ListUsers(requesterID domain.UserID) ([]domain.Profile, error)
	SetGlobalPermission(requesterID, targetID domain.UserID, permission int) error
}

type IdentityService struct {
	workspace repositories.IWorkspace
	log       *slog.Logger
	tokenTTL  time.Duration
}

func NewIdentityService(workspace repositories.IWorkspace, log *slog.Logger, tokenTTL time.Duration) *IdentityService {
	return &IdentityService{workspace: workspace, log: log, tokenTTL: tokenTTL}
}

// AuthResult is returned by Register and Login: the user id plus a fresh
// session token for the external layer to hand back to the caller.
type AuthResult struct {
	UserID domain.UserID
	Token  string
}

// Register validates the input, stores a new user with a hashed password and
// a generated unique handle, and opens a session. The very first user of the
// workspace becomes a global owner.
func (s *IdentityService) Register(email, password, nameFirst, nameLast string) (AuthResult, error) {
	valReq := auth.RegisterRequest{
		Email:     email,
		Password:  password,
		NameFirst: nameFirst,
		NameLast:  nameLast,
	}
	// Check business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return AuthResult{}, err
	}
	if _, taken := s.workspace.UserByEmail(email); taken {
		return AuthResult{}, errors.ErrUserAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hashing failed: %w", err)
	}

	permission := domain.PermMember
	if len(s.workspace.Users()) == 0 {
		permission = domain.PermGlobalOwner
	}

	user := &domain.User{
		ID:           s.workspace.NextUserID(),
		Email:        email,
		PasswordHash: hashed,
		NameFirst:    nameFirst,
		NameLast:     nameLast,
		Handle:       s.generateHandle(nameFirst, nameLast),
		Permission:   permission,
		CreatedAt:    time.Now(),
	}
	s.workspace.PutUser(user)
	s.log.Info("user registered", "user_id", int(user.ID), "handle", user.Handle)

	token, err := auth.GenerateToken(user.ID, user.Permission, s.tokenTTL)
	if err != nil {
		return AuthResult{}, errors.ErrTokenGeneration
	}
	return AuthResult{UserID: user.ID, Token: token}, nil
}

// Login checks the credentials and opens a new session. Unknown email and
// wrong password surface the same error to prevent user enumeration.
func (s *IdentityService) Login(email, password string) (AuthResult, error) {
	user, ok := s.workspace.UserByEmail(email)
	if !ok {
		return AuthResult{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return AuthResult{}, errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Permission, s.tokenTTL)
	if err != nil {
		return AuthResult{}, errors.ErrTokenGeneration
	}
	return AuthResult{UserID: user.ID, Token: token}, nil
}

// Logout revokes the session carried by the token. The token signature must
// still be valid; a second logout with the same token fails.
func (s *IdentityService) Logout(token string) error {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if s.workspace.SessionRevoked(sessionID) {
		return errors.ErrSessionRevoked
	}
	s.workspace.RevokeSession(sessionID)
	return nil
}

// Authenticate resolves a session token to the user id behind it, rejecting
// revoked sessions and sessions of users that no longer exist.
func (s *IdentityService) Authenticate(token string) (domain.UserID, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if s.workspace.SessionRevoked(sessionID) {
		return 0, errors.ErrSessionRevoked
	}
	userID := domain.UserID(claims.UserID)
	if _, ok := s.workspace.User(userID); !ok {
		return 0, errors.ErrUserNotFound
	}
	return userID, nil
}

// Profile returns the public profile of the target user.
func (s *IdentityService) Profile(requesterID, targetID domain.UserID) (domain.Profile, error) {
	if _, ok := s.workspace.User(requesterID); !ok {
		return domain.Profile{}, errors.ErrUserNotFound
	}
	target, ok := s.workspace.User(targetID)
	if !ok {
		return domain.Profile{}, errors.ErrUserNotFound
	}
	return target.Profile(), nil
}

// ListUsers returns every profile in registration order.
func (s *IdentityService) ListUsers(requesterID domain.UserID) ([]domain.Profile, error) {
	if _, ok := s.workspace.User(requesterID); !ok {
		return nil, errors.ErrUserNotFound
	}
	return lo.Map(s.workspace.Users(), func(u *domain.User, _ int) domain.Profile {
		return u.Profile()
	}), nil
}

// SetGlobalPermission promotes or demotes a user. Only global owners may do
// this, and the workspace never loses its last global owner.
func (s *IdentityService) SetGlobalPermission(requesterID, targetID domain.UserID, permission int) error {
	requester, ok := s.workspace.User(requesterID)
	if !ok {
		return errors.ErrUserNotFound
	}
	if !requester.IsGlobalOwner() {
		return errors.ErrNotGlobalOwner
	}
	target, ok := s.workspace.User(targetID)
	if !ok {
		return errors.ErrUserNotFound
	}
	if permission != domain.PermGlobalOwner && permission != domain.PermMember {
		return errors.ErrInvalidPermission
	}
	if target.IsGlobalOwner() && permission == domain.PermMember && s.countGlobalOwners() == 1 {
		return errors.ErrLastGlobalOwner
	}
	target.Permission = permission
	s.log.Info("global permission changed", "user_id", int(target.ID), "permission", permission)
	return nil
}

func (s *IdentityService) countGlobalOwners() int {
	return lo.CountBy(s.workspace.Users(), func(u *domain.User) bool {
		return u.IsGlobalOwner()
	})
}

// generateHandle builds the display handle: lower-cased concatenation of the
// names keeping only ASCII alphanumerics, cut at 20 characters. On collision
// the smallest integer suffix from 0 upward is appended, and that suffix may
// push the handle past 20 characters.
func (s *IdentityService) generateHandle(nameFirst, nameLast string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(nameFirst + nameLast) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 20 {
			break
		}
	}
	base := b.String()

	if _, taken := s.workspace.UserByHandle(base); !taken {
		return base
	}
	for suffix := 0; ; suffix++ {
		candidate := base + strconv.Itoa(suffix)
		if _, taken := s.workspace.UserByHandle(candidate); !taken {
			return candidate
		}
	}
}
