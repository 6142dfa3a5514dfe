package service

import (
	"context"
	"errors"
	"strings"

	"coffeeshop/model"
	"coffeeshop/repository"

	"gorm.io/gorm"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer issues access/refresh token pairs bound to a user identity.
type TokenIssuer interface {
	Issue(userID uint, email string) (access, refresh string, err error)
	Refresh(refreshToken string) (access, refresh string, err error)
}

type Session struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

type AccountService struct {
	store  *repository.Store
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAccountService(store *repository.Store, hasher PasswordHasher, tokens TokenIssuer) *AccountService {
	return &AccountService{store: store, hasher: hasher, tokens: tokens}
}

func (s *AccountService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, invalid("VALIDATION_ERROR", "Email, password and name are required")
	}

	taken, err := s.store.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, emailExists()
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{Email: email, Name: name, PasswordHash: digest}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailExists()
		}
		return nil, err
	}
	return u, nil
}

func emailExists() error {
	return newError(ErrConflict, "EMAIL_EXISTS", "Email is already registered")
}

// Authenticate answers unknown emails and wrong passwords with the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.Users.ByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authFailed()
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, authFailed()
	}

	access, refresh, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func authFailed() error {
	return newError(ErrAuthFailed, "AUTH_FAILED", "Invalid email or password")
}

func (s *AccountService) Refresh(refreshToken string) (access, refresh string, err error) {
	access, refresh, err = s.tokens.Refresh(refreshToken)
	if err != nil {
		return "", "", newError(ErrAuthFailed, "INVALID_REFRESH_TOKEN", "Invalid or expired refresh token")
	}
	return access, refresh, nil
}

// ResolveIdentity maps an authenticated email to the user id. A missing user
// means the token layer and the user table disagree, which is a server fault.
func (s *AccountService) ResolveIdentity(ctx context.Context, email string) (uint, error) {
	u, err := s.store.Users.ByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, newError(ErrInconsistent, "INTERNAL_ERROR", "no user record for authenticated principal %q", email)
	}
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
