// Package identity implements authentication for both gateways: credential
// verification, step-up outcomes and access-token issuance.
package identity

import (
	"context"
	"errors"

	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/repository"
	"github.com/ekincan/iptv-gateway/internal/utils"
)

// ErrInvalidCredentials is returned for any credential failure: unknown
// login, wrong password.  Callers must not be able to tell which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login result kinds.  Only AccessToken carries a token; the other two tell
// the client which additional step is required before one can be issued.
const (
	LoginAccessToken       = "access-token"
	LoginTwoFactorRequired = "two-factor-required"
	LoginEmailVerification = "email-verification-required"
)

// Result is the outcome of a successful credential check.
type Result struct {
	Type  string
	Token utils.AccessToken // set only when Type == LoginAccessToken
	User  *model.User
}

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// Service verifies credentials and mints access tokens.
type Service struct {
	users  UserStore
	secret string
	ttlMin int
}

// NewService constructs an identity Service.
func NewService(users UserStore, secret string, ttlMin int) *Service {
	return &Service{users: users, secret: secret, ttlMin: ttlMin}
}

// Login checks a login (email or username) and password.  On success it
// either issues an access token or reports the required step-up.  Password
// verification runs before the step-up checks so that credential failures
// never reveal account state.
func (s *Service) Login(ctx context.Context, login, password string) (Result, error) {
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return Result{}, ErrInvalidCredentials
	}

	if !u.EmailVerified {
		return Result{Type: LoginEmailVerification, User: u}, nil
	}
	if u.TwoFactorEnabled {
		return Result{Type: LoginTwoFactorRequired, User: u}, nil
	}

	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Role, s.ttlMin)
	if err != nil {
		return Result{}, err
	}
	return Result{Type: LoginAccessToken, Token: tok, User: u}, nil
}

// Authenticate verifies a login/password pair and returns the account only
// when it could complete a full login (verified, no pending step-up).  The
// legacy player protocol has no way to express a step-up, so those accounts
// simply fail authentication there.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	res, err := s.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}
	if res.Type != LoginAccessToken {
		return nil, ErrInvalidCredentials
	}
	return res.User, nil
}

// UserByID loads an account by id, for token-authenticated profile lookups.
func (s *Service) UserByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
