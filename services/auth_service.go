package services

import (
	"context"
	"errors"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/models"
)

var (
	ErrInvalidCredentials  = apperrors.New(apperrors.ErrAuth, "Invalid email or password")
	ErrInvalidToken        = apperrors.Forbidden("Could not validate credentials")
	ErrUserNotFound        = apperrors.NotFound("User not found")
	ErrRefreshExpired      = apperrors.Validation("Refresh token expired")
	ErrInvalidRefreshToken = apperrors.Validation("Invalid refresh token")
)

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type ResolutionStatus int

const (
	Resolved ResolutionStatus = iota
	NeedsRefresh
	Rejected
)

// Resolution is the outcome of resolving a bearer token. Exactly one of
// User (Resolved), RefreshToken (NeedsRefresh) or Err (Rejected) is set.
type Resolution struct {
	Status       ResolutionStatus
	User         *models.User
	RefreshToken string
	Err          error
}

type Authenticator struct {
	users  UserLookup
	hasher *PasswordHasher
	tokens *TokenCodec
}

func NewAuthenticator(users UserLookup, hasher *PasswordHasher, tokens *TokenCodec) *Authenticator {
	return &Authenticator{users: users, hasher: hasher, tokens: tokens}
}

// Authenticate checks credentials. An unknown email and a wrong password
// produce the same error after the same amount of hashing work.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		a.hasher.Burn(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !a.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (a *Authenticator) IssueTokenPair(user *models.User) (TokenPair, error) {
	refresh, err := a.tokens.encode(user.Email, user.ID, "", a.tokens.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	access, err := a.tokens.encode(user.Email, user.ID, refresh, a.tokens.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// ResolveCurrentUser maps an access token onto its user. An access token
// that is expired but otherwise sound yields NeedsRefresh with the refresh
// token it embeds, provided its user still exists.
func (a *Authenticator) ResolveCurrentUser(ctx context.Context, raw string) Resolution {
	claims, err := a.tokens.decode(raw)
	expired := errors.Is(err, errTokenExpired)
	if err != nil && !expired {
		return Resolution{Status: Rejected, Err: ErrInvalidToken}
	}
	if claims.isRefresh() {
		return Resolution{Status: Rejected, Err: ErrInvalidToken}
	}

	user, err := a.lookup(ctx, claims)
	if err != nil {
		return Resolution{Status: Rejected, Err: err}
	}
	if expired {
		return Resolution{Status: NeedsRefresh, RefreshToken: claims.RefreshToken}
	}
	return Resolution{Status: Resolved, User: user}
}

func (a *Authenticator) Refresh(ctx context.Context, raw string) (TokenPair, error) {
	claims, err := a.tokens.decode(raw)
	switch {
	case errors.Is(err, errTokenExpired):
		return TokenPair{}, ErrRefreshExpired
	case err != nil:
		return TokenPair{}, ErrInvalidToken
	case !claims.isRefresh():
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := a.lookup(ctx, claims)
	if errors.Is(err, apperrors.ErrNotFound) {
		return TokenPair{}, apperrors.Validation("User not found")
	}
	if err != nil {
		return TokenPair{}, err
	}
	return a.IssueTokenPair(user)
}

// lookup resolves the claims' user by email and insists the id still
// matches, so a token does not carry over to a re-created account.
func (a *Authenticator) lookup(ctx context.Context, claims *Claims) (*models.User, error) {
	user, err := a.users.GetByEmail(ctx, claims.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.ID != claims.UserID {
		return nil, ErrUserNotFound
	}
	return user, nil
}
