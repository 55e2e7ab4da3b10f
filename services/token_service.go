package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	errTokenExpired = errors.New("token expired")
	errTokenInvalid = errors.New("token invalid")
)

// Claims is the signed payload of both token kinds. Access tokens carry the
// refresh token they were issued with; refresh tokens leave it empty.
type Claims struct {
	Email        string `json:"email"`
	UserID       uint   `json:"id"`
	RefreshToken string `json:"refresh_token,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) isRefresh() bool { return c.RefreshToken == "" }

// TokenCodec signs and verifies HS256 claim sets.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (c *TokenCodec) encode(email string, userID uint, refreshToken string, ttl time.Duration) (string, error) {
	issuedAt := c.now()
	claims := Claims{
		Email:        email,
		UserID:       userID,
		RefreshToken: refreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// decode verifies raw. A token whose only defect is its expiry comes back
// with its claims and errTokenExpired; every other failure is errTokenInvalid.
func (c *TokenCodec) decode(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})

	var ve *jwt.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired:
		err = errTokenExpired
	default:
		return nil, errTokenInvalid
	}

	if claims.Email == "" || claims.UserID == 0 || claims.ExpiresAt == nil {
		return nil, errTokenInvalid
	}
	return claims, err
}
