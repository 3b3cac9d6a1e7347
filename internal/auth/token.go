package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned by Verify when no token was supplied at all.
// Callers decide whether that means "anonymous" or "unauthorized".
var ErrMissingToken = errors.New("missing token")

// ErrInvalidToken is returned for any token that fails signature or
// structural validation.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified subject of a request.
type Identity struct {
	UserID int
	Email  string
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService issues and verifies signed identity tokens. It is stateless:
// a token is valid iff its signature checks out against the secret, so there
// is no revocation beyond expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService with an explicit signing secret.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the identity's user id and email.
func (s *TokenService) Issue(identity Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: identity.Email,
	})
	return token.SignedString(s.secret)
}

// Verify validates the token's signature and shape and returns the identity
// it encodes. An empty input yields ErrMissingToken; everything else that
// does not verify yields ErrInvalidToken.
func (s *TokenService) Verify(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrMissingToken
	}

	parsed := claims{}
	token, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.Atoi(strings.TrimSpace(parsed.Subject))
	if err != nil || userID < 1 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Email: parsed.Email}, nil
}
