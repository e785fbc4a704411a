package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession = errors.New("invalid_session")
	ErrInvalidState   = errors.New("invalid_state")
)

// SessionService mints and verifies the HS256 tokens the web frontend holds:
// long-lived session tokens carrying the Discord user id, and short-lived
// state tokens that round-trip through the OAuth2 authorize redirect to block
// CSRF on the callback.
type SessionService struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	StateTTL   time.Duration
}

const (
	defaultSessionTTL = 7 * 24 * time.Hour
	defaultStateTTL   = 10 * time.Minute

	audSession = "session"
	audState   = "oauth-state"
)

func (s *SessionService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return defaultSessionTTL
	}
	return s.SessionTTL
}

func (s *SessionService) stateTTL() time.Duration {
	if s.StateTTL <= 0 {
		return defaultStateTTL
	}
	return s.StateTTL
}

// MintSession issues a signed session token for the given Discord user id.
func (s *SessionService) MintSession(discordID string) (string, error) {
	return s.mint(discordID, audSession, s.sessionTTL())
}

// VerifySession validates a session token and returns the Discord user id it
// was minted for.
func (s *SessionService) VerifySession(token string) (string, error) {
	sub, err := s.verify(token, audSession)
	if err != nil {
		return "", ErrInvalidSession
	}
	return sub, nil
}

// MintState issues a short-lived state token for the OAuth2 redirect.
func (s *SessionService) MintState() (string, error) {
	return s.mint("", audState, s.stateTTL())
}

// VerifyState validates a state token returned on the OAuth2 callback.
func (s *SessionService) VerifyState(token string) error {
	if _, err := s.verify(token, audState); err != nil {
		return ErrInvalidState
	}
	return nil
}

func (s *SessionService) mint(subject, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *SessionService) verify(token, audience string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
