package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/talentforge/workspace/internal/errors"
)

// Session carries the bearer token and the identity of the signed-in user.
// It is passed explicitly to every component that talks to the backend; there
// is no ambient session state. The role flag comes from the surrounding
// authentication layer and is trusted as-is.
type Session struct {
	Token    string
	Username string
}

// New creates a Session for the given bearer token and username.
func New(token, username string) *Session {
	return &Session{Token: token, Username: username}
}

// Validate fails when the token is absent or, for JWT tokens, already
// expired. Expiry is read from the unverified exp claim; signature
// verification belongs to the server. Opaque (non-JWT) tokens pass.
func (s *Session) Validate(now time.Time) error {
	if s == nil || s.Token == "" {
		return &apierrors.AuthError{Message: "no session token"}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(now) {
		return &apierrors.AuthError{Message: "session token expired"}
	}
	return nil
}
