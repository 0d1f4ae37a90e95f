// Package auth holds the authentication core: peppered password hashing,
// the signed-token codec and the session cookie manager. It has no HTTP
// routing or storage logic of its own.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Codec issues and validates HS256-signed JWTs binding a user id.
// Access and refresh tokens are structurally identical and differ only
// in the configured validity duration. Tokens are self-contained: no
// server-side session record exists, expiry alone ends a session.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the codec's time source. Used by tests to probe
// expiry boundaries.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// RefreshTTL exposes the refresh token lifetime so the session cookie
// can align its Max-Age with it.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess mints a short-lived access token for the given user.
func (c *Codec) IssueAccess(userID uuid.UUID) (string, error) {
	return c.issue(userID, c.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given user.
func (c *Codec) IssueRefresh(userID uuid.UUID) (string, error) {
	return c.issue(userID, c.refreshTTL)
}

func (c *Codec) issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate reports whether the token carries a valid signature and has
// not expired. Any parse error, algorithm mismatch or malformed
// structure yields false; it never panics or returns an error.
func (c *Codec) Validate(token string) bool {
	tok, err := c.parser().Parse(token, c.keyFunc)
	return err == nil && tok.Valid
}

// Subject returns the user id embedded in the token. Callers must only
// invoke it after Validate has accepted the token; on malformed input
// it returns a decoding error.
func (c *Codec) Subject(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	if _, err := c.parser().ParseWithClaims(token, &claims, c.keyFunc); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}

func (c *Codec) parser() *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
}

func (c *Codec) keyFunc(*jwt.Token) (interface{}, error) {
	return c.secret, nil
}
