// Package token signs and verifies the bearer tokens exchanged between
// clients, the identity service and the appointments service.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Identity is the end-user part of a token.
type Identity struct {
	UserID int64 `json:"id"`
}

// Delegation is the service part of a token: the role of the end user on
// whose behalf the appointments service is calling. ProxiedRole may be empty.
type Delegation struct {
	ProxiedRole domain.Role `json:"user_role"`
}

// Claims is the signed envelope. Exactly one of Identity or Delegation is
// set on tokens produced by Issue*.
type Claims struct {
	Role domain.Role `json:"role"`
	*Identity
	*Delegation
	jwt.RegisteredClaims
}

// Actor converts verified claims into the request principal.
func (c *Claims) Actor() domain.Actor {
	a := domain.Actor{Role: c.Role}
	if c.Identity != nil {
		a.UserID = c.UserID
	}
	if c.Delegation != nil {
		a.ProxiedRole = c.ProxiedRole
	}
	return a
}

// Codec encodes and decodes HS256 tokens with a shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec returns a Codec keyed with secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// IssueUser signs a session token for a logged-in user and returns it with
// its expiry.
func (c *Codec) IssueUser(userID int64, role domain.Role, ttl time.Duration) (string, time.Time, error) {
	return c.issue(Claims{Role: role, Identity: &Identity{UserID: userID}}, ttl)
}

// IssueService signs a service token proxying the given end-user role.
func (c *Codec) IssueService(proxied domain.Role, ttl time.Duration) (string, time.Time, error) {
	return c.issue(Claims{Role: domain.RoleService, Delegation: &Delegation{ProxiedRole: proxied}}, ttl)
}

func (c *Codec) issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	signed, err := c.Encode(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Encode signs claims as they are.
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Claims are never returned for a token whose signature does not verify.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}
