// Package token issues and verifies the signed identity tokens used by the
// API. User and admin tokens are signed with independent secrets; the
// embedded scope claim must additionally match, so a token from one scope
// never validates in the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scope is the trust domain a token is valid within.
type Scope string

const (
	ScopeUser  Scope = "user"
	ScopeAdmin Scope = "admin"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: malformed input, bad
// signature, wrong scope, expired or tampered token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs and verifies scoped identity tokens.
type Issuer struct {
	secrets map[Scope][]byte
	ttl     time.Duration
}

// NewIssuer builds an Issuer from the two scope secrets. TTL defaults to
// DefaultTTL when non-positive.
func NewIssuer(userSecret, adminSecret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secrets: map[Scope][]byte{
			ScopeUser:  []byte(userSecret),
			ScopeAdmin: []byte(adminSecret),
		},
		ttl: ttl,
	}
}

// Issue produces a signed token embedding the principal id, valid for the
// issuer's TTL within the given scope.
func (i *Issuer) Issue(principalID string, scope Scope) (string, error) {
	secret, ok := i.secrets[scope]
	if !ok {
		return "", fmt.Errorf("issue token: unknown scope %q", scope)
	}

	claims := jwt.MapClaims{
		"sub":   principalID,
		"scope": string(scope),
		"exp":   time.Now().Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify checks the token against the scope's secret and returns the
// embedded principal id. Any failure yields ErrInvalidToken; the caller
// learns nothing about which check failed.
func (i *Issuer) Verify(raw string, scope Scope) (string, error) {
	secret, ok := i.secrets[scope]
	if !ok {
		return "", ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}

	if s, _ := claims["scope"].(string); s != string(scope) {
		return "", ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
