package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestIssuer() *Issuer {
	return NewIssuer("user-secret", "admin-secret", time.Hour)
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	for _, scope := range []Scope{ScopeUser, ScopeAdmin} {
		raw, err := issuer.Issue("principal-1", scope)
		if err != nil {
			t.Fatalf("issue %s token: %v", scope, err)
		}

		id, err := issuer.Verify(raw, scope)
		if err != nil {
			t.Fatalf("verify %s token: %v", scope, err)
		}
		if id != "principal-1" {
			t.Fatalf("expected principal-1, got %q", id)
		}
	}
}

func TestIssuer_ScopeIsolation(t *testing.T) {
	issuer := newTestIssuer()

	userToken, err := issuer.Issue("u1", ScopeUser)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}
	adminToken, err := issuer.Issue("a1", ScopeAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	if _, err := issuer.Verify(userToken, ScopeAdmin); err != ErrInvalidToken {
		t.Fatalf("user token accepted by admin scope: %v", err)
	}
	if _, err := issuer.Verify(adminToken, ScopeUser); err != ErrInvalidToken {
		t.Fatalf("admin token accepted by user scope: %v", err)
	}
}

func TestIssuer_ScopeClaimAloneIsNotEnough(t *testing.T) {
	// A token carrying scope=admin but signed with the user secret must
	// still be rejected by the admin gate.
	issuer := newTestIssuer()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "a1",
		"scope": string(ScopeAdmin),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte("user-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	if _, err := issuer.Verify(raw, ScopeAdmin); err != ErrInvalidToken {
		t.Fatalf("forged token accepted: %v", err)
	}
}

func TestIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"scope": string(ScopeUser),
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	raw, err := expired.SignedString([]byte("user-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := issuer.Verify(raw, ScopeUser); err != ErrInvalidToken {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	issuer := newTestIssuer()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(raw, ScopeUser); err != ErrInvalidToken {
			t.Fatalf("malformed token %q accepted: %v", raw, err)
		}
	}
}

func TestIssuer_Tampered(t *testing.T) {
	issuer := newTestIssuer()

	raw, err := issuer.Issue("u1", ScopeUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"
	if _, err := issuer.Verify(tampered, ScopeUser); err != ErrInvalidToken {
		t.Fatalf("tampered token accepted: %v", err)
	}
}

func TestIssuer_RejectsWrongAlgorithm(t *testing.T) {
	issuer := newTestIssuer()

	other := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":   "u1",
		"scope": string(ScopeUser),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := other.SignedString([]byte("user-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := issuer.Verify(raw, ScopeUser); err != ErrInvalidToken {
		t.Fatalf("HS512 token accepted: %v", err)
	}
}

func TestIssuer_MissingSubject(t *testing.T) {
	issuer := newTestIssuer()

	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": string(ScopeUser),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := anon.SignedString([]byte("user-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := issuer.Verify(raw, ScopeUser); err != ErrInvalidToken {
		t.Fatalf("token without subject accepted: %v", err)
	}
}
