package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token, exp, err := tm.Issue("emp1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry %v not in the future", exp)
	}
	subject, err := tm.Subject(token)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "emp1" {
		t.Fatalf("subject = %q, want emp1", subject)
	}
}

func TestTokenRejectsEmptySubject(t *testing.T) {
	if _, _, err := NewTokenManager("secret", 60).Issue(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }
	token, _, err := tm.Issue("emp1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := tm.Subject(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenInvalid(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token, _, err := tm.Issue("emp1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other, _, _ := NewTokenManager("other-secret", 60).Issue("emp1")

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "emp1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "emp1"}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]string{
		"tampered signature": tampered,
		"foreign secret":     other,
		"alg none":           unsigned,
		"missing expiry":     noExpiry,
		"garbage":            "not-a-token",
		"empty":              "",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tm.Subject(tok); err == nil {
				t.Fatalf("expected %s to be rejected", name)
			}
		})
	}
}
