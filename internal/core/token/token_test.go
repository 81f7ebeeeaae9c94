package token

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/problem"
)

func testService(t *testing.T) *Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return NewService(key, &key.PublicKey, TTL)
}

func assertProblem(t *testing.T, err error, status int, title string) *problem.Problem {
	t.Helper()
	var p *problem.Problem
	if !errors.As(err, &p) {
		t.Fatalf("expected a problem, got %T: %v", err, err)
	}
	if p.Status() != status || p.Title() != title {
		t.Fatalf("got %d %q, want %d %q", p.Status(), p.Title(), status, title)
	}
	return p
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := testService(t)
	userID := uuid.New()
	roles := []domain.Role{domain.RoleNormal, domain.RoleAuthor}

	signed, err := svc.Issue(userID, roles)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed == "" {
		t.Fatalf("empty token")
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.User != userID {
		t.Fatalf("user = %s, want %s", claims.User, userID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != domain.RoleNormal || claims.Roles[1] != domain.RoleAuthor {
		t.Fatalf("roles = %v", claims.Roles)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("registered claims missing")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != TTL {
		t.Fatalf("validity window = %s, want %s", got, TTL)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	svc := testService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	signed, err := svc.Issue(uuid.New(), []domain.Role{domain.RoleNormal})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return base.Add(6*24*time.Hour + 23*time.Hour + 59*time.Minute) }
	if _, err := svc.Verify(signed); err != nil {
		t.Fatalf("token should still be valid just inside the window: %v", err)
	}

	svc.now = func() time.Time { return base.Add(7*24*time.Hour + time.Second) }
	_, err = svc.Verify(signed)
	assertProblem(t, err, 400, "expired credential")
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := testService(t)
	signed, err := svc.Issue(uuid.New(), []domain.Role{domain.RoleNormal})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	p := assertProblem(t, err, 401, "authorization failure")
	if p.Detail() != "Session credential was missing or invalid." {
		t.Fatalf("detail = %q", p.Detail())
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := testService(t)
	signed, err := svc.Issue(uuid.New(), []domain.Role{domain.RoleNormal})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other, err := svc.Issue(uuid.New(), []domain.Role{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Payload from the admin token spliced onto the normal token's
	// signature must not verify.
	a, b := strings.Split(signed, "."), strings.Split(other, ".")
	spliced := a[0] + "." + b[1] + "." + a[2]

	_, err = svc.Verify(spliced)
	assertProblem(t, err, 401, "authorization failure")
}

func TestVerify_RejectsForeignKey(t *testing.T) {
	svc := testService(t)
	foreign := testService(t)

	signed, err := foreign.Issue(uuid.New(), []domain.Role{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(signed)
	assertProblem(t, err, 401, "authorization failure")
}

func TestVerify_RejectsWrongAlgorithm(t *testing.T) {
	svc := testService(t)

	claims := &UserClaims{
		User:  uuid.New(),
		Roles: []domain.Role{domain.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = svc.Verify(signed)
	assertProblem(t, err, 401, "authorization failure")
}

func TestVerify_RejectsMissingExpiry(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	svc := NewService(key, &key.PublicKey, TTL)

	claims := &UserClaims{
		User:  uuid.New(),
		Roles: []domain.Role{domain.RoleNormal},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodPS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = svc.Verify(signed)
	assertProblem(t, err, 401, "authorization failure")
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := testService(t)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assertProblem(t, err, 401, "authorization failure")
	}
}

func TestNewServiceFromPEM_Malformed(t *testing.T) {
	_, err := NewServiceFromPEM([]byte("not pem"), []byte("not pem"), TTL)
	assertProblem(t, err, 500, "token processing error")
}

func TestUserClaims_HasMinRole(t *testing.T) {
	cases := []struct {
		roles []domain.Role
		min   domain.Role
		want  bool
	}{
		{[]domain.Role{domain.RoleNormal}, domain.RoleNormal, true},
		{[]domain.Role{domain.RoleNormal}, domain.RoleAuthor, false},
		{[]domain.Role{domain.RoleNormal}, domain.RoleAdmin, false},
		{[]domain.Role{domain.RoleAuthor}, domain.RoleAuthor, true},
		{[]domain.Role{domain.RoleAuthor}, domain.RoleAdmin, false},
		{[]domain.Role{domain.RoleAdmin}, domain.RoleNormal, true},
		{[]domain.Role{domain.RoleAdmin}, domain.RoleAdmin, true},
		{[]domain.Role{domain.RoleNormal, domain.RoleAdmin}, domain.RoleAuthor, true},
		{nil, domain.RoleNormal, false},
	}
	for _, tc := range cases {
		c := &UserClaims{Roles: tc.roles}
		if got := c.HasMinRole(tc.min); got != tc.want {
			t.Errorf("HasMinRole(%v, %s) = %v, want %v", tc.roles, tc.min, got, tc.want)
		}
	}
}

func TestRequireMinRole(t *testing.T) {
	if err := RequireMinRole(&UserClaims{Roles: []domain.Role{domain.RoleAuthor}}, domain.RoleAuthor); err != nil {
		t.Fatalf("author should pass author guard: %v", err)
	}

	err := RequireMinRole(&UserClaims{Roles: []domain.Role{domain.RoleAuthor}}, domain.RoleAdmin)
	p := assertProblem(t, err, 401, "authorization failure")
	if p.Detail() != "Permission level too low." {
		t.Fatalf("detail = %q", p.Detail())
	}

	assertProblem(t, RequireMinRole(nil, domain.RoleNormal), 401, "authorization failure")
}
