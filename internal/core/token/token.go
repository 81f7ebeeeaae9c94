// Package token issues and verifies the signed, role-carrying session
// tokens every authenticated request depends on.
package token

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// TTL is the fixed validity window of a session token.
const TTL = 7 * 24 * time.Hour

// UserClaims is the payload of a session token: the user's identity and a
// snapshot of the roles held at issuance time. Roles are not looked up live
// on later requests, so a revocation or downgrade takes effect only once
// the token expires (up to one week). That trade-off is deliberate: there
// is no server-side session state to keep available or consistent.
type UserClaims struct {
	User  uuid.UUID     `json:"user"`
	Roles []domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry exactly the given role.
func (c *UserClaims) HasRole(role domain.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasMinRole reports whether any carried role is at least min under the
// role order.
func (c *UserClaims) HasMinRole(min domain.Role) bool {
	for _, r := range c.Roles {
		if r.AtLeast(min) {
			return true
		}
	}
	return false
}

// RequireMinRole is the guard every privileged operation applies before
// touching storage. It returns nil or an authorization-failure Problem.
func RequireMinRole(claims *UserClaims, min domain.Role) error {
	if claims == nil || !claims.HasMinRole(min) {
		return problem.AuthorizationFailure("Permission level too low.")
	}
	return nil
}

// Service issues and verifies PS256-signed session tokens. The signing and
// verification keys are distinct artifacts loaded once at process start and
// never rotated at runtime; rotating requires a redeploy.
type Service struct {
	signKey   *rsa.PrivateKey
	verifyKey *rsa.PublicKey
	ttl       time.Duration
	now       func() time.Time
}

// NewService builds a token Service around an RSA key pair. A non-positive
// ttl falls back to TTL.
func NewService(signKey *rsa.PrivateKey, verifyKey *rsa.PublicKey, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Service{
		signKey:   signKey,
		verifyKey: verifyKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

// NewServiceFromPEM parses PEM-encoded key material. Malformed keys are a
// fatal startup condition.
func NewServiceFromPEM(signPEM, verifyPEM []byte, ttl time.Duration) (*Service, error) {
	signKey, err := jwt.ParseRSAPrivateKeyFromPEM(signPEM)
	if err != nil {
		return nil, problem.FromSigning(err)
	}
	verifyKey, err := jwt.ParseRSAPublicKeyFromPEM(verifyPEM)
	if err != nil {
		return nil, problem.FromSigning(err)
	}
	return NewService(signKey, verifyKey, ttl), nil
}

// Issue signs a claims payload for the user with issued-at now and expiry
// now plus the validity window. The roles slice is snapshotted as-is.
func (s *Service) Issue(userID uuid.UUID, roles []domain.Role) (string, error) {
	now := s.now().UTC()
	claims := &UserClaims{
		User:  userID,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodPS256, claims).SignedString(s.signKey)
	if err != nil {
		return "", problem.FromSigning(err)
	}
	return signed, nil
}

// Verify checks the signature under the verification key and the expected
// algorithm, then the expiry. Failures surface as either an
// expired-credential or a generic authorization-failure Problem; no finer
// sub-cause is exposed to the caller.
func (s *Service) Verify(tokenString string) (*UserClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &UserClaims{},
		func(*jwt.Token) (any, error) { return s.verifyKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodPS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)
	if err != nil {
		return nil, problem.FromVerification(err)
	}

	claims, ok := parsed.Claims.(*UserClaims)
	if !ok || !parsed.Valid {
		return nil, problem.FromVerification(jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}
