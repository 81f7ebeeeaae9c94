package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quiz-api/internal/api/metrics"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// AuthCookieName is the transport credential carrying the signed token.
const AuthCookieName = "jwt_auth"

const claimsContextKey = "auth_claims"

// NewAuthCookie wraps a signed token string in the session cookie. The
// cookie is the only place transport code touches the token; its value
// stays opaque to everything but the token service.
func NewAuthCookie(signed string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Secure:   true,
		HttpOnly: true,
	}
}

// Auth extracts the session cookie, verifies it exactly once and caches the
// claims in the request context for the remainder of handling.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return problem.AuthorizationFailure("Couldn't extract auth token from cookie.")
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims cached by Auth for this request.
func ClaimsFrom(c echo.Context) (*token.UserClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*token.UserClaims)
	return claims, ok
}

func verifyResult(err error) string {
	var p *problem.Problem
	if errors.As(err, &p) && p.Status() == http.StatusBadRequest {
		return "expired"
	}
	return "rejected"
}
