package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// RequireMinRole rejects requests whose verified claims do not reach the
// minimum role. Must run after Auth; a missing claims entry means the
// request never passed extraction.
func RequireMinRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return problem.AuthorizationFailure("Missing authentication claims.")
			}
			if err := token.RequireMinRole(claims, min); err != nil {
				return err
			}
			return next(c)
		}
	}
}
