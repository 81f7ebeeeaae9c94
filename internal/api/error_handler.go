package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quizdeck/quiz-api/internal/api/metrics"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// HeaderContentLanguage accompanies every problem response.
const HeaderContentLanguage = "Content-Language"

// NewHTTPErrorHandler returns the echo.HTTPErrorHandler that renders every
// failure as application/problem+json. This is the single point where a
// Problem crosses the boundary; it runs at most once per request.
//
// Unclassified errors are logged with their real cause and rendered as a
// generic internal problem, never leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := resolveProblem(err, log, c)
		status, body, renderErr := p.Render()
		if renderErr != nil {
			log.Error().Err(renderErr).Msg("problem body not renderable")
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}

		metrics.ProblemsRenderedTotal.WithLabelValues(strconv.Itoa(status)).Inc()

		header := c.Response().Header()
		header.Set(echo.HeaderContentType, problem.ContentType)
		header.Set(HeaderContentLanguage, "en")
		c.Response().WriteHeader(status)
		_, _ = c.Response().Write(body)
	}
}

func resolveProblem(err error, log zerolog.Logger, c echo.Context) *problem.Problem {
	// Failures already classified into the taxonomy pass through; their
	// root cause is logged here, not sent to the client.
	var p *problem.Problem
	if errors.As(err, &p) {
		if cause := p.Cause(); cause != nil {
			log.Error().
				Err(cause).
				Int("status", p.Status()).
				Str("title", p.Title()).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}
		return p
	}

	// Echo's own errors (404 from the router, 405, body limits).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return problem.NewUntyped(he.Code, strings.ToLower(http.StatusText(he.Code))).
			WithDetail(fmt.Sprintf("%v", he.Message))
	}

	// Unexpected error: log the real cause, return a generic problem.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return problem.Internal()
}
