package handler

import (
	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/problem"
)

// ParseID converts a textual path parameter into a typed identifier. The
// offending text travels as a diagnostic field so clients can inspect it
// without string-parsing the detail.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, problem.Parse().
			WithDetail("UUID parsing failed.").
			WithField("parsed", raw).
			WithCause(err)
	}
	return id, nil
}
