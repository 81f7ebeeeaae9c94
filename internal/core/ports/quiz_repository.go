package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
)

// QuizRepository defines quiz persistence. Absence is reported as
// domain.ErrQuizNotFound.
type QuizRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Quiz, error)
	Insert(ctx context.Context, quiz *domain.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
}
