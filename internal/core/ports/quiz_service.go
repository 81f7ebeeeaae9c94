package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/token"
)

// QuizService covers authoring operations. Mutations take the caller's
// verified claims and apply the role guard before touching storage.
type QuizService interface {
	Create(ctx context.Context, claims *token.UserClaims, quiz *domain.Quiz) (*domain.Quiz, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Quiz, error)
	Delete(ctx context.Context, claims *token.UserClaims, id uuid.UUID) error
}
