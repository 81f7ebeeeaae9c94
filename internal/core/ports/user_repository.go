package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
)

// UserRepository defines user persistence. Absence is reported as
// domain.ErrUserNotFound; driver failures come back already classified as
// Problems by the implementation.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	// FindOneAndDelete removes the user and returns the removed record.
	FindOneAndDelete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
