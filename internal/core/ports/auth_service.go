package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdeck/quiz-api/internal/core/domain"
)

// AuthService covers account lifecycle and login. Register and Login return
// the user together with a freshly signed session token; the transport
// layer decides where the token string lives (the auth cookie).
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
