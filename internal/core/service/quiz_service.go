package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/ports"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// QuizService implements quiz authoring. Every mutation applies the role
// guard before any storage round-trip.
type QuizService struct {
	quizzes ports.QuizRepository
	audit   ports.AuditRecorder
	logger  zerolog.Logger
}

func NewQuizService(quizzes ports.QuizRepository, audit ports.AuditRecorder, logger zerolog.Logger) *QuizService {
	return &QuizService{quizzes: quizzes, audit: audit, logger: logger}
}

// Create stores a new quiz authored by the caller. Requires at least the
// Author role; the authenticated identity always becomes the quiz owner.
func (s *QuizService) Create(ctx context.Context, claims *token.UserClaims, quiz *domain.Quiz) (*domain.Quiz, error) {
	if err := token.RequireMinRole(claims, domain.RoleAuthor); err != nil {
		return nil, err
	}

	quiz.ID = uuid.New()
	quiz.Author = claims.User
	quiz.CreatedAt = time.Now().UTC()

	if err := s.quizzes.Insert(ctx, quiz); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ID:      uuid.New(),
		Actor:   claims.User,
		Action:  domain.AuditQuizCreated,
		Subject: quiz.ID.String(),
		At:      time.Now().UTC(),
	})

	return quiz, nil
}

// Get fetches a quiz by id. No role is required to read.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*domain.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return nil, problem.NotFound().
			WithDetail("Quiz doesn't exist.").
			WithField("id", id.String())
	} else if err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes a quiz. Only the quiz's owner or an Admin may delete it;
// the role guard runs first so non-authors never reach storage.
func (s *QuizService) Delete(ctx context.Context, claims *token.UserClaims, id uuid.UUID) error {
	if err := token.RequireMinRole(claims, domain.RoleAuthor); err != nil {
		return err
	}

	quiz, err := s.quizzes.FindByID(ctx, id)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return problem.NotFound().
			WithDetail("Quiz doesn't exist.").
			WithField("id", id.String())
	} else if err != nil {
		return err
	}

	if !claims.HasMinRole(domain.RoleAdmin) && !quiz.OwnedBy(claims.User) {
		return problem.AuthorizationFailure("Quiz not owned by user.")
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ID:      uuid.New(),
		Actor:   claims.User,
		Action:  domain.AuditQuizDeleted,
		Subject: id.String(),
		At:      time.Now().UTC(),
	})

	return nil
}
