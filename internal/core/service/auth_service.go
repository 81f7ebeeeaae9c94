package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/ports"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

const (
	minUsernameLen = 5
	maxUsernameLen = 32
	minPasswordLen = 8
	// bcrypt truncates input past 72 bytes; the original client contract
	// caps passwords well below that.
	maxPasswordLen = 50
)

// AuthService implements registration, login and user lookup/removal.
type AuthService struct {
	users   ports.UserRepository
	tokens  *token.Service
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	admins  map[string]struct{}
	logger  zerolog.Logger
}

// NewAuthService wires the auth service. adminUsernames lists accounts that
// are promoted to Admin at registration time.
func NewAuthService(
	users ports.UserRepository,
	tokens *token.Service,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	adminUsernames []string,
	logger zerolog.Logger,
) *AuthService {
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, name := range adminUsernames {
		admins[name] = struct{}{}
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		limiter: limiter,
		audit:   audit,
		admins:  admins,
		logger:  logger,
	}
}

func badUsername(username, detail string) *problem.Problem {
	return problem.NewUntyped(http.StatusBadRequest, "bad username").
		WithDetail(detail).
		WithField("username", username)
}

func badPassword(detail string) *problem.Problem {
	return problem.NewUntyped(http.StatusBadRequest, "bad password").
		WithDetail(detail)
}

func validateCredentials(username, password string) error {
	if len(username) < minUsernameLen {
		return badUsername(username, "Username must be at least 5 characters long.")
	}
	if len(username) > maxUsernameLen {
		return badUsername(username, "Username can't be longer than 32 characters.")
	}
	if len(password) < minPasswordLen {
		return badPassword("Password must be at least 8 characters long.")
	}
	if len(password) > maxPasswordLen {
		return badPassword("Passwords longer than 50 characters can't be hashed properly.")
	}
	return nil
}

// Register creates a user with the Normal role (plus Admin when the
// username is on the promotion list), then issues a session token carrying
// the role snapshot.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, "", err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", badUsername(username, "User with that username already exists.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", badPassword("Password could not be hashed.")
	}

	roles := []domain.Role{domain.RoleNormal}
	if _, promoted := s.admins[username]; promoted {
		roles = append(roles, domain.RoleAdmin)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("creating user")

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, "", err
	}

	s.audit.Record(domain.AuditEvent{
		ID:     uuid.New(),
		Actor:  user.ID,
		Action: domain.AuditUserRegistered,
		At:     time.Now().UTC(),
	})

	return user, signed, nil
}

// Login verifies the password against the stored hash and issues a fresh
// session token. Failed attempts are rate-limited per username; limiter
// outages fail open so Redis downtime cannot lock everyone out.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if blocked, err := s.limiter.TooManyFailures(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
	} else if blocked {
		return nil, "", problem.AuthorizationFailure("Too many failed login attempts.")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", problem.AuthorizationFailure("Invalid username or password.")
	} else if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		}
		return nil, "", problem.AuthorizationFailure("Invalid username or password.")
	}

	signed, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, "", err
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
	}

	s.audit.Record(domain.AuditEvent{
		ID:     uuid.New(),
		Actor:  user.ID,
		Action: domain.AuditUserLoggedIn,
		At:     time.Now().UTC(),
	})

	return user, signed, nil
}

// GetUser fetches a user record by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, problem.NotFound().
			WithDetail("User doesn't exist.").
			WithField("id", id.String())
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and returns the removed record.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindOneAndDelete(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, problem.NotFound().
			WithDetail("User doesn't exist.").
			WithField("id", id.String())
	} else if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ID:      uuid.New(),
		Actor:   user.ID,
		Action:  domain.AuditUserDeleted,
		Subject: user.ID.String(),
		At:      time.Now().UTC(),
	})

	return user, nil
}
