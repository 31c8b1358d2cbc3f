package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
)

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle // optional, nil disables throttling
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, logger: logger}
}

// Register creates a new account. The unique-email constraint is checked
// up front and again enforced by the repository, so a concurrent duplicate
// still surfaces as ErrEmailTaken. The returned user carries no hash.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Sanitized(), nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the identical ErrInvalidCredentials so accounts cannot
// be enumerated. Failed attempts are counted against a per-email throttle.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if blocked := s.throttled(ctx, email); blocked {
		return "", nil, domain.ErrTooManyLoginAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user.Sanitized(), nil
}

// Me resolves the authenticated user by id. Returns ErrUserNotFound when
// the account has been deleted since the token was issued.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// throttled consults the throttle, failing open when it errors: a broken
// Redis must not lock every account out.
func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}
