package ports

import (
	"context"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// AuthService orchestrates registration, login and identity lookup.
type AuthService interface {
	// Register creates an account. The returned user never carries the
	// password hash.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and issues a token. Unknown email and
	// wrong password produce the identical error.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me resolves the authenticated user by id (sanitized).
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// TokenIssuer mints signed, time-limited identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier checks a bearer token and extracts the user id. It fails
// closed: any malformed, expired or badly signed token yields ok=false.
type TokenVerifier interface {
	Verify(token string) (userID string, ok bool)
}

// LoginThrottle limits repeated failed logins per account identifier.
type LoginThrottle interface {
	// Blocked reports whether further attempts for key should be rejected.
	Blocked(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt for key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, key string) error
}
