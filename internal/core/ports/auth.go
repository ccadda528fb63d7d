package ports

import (
	"context"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

// Claims are the identity attributes carried in an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// SignupInput carries the data needed to create a user account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// TokenVerifier validates an access token and returns its claims.
// Verification is stateless: the same token yields the same claims for the
// whole validity window.
type TokenVerifier interface {
	VerifyToken(token string) (*Claims, error)
}

// AuthService implements signup, signin, and token handling.
type AuthService interface {
	TokenVerifier
	// Signup creates a user and returns a signed token for it.
	Signup(ctx context.Context, in SignupInput) (string, error)
	// Signin returns a signed token. Unknown email and wrong password are
	// indistinguishable to the caller.
	Signin(ctx context.Context, email, password string) (string, error)
	// Profile returns the user identified by id.
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// AuthRepository defines persistence for user accounts.
type AuthRepository interface {
	// Create inserts a user. A duplicate email returns domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
