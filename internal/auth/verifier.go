package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/campushub/server/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdminOverride is the environment-configured administrator account. When
// Email and Password are both set, a matching login short-circuits the user
// store and yields a synthetic admin identity with no backing document.
type AdminOverride struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

func (a AdminOverride) enabled() bool {
	return a.Email != "" && a.Password != ""
}

type Verifier struct {
	users storage.UserRepository
	admin AdminOverride
}

func NewVerifier(users storage.UserRepository, admin AdminOverride) *Verifier {
	return &Verifier{users: users, admin: admin}
}

// Verify checks a submitted credential pair: first against the environment
// admin (case-insensitive email, byte-for-byte password), then against a
// persisted user's bcrypt hash. It fails closed with ErrInvalidCredentials
// for unknown email and wrong password alike, so the response never reveals
// which part was wrong.
func (v *Verifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrMissingCredentials
	}

	if identity, ok := v.verifyEnvAdmin(email, password); ok {
		return identity, nil
	}

	user, err := v.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return IdentityFromUser(user), nil
}

func (v *Verifier) verifyEnvAdmin(email, password string) (Identity, bool) {
	if !v.admin.enabled() {
		return Identity{}, false
	}
	if !strings.EqualFold(email, v.admin.Email) {
		return Identity{}, false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.admin.Password)) != 1 {
		return Identity{}, false
	}

	return Identity{
		ID:        EnvAdminID,
		Username:  defaultString(v.admin.Username, "admin"),
		Email:     v.admin.Email,
		FirstName: defaultString(v.admin.FirstName, "Admin"),
		LastName:  defaultString(v.admin.LastName, "User"),
		Role:      string(RoleAdmin),
	}, true
}

// IdentityFromUser projects a stored user into the token-embeddable identity.
// The password hash is deliberately absent.
func IdentityFromUser(user *storage.User) Identity {
	return Identity{
		ID:         user.ID.Hex(),
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		Department: user.Department,
		StudentID:  user.StudentID,
		FacultyID:  user.FacultyID,
		Course:     user.Course,
		Branch:     user.Branch,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
