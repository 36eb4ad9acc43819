package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the full Identity projection inside the token so that
// authenticated requests never need a storage round trip. The projection is
// frozen at issuance; role or attribute changes after login do not take
// effect until a new token is issued.
type Claims struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`

	Department string `json:"department,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	FacultyID  string `json:"facultyId,omitempty"`
	Course     string `json:"course,omitempty"`
	Branch     string `json:"branch,omitempty"`

	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewTokenIssuer(secret string, expiry time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Issue signs a self-contained HS256 token embedding the identity projection.
// There is no revocation; expiry is the only bound on token lifetime.
func (m *TokenIssuer) Issue(identity Identity) (string, time.Time, error) {
	if identity.ID == "" || identity.Role == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	now := time.Now()
	expiresAt := now.Add(m.expiry)
	claims := &Claims{
		Username:   identity.Username,
		Email:      identity.Email,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Role:       identity.Role,
		Department: identity.Department,
		StudentID:  identity.StudentID,
		FacultyID:  identity.FacultyID,
		Course:     identity.Course,
		Branch:     identity.Branch,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and reconstructs the Identity embedded
// at issuance.
func (m *TokenIssuer) Verify(tokenString string) (Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Identity{}, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:         claims.Subject,
		Username:   claims.Username,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Role:       claims.Role,
		Department: claims.Department,
		StudentID:  claims.StudentID,
		FacultyID:  claims.FacultyID,
		Course:     claims.Course,
		Branch:     claims.Branch,
	}, nil
}

func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}
