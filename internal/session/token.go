package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sgip/internal/domain"
	dErrors "sgip/pkg/domain-errors"
)

// sessionTTL bounds how long a persisted session record stays valid
// across restarts.
const sessionTTL = 24 * time.Hour

type sessionClaims struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Parish string `json:"parish"`
	jwt.RegisteredClaims
}

// mintToken signs a session token for the user. The token rides inside
// the persisted session record; verification on restore rejects tampered
// or expired records.
func (m *Manager) mintToken(user domain.User) (string, error) {
	now := m.clock()
	claims := sessionClaims{
		Name:   user.FullName,
		Role:   string(user.Role),
		Parish: user.ParishName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return token, nil
}

func (m *Manager) verifyToken(token string) error {
	if token == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "session record has no token")
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return m.signingKey, nil
	}, jwt.WithTimeFunc(m.clock))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid session token")
	}
	if !parsed.Valid {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	return nil
}
