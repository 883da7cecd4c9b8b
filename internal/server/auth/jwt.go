package auth

import (
	"errors"
	"time"

	"gastor/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claim set; the subject is the user's
// lowercased email.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the given subject, expiring
// validityDuration from now.
func IssueToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SubjectFromToken verifies signature and expiry and returns the subject
// claim. Failures come back as the distinct token sentinels from
// internal/common so callers can log the precise reason while still mapping
// every one of them to an unauthorized outcome.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrTokenBadSignature
		default:
			return "", common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return "", common.ErrTokenMalformed
	}

	if claims.Subject == "" {
		return "", common.ErrTokenNoSubject
	}

	return claims.Subject, nil
}
