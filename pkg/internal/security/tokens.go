package security

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenReader verifies actor tokens issued by the credential service and
// extracts the authenticated account ID. This service never issues tokens and
// never re-derives identity beyond this check.
type TokenReader struct {
	secret []byte
}

func NewTokenReader(secret string) (*TokenReader, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("actor token secret is not configured")
	}
	return &TokenReader{secret: []byte(secret)}, nil
}

func (v *TokenReader) ReadActor(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("unable to parse actor token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid actor token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("actor token has no subject: %v", err)
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("actor token subject is not an account id: %v", err)
	}

	return uint(id), nil
}
