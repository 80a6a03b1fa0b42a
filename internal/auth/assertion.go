package auth

import (
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// AssertionClaims is the payload of the sign-in assertion minted by the
// identity provider after federated sign-in. The subject is the provider's
// stable user identifier and the email is already verified by the provider.
type AssertionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// ParseAssertion validates an identity-provider assertion against the shared
// secret and returns its claims.
func ParseAssertion(secret []byte, assertion string) (*AssertionClaims, error) {
	parsed, err := jwt.ParseWithClaims(assertion, &AssertionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*AssertionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid assertion claims")
	}
	if claims.Subject == "" || strings.TrimSpace(claims.Email) == "" {
		return nil, errors.New("assertion missing subject or email")
	}
	return claims, nil
}
