package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"instakilo/app/apperrors"
)

// Authenticator maps an opaque credential to a subject id, or rejects it.
// Any returned error means the request must not proceed.
type Authenticator interface {
	Verify(token string) (string, error)
}

// JWTAuthenticator verifies HS256-signed access tokens. The issuer and the
// token_use claim are checked before the subject is accepted.
type JWTAuthenticator struct {
	secret []byte
	issuer string
}

func NewJWTAuthenticator(secret []byte, issuer string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, issuer: issuer}
}

func (a *JWTAuthenticator) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperrors.AuthInvalid("")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.AuthInvalid("")
	}
	if iss, _ := claims["iss"].(string); iss != a.issuer {
		return "", apperrors.AuthInvalid("Invalid Issuer")
	}
	if use, _ := claims["token_use"].(string); use != "access" {
		return "", apperrors.AuthInvalid("Not an access token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", apperrors.AuthInvalid("")
	}
	return sub, nil
}

// Issue signs an access token for the given subject. Used by local
// deployments and tests; production tokens normally come from the identity
// provider.
func (a *JWTAuthenticator) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       subject,
		"iss":       a.issuer,
		"token_use": "access",
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, nil
}
