package auth

import (
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

type jwtTokens struct {
	secret []byte
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using the given secret.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtTokens{secret: []byte(secret)}
}

// NewJWTVerifier returns a TokenVerifier for tokens signed by NewJWTIssuer with the same secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtTokens{secret: []byte(secret)}
}

func (j *jwtTokens) Issue(username string, role domain.Role, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (j *jwtTokens) Verify(tokenString string) (string, domain.Role, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return "", "", errors.New("invalid token: missing subject")
	}
	role, ok := domain.ParseRole(string(claims.Role))
	if !ok {
		return "", "", fmt.Errorf("invalid token: unknown role %q", claims.Role)
	}
	return claims.Subject, role, nil
}
