package auth

import (
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("robotics-club", domain.RoleOrganiser, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "robotics-club", claims.Subject)
	assert.Equal(t, domain.RoleOrganiser, claims.Role)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("s3cret")
	verifier := NewJWTVerifier("s3cret")

	token, err := issuer.Issue("alice", domain.RoleParticipant, time.Hour)
	require.NoError(t, err)

	username, role, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, domain.RoleParticipant, role)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	issuer := NewJWTIssuer("s3cret")
	verifier := NewJWTVerifier("s3cret")

	expired, err := issuer.Issue("alice", domain.RoleParticipant, -time.Minute)
	require.NoError(t, err)
	otherKey, err := NewJWTIssuer("other").Issue("alice", domain.RoleParticipant, time.Hour)
	require.NoError(t, err)
	badRole, err := issuer.Issue("alice", domain.Role("admin"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong key", otherKey},
		{"unknown role", badRole},
		{"garbage", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := verifier.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}
