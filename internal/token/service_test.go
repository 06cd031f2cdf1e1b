package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/testutil"
	"github.com/coursify/marketplace-api/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidateAccess(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	tokens := services.Tokens
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("issuer").
		WithRole(domain.RoleInstructor).
		Build(t, testDB.DB)

	accessToken, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	validated, err := tokens.ValidateAccess(ctx, accessToken)
	require.NoError(t, err)

	assert.Equal(t, user.ID, validated.ID)
	assert.Equal(t, user.Username, validated.Username)
	assert.Equal(t, user.Role, validated.Role)
}

func TestTokenService_ValidateAccess_Failures(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	tokens := services.Tokens
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	expired := func() string {
		encoded, err := tokens.Codec().Encode(&token.Claims{
			Kind: token.KindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.Email,
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
			},
		})
		require.NoError(t, err)
		return encoded
	}()

	forged := func() string {
		encoded, err := token.NewCodec("some-other-key").Encode(&token.Claims{
			Kind: token.KindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.Email,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		require.NoError(t, err)
		return encoded
	}()

	refreshToken, err := tokens.IssueRefreshToken(user)
	require.NoError(t, err)

	unknownSubject := func() string {
		encoded, err := tokens.Codec().Encode(&token.Claims{
			Kind: token.KindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "nobody@example.com",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		require.NoError(t, err)
		return encoded
	}()

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "forged signature", token: forged},
		{name: "refresh token used as access", token: refreshToken},
		{name: "subject no longer exists", token: unknownSubject},
		{name: "garbage", token: "not-a-token"},
	}

	// Every failure mode collapses to the same unauthorized error.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.ValidateAccess(ctx, tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestTokenService_RefreshTokenCarriesNoClaims(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	tokens := services.Tokens

	user, _ := testutil.NewUserBuilder().
		WithRole(domain.RoleInstructor).
		Build(t, testDB.DB)

	refreshToken, err := tokens.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := tokens.Codec().Decode(refreshToken)
	require.NoError(t, err)

	assert.Equal(t, token.KindRefresh, claims.Kind)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Empty(t, claims.Role)
	assert.Zero(t, claims.UserID)
	assert.Empty(t, claims.Username)
}

func TestTokenService_SubjectOf(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	tokens := services.Tokens

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	refreshToken, err := tokens.IssueRefreshToken(user)
	require.NoError(t, err)

	subject, err := tokens.SubjectOf(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.Email, subject)

	// An access token is not accepted where a refresh token is expected.
	accessToken, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	_, err = tokens.SubjectOf(accessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
