package service_test

import (
	"context"
	"testing"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/service"
	"github.com/coursify/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	authService := services.Auth
	ctx := context.Background()

	validInput := func() service.SignupInput {
		return service.SignupInput{
			Username:  "newuser",
			FirstName: "New",
			LastName:  "User",
			Email:     "newuser@example.com",
			Password:  "password123",
			Role:      domain.RoleStudent,
		}
	}

	tests := []struct {
		name    string
		input   func() service.SignupInput
		setup   func()
		wantErr error
	}{
		{
			name:  "successful registration",
			input: validInput,
		},
		{
			name: "instructor registration",
			input: func() service.SignupInput {
				in := validInput()
				in.Role = domain.RoleInstructor
				return in
			},
		},
		{
			name:  "duplicate email",
			input: validInput,
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("newuser@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name:  "duplicate username",
			input: validInput,
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("newuser").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUsernameTaken,
		},
		{
			name: "admin role rejected",
			input: func() service.SignupInput {
				in := validInput()
				in.Role = domain.RoleAdmin
				return in
			},
			wantErr: domain.ErrAdminSignup,
		},
		{
			name: "unknown role rejected",
			input: func() service.SignupInput {
				in := validInput()
				in.Role = domain.Role("SUPERUSER")
				return in
			},
			wantErr: domain.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			var before int64
			require.NoError(t, testDB.DB.Model(&domain.User{}).Count(&before).Error)

			user, err := authService.Signup(ctx, tt.input())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				// A rejected signup must not have written anything.
				var after int64
				require.NoError(t, testDB.DB.Model(&domain.User{}).Count(&after).Error)
				assert.Equal(t, before, after)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, tt.input().Email, user.Email)
			assert.NotEqual(t, tt.input().Password, user.HashedPassword)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	authService := services.Auth
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{Email: user.Email, Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Email: user.Email, Password: "wrongpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown email",
			input:   service.LoginInput{Email: "nobody@example.com", Password: rawPassword},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	authService := services.Auth
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("refresh@example.com").
		Build(t, testDB.DB)

	login, err := authService.Login(ctx, service.LoginInput{Email: user.Email, Password: rawPassword})
	require.NoError(t, err)

	result, err := authService.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	// An access token cannot stand in for a refresh token.
	_, err = authService.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Without rotation the original refresh token stays usable.
	again, err := authService.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, again.AccessToken)
}
