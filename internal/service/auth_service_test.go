package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/repository"
	repoPostgres "github.com/dvfactor/dv-factor/internal/repository/postgres"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/testutil"
)

func newAuthService(t *testing.T) (*service.AuthService, *repository.Repositories, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	return service.NewAuthService(repos.User, repos.Session, cfg), repos, testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, _, testDB := newAuthService(t)
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		testDB.Truncate(t)

		result, err := authService.Register(ctx, service.RegisterInput{
			Email:    "anna@example.com",
			Password: "password123",
			FullName: "Anna Rossi",
		})
		require.NoError(t, err)

		assert.Equal(t, "anna@example.com", result.User.Email)
		assert.Equal(t, "Anna Rossi", result.User.FullName)
		assert.False(t, result.User.IsAdmin)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Register(ctx, service.RegisterInput{
			Email:    "dup@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = authService.Register(ctx, service.RegisterInput{
			Email:    "dup@example.com",
			Password: "otherpassword",
		})
		assert.ErrorIs(t, err, service.ErrEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService, _, testDB := newAuthService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Register(ctx, service.RegisterInput{
			Email:    "login@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		result, err := authService.Login(ctx, service.LoginInput{
			Email:    "login@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", result.User.Email)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Register(ctx, service.RegisterInput{
			Email:    "login@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = authService.Login(ctx, service.LoginInput{
			Email:    "login@example.com",
			Password: "wrongpassword",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Login(ctx, service.LoginInput{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _, testDB := newAuthService(t)
	ctx := context.Background()
	testDB.Truncate(t)

	result, err := authService.Register(ctx, service.RegisterInput{
		Email:    "token@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), (*claims)["sub"])

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)
}
