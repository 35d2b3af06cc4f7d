package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
)

func TestAuthService_RegisterThenGetUser(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{
		Name:     "Bob",
		Username: "bob",
		Email:    "bob@example.com",
		Password: "supersecret",
		Role:     models.RoleDeveloper,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	me, err := env.auth.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", me.Username)
	assert.Equal(t, "Bob", me.Name)
	assert.Equal(t, models.RoleDeveloper, me.PrimaryRole())
}

func TestAuthService_RegisterReusesRoleGroup(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	for _, username := range []string{"qa1", "qa2"} {
		_, err := env.auth.Register(ctx, RegisterInput{
			Name:     username,
			Username: username,
			Password: "supersecret",
			Role:     models.RoleQA,
		})
		require.NoError(t, err)
	}

	var groups int64
	require.NoError(t, env.db.Model(&models.Group{}).Where("name = ?", models.RoleQA).Count(&groups).Error)
	assert.Equal(t, int64(1), groups)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Name: "A", Username: "taken", Password: "supersecret", Role: models.RoleQA})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"duplicate username", RegisterInput{Name: "B", Username: "taken", Password: "supersecret", Role: models.RoleQA}, ErrUsernameTaken},
		{"short password", RegisterInput{Name: "C", Username: "short", Password: "short", Role: models.RoleQA}, ErrPasswordTooShort},
		{"unknown role", RegisterInput{Name: "D", Username: "admin", Password: "supersecret", Role: "Admin"}, ErrInvalidRole},
		{"blank username", RegisterInput{Name: "E", Username: "  ", Password: "supersecret", Role: models.RoleQA}, ErrUsernameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	user := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)

	pair, err := env.auth.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	claims, err := env.tokens.Parse(pair.Access, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleProjectManager}, claims.Roles)

	accessToken, err := env.auth.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)

	refreshed, err := env.tokens.Parse(accessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	id, err := refreshed.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = env.auth.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)

	_, err := env.auth.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, LoginInput{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshForDeletedUser(t *testing.T) {
	env := setupServicesTestEnv(t, nil)

	pair, err := env.tokens.IssuePair(999, nil)
	require.NoError(t, err)

	_, err = env.auth.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ListUsersByRole(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	pm := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	dev := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	qa := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	developers, err := env.auth.ListUsersByRole(ctx, actorOf(pm), models.RoleDeveloper)
	require.NoError(t, err)
	require.Len(t, developers, 1)
	assert.Equal(t, dev.ID, developers[0].ID)

	qas, err := env.auth.ListUsersByRole(ctx, actorOf(pm), models.RoleQA)
	require.NoError(t, err)
	require.Len(t, qas, 1)
	assert.Equal(t, qa.ID, qas[0].ID)

	_, err = env.auth.ListUsersByRole(ctx, actorOf(dev), models.RoleQA)
	assert.ErrorIs(t, err, access.ErrForbidden)
}
