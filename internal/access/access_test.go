package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
)

func TestActor_Authorize(t *testing.T) {
	qa := access.Actor{UserID: 1, Roles: []models.Role{models.RoleQA}}

	assert.NoError(t, qa.Authorize(access.ViewQA))
	assert.NoError(t, qa.Authorize(access.ViewQAReported))
	assert.ErrorIs(t, qa.Authorize(access.ViewManager), access.ErrForbidden)
	assert.ErrorIs(t, qa.Authorize(access.ViewDeveloper), access.ErrForbidden)
	assert.ErrorIs(t, qa.Authorize("admin"), access.ErrForbidden)

	nobody := access.Actor{UserID: 2}
	assert.ErrorIs(t, nobody.Require(models.RoleDeveloper), access.ErrForbidden)
}

func TestView_Role(t *testing.T) {
	tests := map[access.View]models.Role{
		access.ViewManager:    models.RoleProjectManager,
		access.ViewDeveloper:  models.RoleDeveloper,
		access.ViewQA:         models.RoleQA,
		access.ViewQAReported: models.RoleQA,
		"unknown":             "",
	}

	for view, want := range tests {
		assert.Equal(t, want, view.Role(), string(view))
	}
}

func TestProjectScope_Membership(t *testing.T) {
	db := testutil.NewTestDB(t)

	alice := testutil.CreateUser(t, db, "alice", models.RoleProjectManager)
	bob := testutil.CreateUser(t, db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, db, "carol", models.RoleQA)
	p1 := testutil.CreateProject(t, db, "P1", alice.ID, []*models.User{bob}, nil)
	p2 := testutil.CreateProject(t, db, "P2", alice.ID, nil, []*models.User{carol})

	tests := []struct {
		name  string
		actor access.Actor
		view  access.View
		want  []uint64
	}{
		{"manager", access.Actor{UserID: alice.ID}, access.ViewManager, []uint64{p1.ID, p2.ID}},
		{"developer", access.Actor{UserID: bob.ID}, access.ViewDeveloper, []uint64{p1.ID}},
		{"qa", access.Actor{UserID: carol.ID}, access.ViewQA, []uint64{p2.ID}},
		{"developer under qa view", access.Actor{UserID: bob.ID}, access.ViewQA, []uint64{}},
		{"unknown view", access.Actor{UserID: alice.ID}, "admin", []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []uint64{}
			err := db.Model(&models.Project{}).
				Scopes(access.ProjectScope(tt.actor, tt.view)).
				Order("projects.id").
				Pluck("projects.id", &ids).Error
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}
