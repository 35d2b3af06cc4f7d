package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

func memberIDs(users []models.User) []uint64 {
	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestProjectService_CreateProject(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	project, err := env.projects.CreateProject(ctx, actorOf(alice), CreateProjectInput{
		Title:        "  P1  ",
		Description:  "first project",
		DeveloperIDs: []uint64{bob.ID, bob.ID},
		QAIDs:        []uint64{carol.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "P1", project.Title)
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	assert.True(t, project.ManagedBy(alice.ID))
	assert.NotEmpty(t, project.Code)
	assert.Equal(t, time.Now().UTC().Format(utils.DateLayout), project.StartDate.UTC().Format(utils.DateLayout))
	require.NotNil(t, project.ProjectManager)
	assert.Equal(t, alice.ID, project.ProjectManager.ID)
	assert.Equal(t, []uint64{bob.ID}, memberIDs(project.Developers))
	assert.Equal(t, []uint64{carol.ID}, memberIDs(project.QAs))
}

func TestProjectService_CreateProjectValidation(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	_, err := env.projects.CreateProject(ctx, actorOf(bob), CreateProjectInput{Title: "P1"})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = env.projects.CreateProject(ctx, actorOf(alice), CreateProjectInput{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = env.projects.CreateProject(ctx, actorOf(alice), CreateProjectInput{Title: "P1", DeveloperIDs: []uint64{carol.ID}})
	assert.ErrorIs(t, err, ErrInvalidDevelopers)

	_, err = env.projects.CreateProject(ctx, actorOf(alice), CreateProjectInput{Title: "P1", QAIDs: []uint64{bob.ID}})
	assert.ErrorIs(t, err, ErrInvalidQAs)

	_, err = env.projects.CreateProject(ctx, actorOf(alice), CreateProjectInput{Title: "P1", QAIDs: []uint64{9999}})
	assert.ErrorIs(t, err, ErrInvalidQAs)

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProjectService_ListProjectsByView(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	dana := testutil.CreateUser(t, env.db, "dana", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	p1 := testutil.CreateProject(t, env.db, "P1", alice.ID, []*models.User{bob}, []*models.User{carol})
	testutil.CreateProject(t, env.db, "P2", dana.ID, nil, nil)

	tests := []struct {
		name  string
		actor *models.User
		view  access.View
		want  []uint64
	}{
		{"manager sees own", alice, access.ViewManager, []uint64{p1.ID}},
		{"developer sees assigned", bob, access.ViewDeveloper, []uint64{p1.ID}},
		{"qa sees assigned", carol, access.ViewQA, []uint64{p1.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects, total, err := env.projects.ListProjects(ctx, actorOf(tt.actor), tt.view, utils.PaginationParams{})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			ids := make([]uint64, len(projects))
			for i, p := range projects {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, _, err := env.projects.ListProjects(ctx, actorOf(bob), access.ViewManager, utils.PaginationParams{})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestProjectService_AssignMembers(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	eve := testutil.CreateUser(t, env.db, "eve", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	p1 := testutil.CreateProject(t, env.db, "P1", alice.ID, []*models.User{bob}, []*models.User{carol})

	// Replacing developers leaves the omitted QA set untouched
	project, err := env.projects.AssignMembers(ctx, actorOf(alice), p1.ID, AssignMembersInput{
		DeveloperIDs: []uint64{eve.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{eve.ID}, memberIDs(project.Developers))
	assert.Equal(t, []uint64{carol.ID}, memberIDs(project.QAs))

	// An empty list clears the set
	project, err = env.projects.AssignMembers(ctx, actorOf(alice), p1.ID, AssignMembersInput{
		DeveloperIDs: []uint64{},
	})
	require.NoError(t, err)
	assert.Empty(t, project.Developers)
	assert.Equal(t, []uint64{carol.ID}, memberIDs(project.QAs))
}

func TestProjectService_AssignMembersErrors(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	dana := testutil.CreateUser(t, env.db, "dana", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	p1 := testutil.CreateProject(t, env.db, "P1", alice.ID, []*models.User{bob}, nil)

	_, err := env.projects.AssignMembers(ctx, actorOf(dana), p1.ID, AssignMembersInput{DeveloperIDs: []uint64{}})
	assert.ErrorIs(t, err, ErrNotProjectManager)

	_, err = env.projects.AssignMembers(ctx, actorOf(alice), 9999, AssignMembersInput{})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = env.projects.AssignMembers(ctx, actorOf(alice), p1.ID, AssignMembersInput{DeveloperIDs: []uint64{carol.ID}})
	assert.ErrorIs(t, err, ErrInvalidDevelopers)

	_, err = env.projects.AssignMembers(ctx, actorOf(bob), p1.ID, AssignMembersInput{})
	assert.ErrorIs(t, err, access.ErrForbidden)

	// Failed calls left the developer set alone
	project, err := env.projects.AssignMembers(ctx, actorOf(alice), p1.ID, AssignMembersInput{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{bob.ID}, memberIDs(project.Developers))
}

func TestProjectService_DeleteProjectCascades(t *testing.T) {
	env := setupServicesTestEnv(t, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice", models.RoleProjectManager)
	dana := testutil.CreateUser(t, env.db, "dana", models.RoleProjectManager)
	bob := testutil.CreateUser(t, env.db, "bob", models.RoleDeveloper)
	carol := testutil.CreateUser(t, env.db, "carol", models.RoleQA)

	p1 := testutil.CreateProject(t, env.db, "P1", alice.ID, []*models.User{bob}, []*models.User{carol})
	testutil.CreateTask(t, env.db, "T1", p1.ID, alice.ID)
	testutil.CreateBug(t, env.db, "B1", p1.ID, carol.ID, nil)

	err := env.projects.DeleteProject(ctx, actorOf(dana), p1.ID)
	assert.ErrorIs(t, err, ErrNotProjectManager)

	require.NoError(t, env.projects.DeleteProject(ctx, actorOf(alice), p1.ID))

	for _, model := range []interface{}{&models.Project{}, &models.Task{}, &models.Bug{}} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	var members int64
	require.NoError(t, env.db.Table("project_developers").Count(&members).Error)
	assert.Zero(t, members)

	err = env.projects.DeleteProject(ctx, actorOf(alice), p1.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
