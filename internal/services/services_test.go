package services

import (
	"context"
	"testing"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
	"gorm.io/gorm"
)

type servicesTestEnv struct {
	db       *gorm.DB
	tokens   *TokenService
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
	bugs     *BugService
}

func setupServicesTestEnv(t *testing.T, generator TaskDraftGenerator) servicesTestEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	bugRepo := repository.NewBugRepository(db)

	tokens := NewTokenService("test-secret", 15*time.Minute, time.Hour)

	return servicesTestEnv{
		db:       db,
		tokens:   tokens,
		auth:     NewAuthService(userRepo, tokens),
		projects: NewProjectService(projectRepo, userRepo),
		tasks:    NewTaskService(taskRepo, projectRepo, userRepo, generator),
		bugs:     NewBugService(bugRepo, projectRepo, userRepo),
	}
}

func actorOf(u *models.User) access.Actor {
	return access.Actor{UserID: u.ID, Roles: u.RoleNames()}
}

type fakeGenerator struct {
	drafts []GeneratedTask
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateTaskDrafts(ctx context.Context, projectTitle, text string) ([]GeneratedTask, error) {
	f.calls++
	return f.drafts, f.err
}
