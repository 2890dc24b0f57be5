package repository_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"members-service/internal/model"
	"members-service/internal/repository"
	"members-service/internal/service"
)

// Контейнер с PostgreSQL поднимается один раз на пакет.
// С -short или без Docker тесты пропускаются.

var (
	testDB   *repository.Postgres
	skipNote string
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipNote = "postgres tests are skipped in -short mode"
		os.Exit(m.Run())
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "members_test",
			"POSTGRES_USER":     "test_user",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		skipNote = fmt.Sprintf("postgres container is unavailable: %s", err)
		os.Exit(m.Run())
	}

	code := runWithContainer(ctx, m, container)
	if err := container.Terminate(ctx); err != nil {
		log.Printf("terminate container: %s", err)
	}
	os.Exit(code)
}

func runWithContainer(ctx context.Context, m *testing.M, container testcontainers.Container) int {
	host, err := container.Host(ctx)
	if err != nil {
		log.Printf("failed to get host: %s", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Printf("failed to get port: %s", err)
		return 1
	}

	dsn := fmt.Sprintf("postgres://test_user:test_password@%s:%s/members_test?sslmode=disable", host, port.Port())

	var db *repository.Postgres
	for i := 0; i < 5; i++ {
		db, err = repository.NewPostgres(ctx, dsn)
		if err == nil {
			break
		}
		log.Printf("failed to connect (attempt %d): %s", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		return 1
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Printf("failed to setup schema: %s", err)
		return 1
	}
	testDB = db
	return m.Run()
}

func setup(t *testing.T) *repository.Postgres {
	t.Helper()
	if testDB == nil {
		t.Skip(skipNote)
	}
	_, err := testDB.Pool.Exec(context.Background(), `TRUNCATE org_users`)
	require.NoError(t, err)
	return testDB
}

func seed(t *testing.T, repo *repository.MemberRepo, users ...model.OrgUser) {
	t.Helper()
	for _, u := range users {
		_, err := repo.Create(context.Background(), u)
		require.NoError(t, err)
	}
}

var (
	alice = model.OrgUser{ID: "1", OrgID: "org-1", Name: "Alice", Email: "a@x.com", Role: model.RoleAdmin, CreatedAt: 1700000000}
	bob   = model.OrgUser{ID: "2", OrgID: "org-1", Name: "Bob", Email: "b@x.com", Role: model.RoleEditor, CreatedAt: 1700000100}
	carol = model.OrgUser{ID: "3", OrgID: "org-2", Name: "Carol", Email: "c@x.com", Role: model.RoleAdmin, CreatedAt: 1700000200}
)

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := setup(t)
	require.NoError(t, db.EnsureSchema(context.Background()))
}

func TestMemberRepo_ListByOrg(t *testing.T) {
	db := setup(t)
	repo := repository.NewMemberRepo(db)
	ctx := context.Background()
	seed(t, repo, bob, alice, carol)

	got, err := repo.ListByOrg(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, []model.OrgUser{alice, bob}, got, "ordered by join time, scoped to org")

	empty, err := repo.ListByOrg(ctx, "org-404")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemberRepo_Create(t *testing.T) {
	db := setup(t)
	repo := repository.NewMemberRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice, created)

	_, err = repo.Create(ctx, alice)
	assert.ErrorIs(t, err, repository.ErrMemberExists)

	dup := bob
	dup.Email = alice.Email
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrMemberExists)

	now := model.OrgUser{ID: "9", OrgID: "org-1", Name: "New", Email: "n@x.com", Role: model.RoleViewer}
	created, err = repo.Create(ctx, now)
	require.NoError(t, err)
	assert.Positive(t, created.CreatedAt, "created_at defaults to now")
}

func TestMemberRepo_UpdateAndDelete(t *testing.T) {
	db := setup(t)
	repo := repository.NewMemberRepo(db)
	ctx := context.Background()
	seed(t, repo, alice)

	u, err := repo.UpdateName(ctx, "1", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.Name)

	u, err = repo.UpdateRole(ctx, "1", model.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, u.Role)

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, model.RoleViewer, got.Role)

	require.NoError(t, repo.Delete(ctx, "1"))

	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	_, err = repo.UpdateName(ctx, "1", "x")
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	_, err = repo.UpdateRole(ctx, "1", model.RoleAdmin)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "1"), repository.ErrMemberNotFound)
}

func TestTransactionManager(t *testing.T) {
	db := setup(t)
	repo := repository.NewMemberRepo(db)
	tm := repository.NewTransactionManager(db)
	ctx := context.Background()
	seed(t, repo, alice, bob)

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
			if _, err := repo.UpdateName(ctx, "2", "Robert"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := repo.GetByID(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.Name)
	})

	t.Run("commit and lock admins", func(t *testing.T) {
		err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
			admins, err := repo.LockAdmins(ctx, "org-1")
			if err != nil {
				return err
			}
			assert.Equal(t, 1, admins)
			_, err = repo.UpdateName(ctx, "2", "Robert")
			return err
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "Robert", got.Name)
	})
}

func TestMemberService_LastAdminGuard(t *testing.T) {
	db := setup(t)
	repo := repository.NewMemberRepo(db)
	svc := service.NewMemberService(repo, repository.NewTransactionManager(db))
	ctx := context.Background()
	seed(t, repo, alice, bob)

	_, err := svc.UpdateRole(ctx, "1", model.RoleViewer)
	var appErr *service.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LAST_ADMIN", appErr.Code)

	err = svc.DeleteUser(ctx, "1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, service.MsgLastAdmin, appErr.Message)

	_, err = svc.UpdateRole(ctx, "2", model.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, "1"), "another admin exists")

	users, err := svc.ListOrgUsers(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "2", users[0].ID)
}
