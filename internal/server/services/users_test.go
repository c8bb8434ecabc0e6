package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"taskboard/internal/common"
	"taskboard/internal/dbx"
	"taskboard/internal/server/auth"
	"taskboard/internal/server/config"
	"taskboard/internal/server/models"
	categoriesrepo "taskboard/internal/server/repositories/categories"
	"taskboard/internal/server/repositories/repomanager"
	tasksrepo "taskboard/internal/server/repositories/tasks"
	usersrepo "taskboard/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getByIDOut *models.User
	getByIDErr error

	getByEmailOut *models.User
	getByEmailErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

type fakeCategoriesRepo struct {
	createOut *models.Category
	createErr error

	getOut *models.Category
	getErr error

	listOut []*models.Category
	listErr error

	updateErr error
	deleteErr error

	deleted []string
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return c, nil
}

func (f *fakeCategoriesRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCategoriesRepo) ListVisible(ctx context.Context, userID string) ([]*models.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCategoriesRepo) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return c, nil
}

func (f *fakeCategoriesRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeTasksRepo struct {
	createErr error

	getOut *models.Task
	getErr error

	listOut []*models.Task
	listErr error

	updateErr error
	deleteErr error

	countOut []*models.UserTaskCount
	countErr error

	breakdownOut []*models.CategoryTaskCount
	breakdownErr error

	deleted []string
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return task, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeTasksRepo) CountByUser(ctx context.Context) ([]*models.UserTaskCount, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.countOut, nil
}

func (f *fakeTasksRepo) CategoryBreakdown(ctx context.Context, userID string) ([]*models.CategoryTaskCount, error) {
	if f.breakdownErr != nil {
		return nil, f.breakdownErr
	}
	return f.breakdownOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCategoriesRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Categories(db dbx.DBTX) categoriesrepo.Repository {
	return m.c
}
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository { return m.t }

func newTestUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *common.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	return verr.Fields
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newTestUserService(t, db, rm)

	user, token, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatalf("password stored unhashed: %q", user.PasswordHash)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	got, err := auth.UserIDFromToken(token, []byte("k"))
	if err != nil || got != user.ID {
		t.Fatalf("token round trip: got (%q, %v), want %q", got, err, user.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newTestUserService(t, db, rm)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name:                 "",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "short",
	})
	fields := fieldErrors(t, err)
	for _, f := range []string{"name", "email", "password"} {
		if len(fields[f]) == 0 {
			t.Fatalf("expected error for %q, got %v", f, fields)
		}
	}

	_, _, err = s.Register(context.Background(), RegisterInput{
		Name:                 "Bob",
		Email:                "bob@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret2",
	})
	fields = fieldErrors(t, err)
	if len(fields["password"]) == 0 {
		t.Fatalf("expected confirmation mismatch error, got %v", fields)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrAlreadyExists}}
	s := newTestUserService(t, db, rm)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	fields := fieldErrors(t, err)
	if len(fields["email"]) != 1 || fields["email"][0] != "has already been taken" {
		t.Fatalf("duplicate email: got %v", fields)
	}
}

func TestRegister_RepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: errBoom{}}}
	s := newTestUserService(t, db, rm)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	if err == nil || !regexp.MustCompile(`error creating user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	// not found → invalid credentials
	rmNF := &fakeRepoManager{u: &fakeUsersRepo{getByEmailErr: common.ErrNotFound}}
	sNF := newTestUserService(t, db, rmNF)
	if _, err := sNF.Login(context.Background(), "ghost@example.com", "x"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("notfound: want ErrInvalidCredentials, got %v", err)
	}

	// repo failure is wrapped, not disguised as bad credentials
	rmIE := &fakeRepoManager{u: &fakeUsersRepo{getByEmailErr: errBoom{}}}
	sIE := newTestUserService(t, db, rmIE)
	if _, err := sIE.Login(context.Background(), "a@example.com", "x"); err == nil || errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("repo error: got %v", err)
	}

	// wrong password → invalid credentials
	rmWP := &fakeRepoManager{u: &fakeUsersRepo{getByEmailOut: &models.User{ID: "u1", PasswordHash: hash}}}
	sWP := newTestUserService(t, db, rmWP)
	if _, err := sWP.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}

	rmOK := &fakeRepoManager{u: &fakeUsersRepo{getByEmailOut: &models.User{ID: "u1", PasswordHash: hash}}}
	sOK := newTestUserService(t, db, rmOK)
	token, err := sOK.Login(context.Background(), "a@example.com", "secret1")
	if err != nil || token == "" {
		t.Fatalf("Login success: token=%q err=%v", token, err)
	}
}

func TestAuthenticate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	user := &models.User{ID: "u1", Email: "a@example.com", Role: models.RoleUser}
	rm := &fakeRepoManager{u: &fakeUsersRepo{getByIDOut: user}}
	s := newTestUserService(t, db, rm)

	token, err := auth.GenerateToken("u1", []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := s.Authenticate(context.Background(), token)
	if err != nil || got.ID != "u1" {
		t.Fatalf("Authenticate: got (%+v, %v)", got, err)
	}

	if _, err := s.Authenticate(context.Background(), ""); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("empty token: want ErrUnauthenticated, got %v", err)
	}

	if _, err := s.Authenticate(context.Background(), "garbage"); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("bad token: want ErrUnauthenticated, got %v", err)
	}

	wrongKey, err := auth.GenerateToken("u1", []byte("other"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), wrongKey); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("wrong key: want ErrUnauthenticated, got %v", err)
	}

	rmGone := &fakeRepoManager{u: &fakeUsersRepo{getByIDErr: common.ErrNotFound}}
	sGone := newTestUserService(t, db, rmGone)
	if _, err := sGone.Authenticate(context.Background(), token); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("deleted user: want ErrUnauthenticated, got %v", err)
	}
}
