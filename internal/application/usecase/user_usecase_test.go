package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/application/usecase"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	"github.com/termpro2000/fdapp/pkg/logger"
)

type fakeUserRepo struct {
	byID      map[string]*entity.User
	hasOrders map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, hasOrders: map[string]bool{}}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, x := range f.byID {
		if x.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	*stored = *u
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(id string) error { return nil }

func (f *fakeUserRepo) List(fl repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(fl repository.UserFilter) (int, error) { return len(f.byID), nil }

func (f *fakeUserRepo) Delete(id string) error {
	if f.hasOrders[id] {
		return domain.ErrHasOrders
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeActivityRepo struct {
	entries []*entity.UserActivity
}

func (f *fakeActivityRepo) Create(a *entity.UserActivity) error {
	f.entries = append(f.entries, a)
	return nil
}

func (f *fakeActivityRepo) List(fl repository.ActivityFilter, limit, offset int) ([]*entity.UserActivity, error) {
	return f.entries, nil
}

func (f *fakeActivityRepo) Count(fl repository.ActivityFilter) (int, error) {
	return len(f.entries), nil
}

var (
	adminActor   = domain.Identity{UserID: "a-1", Username: "admin", Role: entity.RoleAdmin}
	managerActor = domain.Identity{UserID: "m-1", Username: "manager", Role: entity.RoleManager}
)

func newUserUC(repo *fakeUserRepo, activityRepo *fakeActivityRepo) *usecase.UserUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return usecase.NewUserUseCase(repo, usecase.NewActivityUseCase(activityRepo, log))
}

func TestUserCreate_RecordsActivity(t *testing.T) {
	repo := newFakeUserRepo()
	activityRepo := &fakeActivityRepo{}
	uc := newUserUC(repo, activityRepo)

	out, err := uc.Create(adminActor, dto.CreateUserRequest{
		Username: "hong",
		Password: "secret123",
		Name:     "홍길동",
		Role:     entity.RoleManager,
	}, dto.RequestMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "create_user", activityRepo.entries[0].Action)
	assert.Equal(t, adminActor.UserID, activityRepo.entries[0].UserID)
	assert.Equal(t, "10.0.0.1", activityRepo.entries[0].IPAddress)
}

func TestUserCreate_RejectsUnknownRole(t *testing.T) {
	uc := newUserUC(newFakeUserRepo(), &fakeActivityRepo{})
	_, err := uc.Create(adminActor, dto.CreateUserRequest{
		Username: "hong",
		Password: "secret123",
		Name:     "홍길동",
		Role:     "superuser",
	}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_RoleChangeIsAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo, &fakeActivityRepo{})

	created, err := uc.Create(adminActor, dto.CreateUserRequest{
		Username: "hong", Password: "secret123", Name: "홍길동",
	}, dto.RequestMeta{})
	require.NoError(t, err)

	role := entity.RoleManager
	name := "홍길동2"

	// A manager's role change is silently dropped; the name change with it
	// still applies.
	out, err := uc.Update(managerActor, created.ID, dto.UpdateUserRequest{Role: &role, Name: &name}, dto.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.Equal(t, "홍길동2", out.Name)

	out, err = uc.Update(adminActor, created.ID, dto.UpdateUserRequest{Role: &role}, dto.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
}

func TestUserUpdate_NoFields(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo, &fakeActivityRepo{})

	created, err := uc.Create(adminActor, dto.CreateUserRequest{
		Username: "hong", Password: "secret123", Name: "홍길동",
	}, dto.RequestMeta{})
	require.NoError(t, err)

	_, err = uc.Update(adminActor, created.ID, dto.UpdateUserRequest{}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete_SelfDeletionRejected(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo, &fakeActivityRepo{})

	err := uc.Delete(adminActor, adminActor.UserID, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete_BlockedWhileOwningOrders(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo, &fakeActivityRepo{})

	created, err := uc.Create(adminActor, dto.CreateUserRequest{
		Username: "hong", Password: "secret123", Name: "홍길동",
	}, dto.RequestMeta{})
	require.NoError(t, err)
	repo.hasOrders[created.ID] = true

	err = uc.Delete(adminActor, created.ID, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrHasOrders)
}
