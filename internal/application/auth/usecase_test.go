package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	pkgjwt "github.com/termpro2000/fdapp/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo is an in-memory UserRepository keyed by id and username.
type fakeUserRepo struct {
	byID       map[string]*entity.User
	byUsername map[string]*entity.User
	lastLogin  []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[string]*entity.User{},
		byUsername: map[string]*entity.User{},
	}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.byUsername[u.Username]; ok {
		return domain.ErrUsernameTaken
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.byUsername[u.Username] = &cp
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
	u, ok := f.byUsername[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	*stored = *u
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(id string) error {
	f.lastLogin = append(f.lastLogin, id)
	return nil
}

func (f *fakeUserRepo) List(fl repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(fl repository.UserFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeUserRepo) Delete(id string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byUsername, u.Username)
	delete(f.byID, id)
	return nil
}

func newAuthUC(repo repository.UserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "fdapp-test",
	})
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	out, err := uc.Register(dto.RegisterRequest{
		Username: "hong",
		Password: "secret123",
		Name:     "홍길동",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.UserID)

	stored := repo.byID[out.UserID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role, "self-registration never grants elevated roles")
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "password must be hashed")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Username: "hong", Password: "secret123", Name: "홍길동"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Username: "hong", Password: "other456", Name: "다른사람"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	_, err := uc.Register(dto.RegisterRequest{Username: "hong"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_IssuesTokenWithIdentityClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	reg, err := uc.Register(dto.RegisterRequest{Username: "hong", Password: "secret123", Name: "홍길동"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "hong", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "hong", out.User.Username)

	userID, username, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)
	assert.Equal(t, "hong", username)
	assert.Equal(t, entity.RoleUser, role)

	assert.Equal(t, []string{reg.UserID}, repo.lastLogin, "login must stamp last_login")
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Username: "hong", Password: "secret123", Name: "홍길동"})
	require.NoError(t, err)
	repo.byUsername["hong"].IsActive = false

	cases := []dto.LoginRequest{
		{Username: "nobody", Password: "secret123"}, // unknown user
		{Username: "hong", Password: "wrongpass"},   // wrong password
		{Username: "hong", Password: "secret123"},   // deactivated account
	}
	for _, in := range cases {
		_, err := uc.Login(in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestCheckUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	out, err := uc.CheckUsername("hong")
	require.NoError(t, err)
	assert.True(t, out.Available)

	_, err = uc.Register(dto.RegisterRequest{Username: "hong", Password: "secret123", Name: "홍길동"})
	require.NoError(t, err)

	out, err = uc.CheckUsername("hong")
	require.NoError(t, err)
	assert.False(t, out.Available)
}
