package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/user/pkg/request"
)

const testSecretKey = "test-secret-key"

type fakeUserRepository struct {
	users map[uuid.UUID]repository.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[uuid.UUID]repository.User{}}
}

func (f *fakeUserRepository) InsertUser(_ context.Context, arg repository.InsertUserParams) (repository.User, error) {
	user := repository.User{
		ID:       uuid.New(),
		Name:     arg.Name,
		Email:    arg.Email,
		Password: arg.Password,
		IsAdmin:  arg.IsAdmin,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepository) FindUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepository) FindUserById(_ context.Context, id uuid.UUID) (repository.User, error) {
	user, ok := f.users[id]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepository) FindUsers(_ context.Context) ([]repository.User, error) {
	var users []repository.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, arg repository.UpdateUserParams) (repository.User, error) {
	user, ok := f.users[arg.ID]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	user.Name = arg.Name
	user.Email = arg.Email
	user.Password = arg.Password
	user.IsAdmin = arg.IsAdmin
	f.users[arg.ID] = user
	return user, nil
}

func (f *fakeUserRepository) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func registerRequest() request.Register {
	return request.Register{
		Name:     "Ana Clark",
		Email:    "ana@example.com",
		Password: "correct-horse",
	}
}

func TestRegisterHashesPasswordAndSignsToken(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testSecretKey)

	login, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", login.User.Email)
	assert.False(t, login.User.IsAdmin)
	assert.NotEmpty(t, login.Token)

	stored := repo.users[login.User.ID]
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepository(), testSecretKey)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, commonErrors.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepository(), testSecretKey)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), request.Login{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(context.Background(), request.Login{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, commonErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request.Login{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, commonErrors.ErrInvalidCredentials)
}

func TestUpdateProfileKeepsPasswordWhenOmitted(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testSecretKey)

	login, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	identity := token.Identity{UserID: login.User.ID}

	updated, err := svc.UpdateProfile(context.Background(), identity, request.UpdateProfile{
		Name:  "Ana C.",
		Email: "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana C.", updated.Name)

	_, err = svc.Login(context.Background(), request.Login{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)
}

func TestFindUsersRequiresAdmin(t *testing.T) {
	svc := NewUserService(newFakeUserRepository(), testSecretKey)

	_, err := svc.FindUsers(context.Background(), token.Identity{UserID: uuid.New()})
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	users, err := svc.FindUsers(context.Background(), token.Identity{UserID: uuid.New(), IsAdmin: true})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testSecretKey)

	login, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	err = svc.DeleteUser(context.Background(), token.Identity{UserID: uuid.New()}, login.User.ID)
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	err = svc.DeleteUser(context.Background(), token.Identity{UserID: uuid.New(), IsAdmin: true}, login.User.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.users)
}
