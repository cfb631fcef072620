package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"party-package-store/internal/models"
)

// fakeUserRepo is an in-memory user store
type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(email, passwordHash, fullName, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, fmt.Errorf("email already registered: %w", models.ErrDuplicateEntry)
		}
	}
	user := &models.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) SetAdmin(id int, isAdmin bool) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func (f *fakeUserRepo) SetBanned(id int, isBanned bool) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user.IsBanned = isBanned
	return user, nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	user, err := svc.Register(&models.UserRegisterRequest{
		Email:    "Asha@Example.com",
		Password: "supersecret",
		FullName: "Asha Rao",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email, "email should be normalized")
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))

	got, err := svc.Login(&models.UserLoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(&models.UserRegisterRequest{
		Email:    "asha@example.com",
		Password: "supersecret",
		FullName: "Asha Rao",
	})
	require.NoError(t, err)

	_, err = svc.Login(&models.UserLoginRequest{Email: "asha@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(&models.UserLoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, models.ErrUnauthorized, "unknown email should look like a wrong password")
}

func TestAuthLoginBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(&models.UserRegisterRequest{
		Email:    "banned@example.com",
		Password: "supersecret",
		FullName: "Banned User",
	})
	require.NoError(t, err)

	_, err = repo.SetBanned(user.ID, true)
	require.NoError(t, err)

	_, err = svc.Login(&models.UserLoginRequest{Email: "banned@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	req := &models.UserRegisterRequest{
		Email:    "asha@example.com",
		Password: "supersecret",
		FullName: "Asha Rao",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
}

func TestAuthRegisterInvalidInput(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(&models.UserRegisterRequest{Email: "asha@example.com", Password: "short", FullName: "A"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
