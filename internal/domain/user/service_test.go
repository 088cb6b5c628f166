package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type memUsers struct {
	byID map[string]*User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*User{}}
}

func (r *memUsers) Create(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUsers) Update(_ context.Context, u *User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func newTestService() (Service, *memUsers) {
	repo := newMemUsers()
	return NewService(repo, HashCost(bcrypt.MinCost)), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), "Alice", " Alice@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.Contains(t, repo.byID, u.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "a@example.com", "secret123")
	assert.Same(t, ErrNameRequired, err)

	_, err = svc.Register(ctx, "Alice", "not-an-email", "secret123")
	assert.Same(t, ErrInvalidEmail, err)

	_, err = svc.Register(ctx, "Alice", "a@example.com", "short1")
	assert.Same(t, ErrWeakPassword, err)

	_, err = svc.Register(ctx, "Alice", "a@example.com", "onlyletters")
	assert.Same(t, ErrWeakPassword, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Alice Two", "A@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, "Bob", "bob@example.com", "hunter2hunter")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "BOB@example.com", "hunter2hunter")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = svc.Authenticate(ctx, "bob@example.com", "wrong-password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidLogin)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "hunter2hunter")
	assert.ErrorIs(t, err, apperrors.ErrInvalidLogin)
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass1")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Len(t, repo.byID, 1)

	customer, err := svc.Register(ctx, "Carol", "carol@example.com", "carolpass1")
	require.NoError(t, err)
	promoted, err := svc.EnsureAdmin(ctx, "Carol", "carol@example.com", "ignored1")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, promoted.ID)
	assert.Equal(t, RoleAdmin, repo.byID[customer.ID].Role)
}
