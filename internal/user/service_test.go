package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	Repository

	byEmail map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]*User)}
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = "user-1"
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return nil
}

func (r *memoryRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return nil
}

// plainHasher makes password assertions readable in tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newMemoryRepo(), plainHasher{})

	u, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "  Jamie@Example.COM ",
		Password:  "supersecret",
		Role:      RoleAdvertiser,
		FirstName: " Jamie ",
		LastName:  "Rivera",
	})
	require.NoError(t, err)

	assert.Equal(t, "jamie@example.com", u.Email)
	assert.Equal(t, RoleAdvertiser, u.Role)
	assert.Equal(t, "Jamie", u.FirstName)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsVerified)
	assert.False(t, u.IsSystemAdmin)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemoryRepo(), plainHasher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Password: "supersecret", Role: RoleAdvertiser})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "short", Role: RoleAdvertiser})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "supersecret", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemoryRepo(), plainHasher{})
	ctx := context.Background()

	req := RegisterRequest{Email: "a@b.c", Password: "supersecret", Role: RoleScreenOwner}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, plainHasher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "supersecret", Role: RoleAdvertiser})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "A@b.c", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)

	_, err = svc.Login(ctx, "a@b.c", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "missing@b.c", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, plainHasher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "supersecret", Role: RoleAdvertiser})
	require.NoError(t, err)
	u.IsActive = false

	_, err = svc.Login(ctx, "a@b.c", "supersecret")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
