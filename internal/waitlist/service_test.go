package waitlist_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/screen-booking-backend/internal/waitlist"
)

type memoryRepo struct {
	waitlist.Repository

	byID    map[string]*waitlist.Entry
	byEmail map[string]*waitlist.Entry
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byID:    make(map[string]*waitlist.Entry),
		byEmail: make(map[string]*waitlist.Entry),
	}
}

func (r *memoryRepo) Create(_ context.Context, e *waitlist.Entry) error {
	if _, ok := r.byEmail[e.Email]; ok {
		return waitlist.ErrEmailAlreadyListed
	}
	r.nextID++
	e.ID = fmt.Sprintf("entry-%d", r.nextID)
	cp := *e
	r.byID[e.ID] = &cp
	r.byEmail[e.Email] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*waitlist.Entry, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, waitlist.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*waitlist.Entry, error) {
	e, ok := r.byEmail[email]
	if !ok {
		return nil, waitlist.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, e *waitlist.Entry) error {
	stored, ok := r.byID[e.ID]
	if !ok {
		return waitlist.ErrNotFound
	}
	*stored = *e
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	e, ok := r.byID[id]
	if !ok {
		return waitlist.ErrNotFound
	}
	delete(r.byEmail, e.Email)
	delete(r.byID, id)
	return nil
}

func TestJoin(t *testing.T) {
	svc := waitlist.NewService(newMemoryRepo())

	e, err := svc.Join(context.Background(), waitlist.JoinRequest{
		Email:       "  Pat@Example.COM ",
		FirstName:   " Pat ",
		CompanyName: "Acme Media",
		UserType:    "advertiser",
	})
	require.NoError(t, err)

	assert.Equal(t, "pat@example.com", e.Email)
	assert.Equal(t, "Pat", e.FirstName)
	assert.Equal(t, waitlist.StatusPending, e.Status)
	assert.Nil(t, e.InvitedAt)
}

func TestJoinValidation(t *testing.T) {
	svc := waitlist.NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Join(ctx, waitlist.JoinRequest{Email: "   ", UserType: "advertiser"})
	assert.ErrorIs(t, err, waitlist.ErrEmailRequired)

	_, err = svc.Join(ctx, waitlist.JoinRequest{Email: "pat@example.com", UserType: "admin"})
	assert.ErrorIs(t, err, waitlist.ErrInvalidUserType)
}

func TestJoinDuplicateEmail(t *testing.T) {
	svc := waitlist.NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Join(ctx, waitlist.JoinRequest{Email: "pat@example.com", UserType: "advertiser"})
	require.NoError(t, err)

	// Same address with different casing collides too.
	_, err = svc.Join(ctx, waitlist.JoinRequest{Email: "PAT@example.com", UserType: "screen_owner"})
	assert.ErrorIs(t, err, waitlist.ErrEmailAlreadyListed)
}

func TestInvite(t *testing.T) {
	svc := waitlist.NewService(newMemoryRepo())
	ctx := context.Background()

	e, err := svc.Join(ctx, waitlist.JoinRequest{Email: "pat@example.com", UserType: "screen_owner"})
	require.NoError(t, err)

	invited, err := svc.Invite(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, waitlist.StatusInvited, invited.Status)
	require.NotNil(t, invited.InvitedAt)

	_, err = svc.Invite(ctx, e.ID)
	assert.ErrorIs(t, err, waitlist.ErrAlreadyInvited)

	_, err = svc.Invite(ctx, "missing")
	assert.ErrorIs(t, err, waitlist.ErrNotFound)
}

func TestMarkRegistered(t *testing.T) {
	repo := newMemoryRepo()
	svc := waitlist.NewService(repo)
	ctx := context.Background()

	e, err := svc.Join(ctx, waitlist.JoinRequest{Email: "pat@example.com", UserType: "advertiser"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRegistered(ctx, " PAT@example.com "))

	stored, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, waitlist.StatusRegistered, stored.Status)

	// Registering an email that never joined is not an error.
	assert.NoError(t, svc.MarkRegistered(ctx, "stranger@example.com"))
}

func TestDelete(t *testing.T) {
	svc := waitlist.NewService(newMemoryRepo())
	ctx := context.Background()

	e, err := svc.Join(ctx, waitlist.JoinRequest{Email: "pat@example.com", UserType: "advertiser"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))

	_, err = svc.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, waitlist.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, e.ID), waitlist.ErrNotFound)
}
