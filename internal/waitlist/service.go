package waitlist

import (
	"context"
	"strings"
	"time"
)

type JoinRequest struct {
	Email       string
	FirstName   string
	LastName    string
	CompanyName string
	PhoneNumber string
	UserType    string
}

type Service interface {
	Join(ctx context.Context, req JoinRequest) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Invite(ctx context.Context, id string) (*Entry, error)
	MarkRegistered(ctx context.Context, email string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Join(ctx context.Context, req JoinRequest) (*Entry, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if req.UserType != "advertiser" && req.UserType != "screen_owner" {
		return nil, ErrInvalidUserType
	}

	e := &Entry{
		Email:       email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		CompanyName: strings.TrimSpace(req.CompanyName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		UserType:    req.UserType,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Invite(ctx context.Context, id string) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.Status != StatusPending {
		return nil, ErrAlreadyInvited
	}

	now := time.Now().UTC()
	e.Status = StatusInvited
	e.InvitedAt = &now

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// MarkRegistered flags the entry for the given email as registered.
// Missing entries are ignored so registration never fails on this path.
func (s *service) MarkRegistered(ctx context.Context, email string) error {
	e, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil
	}

	e.Status = StatusRegistered
	return s.repo.Update(ctx, e)
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
