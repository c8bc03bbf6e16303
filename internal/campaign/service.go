package campaign

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Budget          decimal.Decimal
	TargetAudience  string
	TargetLocations string
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	StartDate       *time.Time
	EndDate         *time.Time
	Budget          *decimal.Decimal
	Status          *string
	TargetAudience  *string
	TargetLocations *string
}

type CreativeRequest struct {
	Name            string
	Type            string
	ContentURL      string
	ThumbnailURL    string
	DurationSeconds int
}

type Service interface {
	Create(ctx context.Context, advertiserID string, req CreateRequest) (*Campaign, error)
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, filter Filter) ([]*Campaign, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Campaign, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error

	AddCreative(ctx context.Context, campaignID string, req CreativeRequest, actorID string, isSysAdmin bool) (*Creative, error)
	GetCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error)
	ListCreatives(ctx context.Context, campaignID string) ([]*Creative, error)
	RemoveCreative(ctx context.Context, campaignID, creativeID string, actorID string, isSysAdmin bool) error

	// ApproveCreative and RejectCreative are admin review actions.
	ApproveCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error)
	RejectCreative(ctx context.Context, campaignID, creativeID, reason string) (*Creative, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, advertiserID string, req CreateRequest) (*Campaign, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Budget.IsNegative() {
		return nil, ErrNegativeBudget
	}

	c := &Campaign{
		AdvertiserID:    advertiserID,
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Budget:          req.Budget,
		Status:          StatusDraft,
		TargetAudience:  req.TargetAudience,
		TargetLocations: req.TargetLocations,
		Spent:           decimal.Zero,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Campaign, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Campaign, error) {
	c, err := s.authorize(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	newStart := c.StartDate
	newEnd := c.EndDate
	if req.StartDate != nil {
		newStart = *req.StartDate
	}
	if req.EndDate != nil {
		newEnd = *req.EndDate
	}
	if !newEnd.After(newStart) {
		return nil, ErrInvalidDateRange
	}
	c.StartDate = newStart
	c.EndDate = newEnd

	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, ErrNegativeBudget
		}
		c.Budget = *req.Budget
	}
	if req.Status != nil {
		st, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		c.Status = st
	}
	if req.TargetAudience != nil {
		c.TargetAudience = *req.TargetAudience
	}
	if req.TargetLocations != nil {
		c.TargetLocations = *req.TargetLocations
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	if _, err := s.authorize(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddCreative(ctx context.Context, campaignID string, req CreativeRequest, actorID string, isSysAdmin bool) (*Creative, error) {
	if _, err := s.authorize(ctx, campaignID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ContentURL) == "" {
		return nil, ErrInvalidCreative
	}
	if !validCreativeTypes[req.Type] {
		return nil, ErrInvalidCreativeTyp
	}

	cr := &Creative{
		CampaignID:      campaignID,
		Name:            req.Name,
		Type:            req.Type,
		ContentURL:      req.ContentURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		IsApproved:      false, // creatives require review before running
	}

	if err := s.repo.CreateCreative(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *service) GetCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error) {
	return s.repo.GetCreative(ctx, campaignID, creativeID)
}

func (s *service) ListCreatives(ctx context.Context, campaignID string) ([]*Creative, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.repo.ListCreatives(ctx, campaignID)
}

func (s *service) RemoveCreative(ctx context.Context, campaignID, creativeID string, actorID string, isSysAdmin bool) error {
	if _, err := s.authorize(ctx, campaignID, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.DeleteCreative(ctx, campaignID, creativeID)
}

func (s *service) ApproveCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error) {
	cr, err := s.repo.GetCreative(ctx, campaignID, creativeID)
	if err != nil {
		return nil, err
	}
	if cr.IsApproved {
		return nil, ErrAlreadyApproved
	}

	cr.Approve()

	if err := s.repo.UpdateCreativeReview(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *service) RejectCreative(ctx context.Context, campaignID, creativeID, reason string) (*Creative, error) {
	cr, err := s.repo.GetCreative(ctx, campaignID, creativeID)
	if err != nil {
		return nil, err
	}

	if err := cr.Reject(strings.TrimSpace(reason)); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCreativeReview(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *service) authorize(ctx context.Context, campaignID, actorID string, isSysAdmin bool) (*Campaign, error) {
	c, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && c.AdvertiserID != actorID {
		return nil, ErrPermissionDenied
	}
	return c, nil
}
