package booking

import (
	"context"
	"errors"
	"time"

	"github.com/lumenview/screen-booking-backend/internal/campaign"
	"github.com/lumenview/screen-booking-backend/internal/pkg/keymutex"
	"github.com/lumenview/screen-booking-backend/internal/screen"
)

type CreateRequest struct {
	ScreenID   string
	CampaignID string
	CreativeID string
	StartTime  time.Time
	EndTime    time.Time
}

type Service interface {
	Create(ctx context.Context, advertiserID string, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetForActor returns the booking when the actor is its advertiser,
	// the owner of the booked screen, or a system admin.
	GetForActor(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Confirm(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error)
	Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error)
	Complete(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error)
	SetPaymentStatus(ctx context.Context, id string, status string, reference string, actorID string, isSysAdmin bool) (*Booking, error)
}

type service struct {
	repo        Repository
	scrService  screen.Service
	campService campaign.Service

	// screenLocks serializes "check availability then insert" per screen so
	// two concurrent requests cannot both pass the availability gate for
	// overlapping intervals.
	screenLocks *keymutex.KeyMutex
}

func NewService(repo Repository, scrService screen.Service, campService campaign.Service) Service {
	return &service{
		repo:        repo,
		scrService:  scrService,
		campService: campService,
		screenLocks: keymutex.New(),
	}
}

func (s *service) Create(ctx context.Context, advertiserID string, req CreateRequest) (*Booking, error) {
	// 1. Validate time range
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate campaign and creative belong to the advertiser
	camp, err := s.campService.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if camp.AdvertiserID != advertiserID {
		return nil, ErrPermissionDenied
	}
	cr, err := s.campService.GetCreative(ctx, req.CampaignID, req.CreativeID)
	if err != nil {
		if errors.Is(err, campaign.ErrCreativeNotFound) {
			return nil, ErrCreativeNotFound
		}
		return nil, err
	}
	// Only reviewed creatives may run on a screen.
	if !cr.IsApproved {
		return nil, ErrCreativeNotApproved
	}

	// 3. Availability check and insert must be atomic per screen.
	s.screenLocks.Lock(req.ScreenID)
	defer s.screenLocks.Unlock(req.ScreenID)

	scr, err := s.scrService.GetWithDetails(ctx, req.ScreenID)
	if err != nil {
		if errors.Is(err, screen.ErrNotFound) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}

	available, err := screen.IsAvailable(scr, req.StartTime, req.EndTime)
	if err != nil {
		if errors.Is(err, screen.ErrInvalidTimeRange) {
			return nil, ErrInvalidTimeRange
		}
		return nil, err
	}
	if !available {
		return nil, ErrScreenNotAvailable
	}

	// 4. Price the slot; a screen without a rate card cannot be booked.
	if scr.RateCard == nil {
		return nil, screen.ErrPricingNotConfigured
	}
	price, err := screen.CalculatePrice(scr.RateCard, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ScreenID:      req.ScreenID,
		CampaignID:    req.CampaignID,
		CreativeID:    req.CreativeID,
		AdvertiserID:  advertiserID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Price:         price,
		Currency:      scr.RateCard.Currency,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetForActor(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if isSysAdmin || b.AdvertiserID == actorID {
		return b, nil
	}

	scr, err := s.scrService.GetByID(ctx, b.ScreenID)
	if err != nil {
		return nil, err
	}
	if scr.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// Confirm is for the screen owner (or a system admin) to accept a booking.
func (s *service) Confirm(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error) {
	return s.applyTransition(ctx, id, actorID, isSysAdmin, ownerOnly, (*Booking).Confirm)
}

// Cancel may be performed by the advertiser who placed the booking, the
// screen owner, or a system admin.
func (s *service) Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error) {
	return s.applyTransition(ctx, id, actorID, isSysAdmin, ownerOrAdvertiser, (*Booking).Cancel)
}

// Complete is for the screen owner (or a system admin) after the slot ran.
func (s *service) Complete(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error) {
	return s.applyTransition(ctx, id, actorID, isSysAdmin, ownerOnly, (*Booking).Complete)
}

func (s *service) SetPaymentStatus(ctx context.Context, id string, status string, reference string, actorID string, isSysAdmin bool) (*Booking, error) {
	parsed, err := ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin && b.AdvertiserID != actorID {
		return nil, ErrPermissionDenied
	}

	if err := b.SetPaymentStatus(parsed, reference); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePayment(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

type actorScope int

const (
	ownerOnly actorScope = iota
	ownerOrAdvertiser
)

func (s *service) applyTransition(
	ctx context.Context,
	id string,
	actorID string,
	isSysAdmin bool,
	scope actorScope,
	transition func(*Booking) error,
) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin {
		allowed := false
		if scope == ownerOrAdvertiser && b.AdvertiserID == actorID {
			allowed = true
		}
		if !allowed {
			scr, err := s.scrService.GetByID(ctx, b.ScreenID)
			if err != nil {
				return nil, err
			}
			allowed = scr.OwnerID == actorID
		}
		if !allowed {
			return nil, ErrPermissionDenied
		}
	}

	if err := transition(b); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
