package screen

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name        string
	Description string
	Type        string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Location    GeoCoordinate
	Size        Size
	ImageURL    string
	Windows     []WindowInput
	RateCard    *RateCardInput
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Type        *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Location    *GeoCoordinate
	Size        *Size
	ImageURL    *string
}

// WindowInput carries the parsed bounds of an availability window.
type WindowInput struct {
	DayOfWeek  time.Weekday
	StartOfDay time.Duration
	EndOfDay   time.Duration
}

// RateCardInput carries the amounts for creating or replacing a rate card.
type RateCardInput struct {
	HourlyRate        decimal.Decimal
	DailyRate         decimal.Decimal
	WeeklyRate        decimal.Decimal
	MonthlyRate       decimal.Decimal
	Currency          string
	MinimumBookingFee decimal.Decimal
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Screen, error)
	GetByID(ctx context.Context, id string) (*Screen, error)
	GetWithDetails(ctx context.Context, id string) (*Screen, error)
	Search(ctx context.Context, filter Filter) ([]*Screen, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Screen, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
	SetActiveStatus(ctx context.Context, id string, active bool, actorID string, isSysAdmin bool) error
	SetVerificationStatus(ctx context.Context, id string, verified bool) error

	ListWindows(ctx context.Context, screenID string) ([]AvailabilityWindow, error)
	AddWindow(ctx context.Context, screenID string, in WindowInput, actorID string, isSysAdmin bool) (*AvailabilityWindow, error)
	RemoveWindow(ctx context.Context, screenID, windowID string, actorID string, isSysAdmin bool) error

	GetRateCard(ctx context.Context, screenID string) (*RateCard, error)
	PutRateCard(ctx context.Context, screenID string, in RateCardInput, actorID string, isSysAdmin bool) (*RateCard, error)

	IsAvailable(ctx context.Context, screenID string, start, end time.Time) (bool, error)
	QuotePrice(ctx context.Context, screenID string, start, end time.Time) (*Quote, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Screen, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, ErrTypeRequired
	}
	if err := req.Location.Validate(); err != nil {
		return nil, err
	}

	scr := &Screen{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Location:    req.Location,
		Size:        req.Size,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		IsVerified:  false, // screens start unverified and are not bookable until reviewed
	}

	// Validate windows and the rate card up front so the whole create fails
	// before anything is written.
	windows := make([]AvailabilityWindow, 0, len(req.Windows))
	for _, in := range req.Windows {
		w := AvailabilityWindow{
			DayOfWeek:  in.DayOfWeek,
			StartOfDay: in.StartOfDay,
			EndOfDay:   in.EndOfDay,
		}
		if err := w.Validate(); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	var rc *RateCard
	if req.RateCard != nil {
		rc = rateCardFromInput(*req.RateCard)
		if err := rc.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, scr); err != nil {
		return nil, err
	}

	for i := range windows {
		windows[i].ScreenID = scr.ID
		if err := s.repo.AddWindow(ctx, &windows[i]); err != nil {
			return nil, err
		}
	}
	scr.Windows = windows

	if rc != nil {
		rc.ScreenID = scr.ID
		if err := s.repo.UpsertRateCard(ctx, rc); err != nil {
			return nil, err
		}
		scr.RateCard = rc
	}

	return scr, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Screen, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetWithDetails(ctx context.Context, id string) (*Screen, error) {
	return s.repo.GetWithDetails(ctx, id)
}

func (s *service) Search(ctx context.Context, filter Filter) ([]*Screen, int, error) {
	screens, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// Radius filtering runs in memory; screen counts are modest and the
	// schema has no spatial index.
	if filter.Near != nil && filter.RadiusKm > 0 {
		inRadius := screens[:0]
		for _, scr := range screens {
			if scr.Location.DistanceKm(*filter.Near) <= filter.RadiusKm {
				inRadius = append(inRadius, scr)
			}
		}
		screens = inRadius
	}

	// Optional availability filter: keep only screens free for the interval.
	if filter.StartTime != nil && filter.EndTime != nil {
		free := screens[:0]
		for _, scr := range screens {
			detailed, err := s.repo.GetWithDetails(ctx, scr.ID)
			if err != nil {
				return nil, 0, err
			}
			ok, err := IsAvailable(detailed, *filter.StartTime, *filter.EndTime)
			if err != nil {
				return nil, 0, err
			}
			if ok {
				free = append(free, scr)
			}
		}
		screens = free
	}

	total := len(screens)

	// Paginate after the in-memory filters so page numbers stay stable.
	page := filter.Page
	pageSize := filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	if offset >= total {
		return nil, total, nil
	}
	limit := offset + pageSize
	if limit > total {
		limit = total
	}

	return screens[offset:limit], total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Screen, error) {
	scr, err := s.authorize(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		scr.Name = *req.Name
	}
	if req.Description != nil {
		scr.Description = *req.Description
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			return nil, ErrTypeRequired
		}
		scr.Type = *req.Type
	}
	if req.Address != nil {
		scr.Address = *req.Address
	}
	if req.City != nil {
		scr.City = *req.City
	}
	if req.State != nil {
		scr.State = *req.State
	}
	if req.Country != nil {
		scr.Country = *req.Country
	}
	if req.PostalCode != nil {
		scr.PostalCode = *req.PostalCode
	}
	if req.Location != nil {
		if err := req.Location.Validate(); err != nil {
			return nil, err
		}
		scr.Location = *req.Location
	}
	if req.Size != nil {
		scr.Size = *req.Size
	}
	if req.ImageURL != nil {
		scr.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, scr); err != nil {
		return nil, err
	}
	return scr, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	if _, err := s.authorize(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetActiveStatus(ctx context.Context, id string, active bool, actorID string, isSysAdmin bool) error {
	if _, err := s.authorize(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, active)
}

// SetVerificationStatus is admin-only; the route guards it.
func (s *service) SetVerificationStatus(ctx context.Context, id string, verified bool) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetVerified(ctx, id, verified)
}

func (s *service) ListWindows(ctx context.Context, screenID string) ([]AvailabilityWindow, error) {
	if _, err := s.repo.GetByID(ctx, screenID); err != nil {
		return nil, err
	}
	return s.repo.ListWindows(ctx, screenID)
}

func (s *service) AddWindow(ctx context.Context, screenID string, in WindowInput, actorID string, isSysAdmin bool) (*AvailabilityWindow, error) {
	if _, err := s.authorize(ctx, screenID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	w := &AvailabilityWindow{
		ScreenID:   screenID,
		DayOfWeek:  in.DayOfWeek,
		StartOfDay: in.StartOfDay,
		EndOfDay:   in.EndOfDay,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AddWindow(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) RemoveWindow(ctx context.Context, screenID, windowID string, actorID string, isSysAdmin bool) error {
	if _, err := s.authorize(ctx, screenID, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.DeleteWindow(ctx, screenID, windowID)
}

func (s *service) GetRateCard(ctx context.Context, screenID string) (*RateCard, error) {
	if _, err := s.repo.GetByID(ctx, screenID); err != nil {
		return nil, err
	}
	rc, err := s.repo.GetRateCard(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, ErrPricingNotConfigured
	}
	return rc, nil
}

func (s *service) PutRateCard(ctx context.Context, screenID string, in RateCardInput, actorID string, isSysAdmin bool) (*RateCard, error) {
	if _, err := s.authorize(ctx, screenID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	rc := rateCardFromInput(in)
	rc.ScreenID = screenID
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertRateCard(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *service) IsAvailable(ctx context.Context, screenID string, start, end time.Time) (bool, error) {
	scr, err := s.repo.GetWithDetails(ctx, screenID)
	if err != nil {
		return false, err
	}
	return IsAvailable(scr, start, end)
}

func (s *service) QuotePrice(ctx context.Context, screenID string, start, end time.Time) (*Quote, error) {
	scr, err := s.repo.GetWithDetails(ctx, screenID)
	if err != nil {
		return nil, err
	}

	available, err := IsAvailable(scr, start, end)
	if err != nil {
		return nil, err
	}

	if scr.RateCard == nil {
		return nil, ErrPricingNotConfigured
	}

	price, err := CalculatePrice(scr.RateCard, start, end)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Available: available,
		Price:     price,
		Currency:  scr.RateCard.Currency,
	}, nil
}

// authorize loads the screen and checks the actor may manage it.
func (s *service) authorize(ctx context.Context, screenID, actorID string, isSysAdmin bool) (*Screen, error) {
	scr, err := s.repo.GetByID(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && scr.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	return scr, nil
}

func rateCardFromInput(in RateCardInput) *RateCard {
	return &RateCard{
		HourlyRate:        in.HourlyRate,
		DailyRate:         in.DailyRate,
		WeeklyRate:        in.WeeklyRate,
		MonthlyRate:       in.MonthlyRate,
		Currency:          in.Currency,
		MinimumBookingFee: in.MinimumBookingFee,
	}
}
