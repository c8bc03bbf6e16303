package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/campaign"
	"github.com/lumenview/screen-booking-backend/internal/screen"
)

// fakeRepo stores bookings in memory; Create appends so availability checks
// against fakeScreenService see earlier inserts.
type fakeRepo struct {
	Repository

	mu       sync.Mutex
	bookings []*Booking
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, b *Booking) error { return nil }

func (r *fakeRepo) slots() []screen.BookedSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots := make([]screen.BookedSlot, len(r.bookings))
	for i, b := range r.bookings {
		slots[i] = screen.BookedSlot{
			BookingID: b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}
	return slots
}

// fakeScreenService serves one screen whose booked slots come from the repo.
type fakeScreenService struct {
	screen.Service

	scr  *screen.Screen
	repo *fakeRepo
}

func (s *fakeScreenService) GetByID(ctx context.Context, id string) (*screen.Screen, error) {
	if id != s.scr.ID {
		return nil, screen.ErrNotFound
	}
	return s.scr, nil
}

func (s *fakeScreenService) GetWithDetails(ctx context.Context, id string) (*screen.Screen, error) {
	if id != s.scr.ID {
		return nil, screen.ErrNotFound
	}
	copied := *s.scr
	copied.Bookings = s.repo.slots()
	return &copied, nil
}

type fakeCampaignService struct {
	campaign.Service

	camp *campaign.Campaign
	// unapprovedCreative makes GetCreative serve a creative still waiting
	// for review.
	unapprovedCreative bool
}

func (s *fakeCampaignService) GetByID(ctx context.Context, id string) (*campaign.Campaign, error) {
	if id != s.camp.ID {
		return nil, campaign.ErrNotFound
	}
	return s.camp, nil
}

func (s *fakeCampaignService) GetCreative(ctx context.Context, campaignID, creativeID string) (*campaign.Creative, error) {
	if campaignID != s.camp.ID || creativeID != "creative-1" {
		return nil, campaign.ErrCreativeNotFound
	}
	return &campaign.Creative{ID: creativeID, CampaignID: campaignID, IsApproved: !s.unapprovedCreative}, nil
}

func newTestService() (Service, *fakeRepo) {
	svc, repo, _ := newTestEnv()
	return svc, repo
}

func newTestEnv() (Service, *fakeRepo, *fakeCampaignService) {
	windows := make([]screen.AvailabilityWindow, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		windows = append(windows, screen.AvailabilityWindow{
			DayOfWeek:  d,
			StartOfDay: 0,
			EndOfDay:   24 * time.Hour,
		})
	}

	scr := &screen.Screen{
		ID:         "screen-1",
		OwnerID:    "owner-1",
		IsActive:   true,
		IsVerified: true,
		Windows:    windows,
		RateCard: &screen.RateCard{
			HourlyRate:        decimal.RequireFromString("50"),
			DailyRate:         decimal.RequireFromString("300"),
			WeeklyRate:        decimal.RequireFromString("1500"),
			MonthlyRate:       decimal.RequireFromString("4000"),
			Currency:          "USD",
			MinimumBookingFee: decimal.RequireFromString("80"),
		},
	}

	camp := &campaign.Campaign{
		ID:           "campaign-1",
		AdvertiserID: "advertiser-1",
		Status:       campaign.StatusActive,
	}

	repo := &fakeRepo{}
	campSvc := &fakeCampaignService{camp: camp}
	return NewService(repo, &fakeScreenService{scr: scr, repo: repo}, campSvc), repo, campSvc
}

func validRequest() CreateRequest {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	return CreateRequest{
		ScreenID:   "screen-1",
		CampaignID: "campaign-1",
		CreativeID: "creative-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
	}
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), "advertiser-1", validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if b.Status != StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.PaymentStatus != PaymentPending {
		t.Errorf("payment status = %s, want pending", b.PaymentStatus)
	}
	if want := decimal.RequireFromString("100"); !b.Price.Equal(want) {
		t.Errorf("price = %s, want %s", b.Price, want)
	}
	if b.Currency != "USD" {
		t.Errorf("currency = %s, want USD", b.Currency)
	}
}

func TestServiceCreateUnapprovedCreative(t *testing.T) {
	svc, repo, campSvc := newTestEnv()
	campSvc.unapprovedCreative = true

	_, err := svc.Create(context.Background(), "advertiser-1", validRequest())
	if !errors.Is(err, ErrCreativeNotApproved) {
		t.Fatalf("Create() error = %v, want ErrCreativeNotApproved", err)
	}
	if len(repo.bookings) != 0 {
		t.Errorf("bookings created = %d, want 0", len(repo.bookings))
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name       string
		advertiser string
		mutate     func(*CreateRequest)
		wantErr    error
	}{
		{
			name:       "reversed interval",
			advertiser: "advertiser-1",
			mutate:     func(r *CreateRequest) { r.EndTime = r.StartTime.Add(-time.Hour) },
			wantErr:    ErrInvalidTimeRange,
		},
		{
			name:       "start in the past",
			advertiser: "advertiser-1",
			mutate: func(r *CreateRequest) {
				r.StartTime = time.Now().UTC().Add(-2 * time.Hour)
				r.EndTime = r.StartTime.Add(time.Hour)
			},
			wantErr: ErrStartTimePast,
		},
		{
			name:       "campaign owned by someone else",
			advertiser: "advertiser-2",
			mutate:     func(r *CreateRequest) {},
			wantErr:    ErrPermissionDenied,
		},
		{
			name:       "unknown campaign",
			advertiser: "advertiser-1",
			mutate:     func(r *CreateRequest) { r.CampaignID = "campaign-404" },
			wantErr:    ErrCampaignNotFound,
		},
		{
			name:       "unknown creative",
			advertiser: "advertiser-1",
			mutate:     func(r *CreateRequest) { r.CreativeID = "creative-404" },
			wantErr:    ErrCreativeNotFound,
		},
		{
			name:       "unknown screen",
			advertiser: "advertiser-1",
			mutate:     func(r *CreateRequest) { r.ScreenID = "screen-404" },
			wantErr:    ErrScreenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(ctx, tt.advertiser, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceCreateRejectsOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "advertiser-1", validRequest()); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	req := validRequest()
	req.StartTime = req.StartTime.Add(time.Hour)
	req.EndTime = req.EndTime.Add(time.Hour)
	if _, err := svc.Create(ctx, "advertiser-1", req); !errors.Is(err, ErrScreenNotAvailable) {
		t.Fatalf("overlapping Create() error = %v, want ErrScreenNotAvailable", err)
	}
}

func TestServiceCreateCancelledBookingFreesSlot(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "advertiser-1", validRequest())
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	if _, err := svc.Cancel(ctx, first.ID, "advertiser-1", false); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if _, err := svc.Create(ctx, "advertiser-1", validRequest()); err != nil {
		t.Fatalf("Create() after cancel error = %v", err)
	}

	if len(repo.bookings) != 2 {
		t.Fatalf("bookings stored = %d, want 2", len(repo.bookings))
	}
}

// Two concurrent requests for the same slot must not both pass the
// availability gate.
func TestServiceCreateConcurrentSameSlot(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, "advertiser-1", validRequest())
		}(i)
	}
	wg.Wait()

	var created, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrScreenNotAvailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if created != 1 {
		t.Fatalf("created = %d, want exactly 1", created)
	}
	if conflicted != attempts-1 {
		t.Fatalf("conflicted = %d, want %d", conflicted, attempts-1)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("bookings stored = %d, want 1", len(repo.bookings))
	}
}

func TestServiceTransitionPermissions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "advertiser-1", validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Only the screen owner (or an admin) may confirm.
	if _, err := svc.Confirm(ctx, b.ID, "advertiser-1", false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("advertiser Confirm() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Confirm(ctx, b.ID, "owner-1", false); err != nil {
		t.Fatalf("owner Confirm() error = %v", err)
	}

	// A stranger cannot cancel.
	if _, err := svc.Cancel(ctx, b.ID, "someone-else", false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("stranger Cancel() error = %v, want ErrPermissionDenied", err)
	}

	// The advertiser can.
	if _, err := svc.Cancel(ctx, b.ID, "advertiser-1", false); err != nil {
		t.Fatalf("advertiser Cancel() error = %v", err)
	}

	// And cancelled is terminal.
	if _, err := svc.Complete(ctx, b.ID, "owner-1", false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Complete() after cancel error = %v, want ErrInvalidTransition", err)
	}
}

func TestServiceGetForActor(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "advertiser-1", validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.GetForActor(ctx, b.ID, "advertiser-1", false); err != nil {
		t.Errorf("advertiser read error = %v", err)
	}
	if _, err := svc.GetForActor(ctx, b.ID, "owner-1", false); err != nil {
		t.Errorf("screen owner read error = %v", err)
	}
	if _, err := svc.GetForActor(ctx, b.ID, "stranger", true); err != nil {
		t.Errorf("admin read error = %v", err)
	}
	if _, err := svc.GetForActor(ctx, b.ID, "stranger", false); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger read error = %v, want ErrPermissionDenied", err)
	}
}
