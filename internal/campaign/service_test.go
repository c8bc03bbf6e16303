package campaign_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/screen-booking-backend/internal/campaign"
)

type fakeRepo struct {
	campaign.Repository

	campaigns map[string]*campaign.Campaign
	creatives map[string]*campaign.Creative
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		campaigns: make(map[string]*campaign.Campaign),
		creatives: make(map[string]*campaign.Creative),
	}
}

func (r *fakeRepo) id() string {
	r.nextID++
	return fmt.Sprintf("id-%d", r.nextID)
}

func (r *fakeRepo) Create(_ context.Context, c *campaign.Campaign) error {
	c.ID = r.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*campaign.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, c *campaign.Campaign) error {
	if _, ok := r.campaigns[c.ID]; !ok {
		return campaign.ErrNotFound
	}
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.campaigns[id]; !ok {
		return campaign.ErrNotFound
	}
	delete(r.campaigns, id)
	return nil
}

func (r *fakeRepo) CreateCreative(_ context.Context, cr *campaign.Creative) error {
	cr.ID = r.id()
	cp := *cr
	r.creatives[cr.ID] = &cp
	return nil
}

func (r *fakeRepo) GetCreative(_ context.Context, campaignID, creativeID string) (*campaign.Creative, error) {
	cr, ok := r.creatives[creativeID]
	if !ok || cr.CampaignID != campaignID {
		return nil, campaign.ErrCreativeNotFound
	}
	cp := *cr
	return &cp, nil
}

func (r *fakeRepo) UpdateCreativeReview(_ context.Context, cr *campaign.Creative) error {
	stored, ok := r.creatives[cr.ID]
	if !ok {
		return campaign.ErrCreativeNotFound
	}
	stored.IsApproved = cr.IsApproved
	stored.RejectionReason = cr.RejectionReason
	return nil
}

func validCreate() campaign.CreateRequest {
	return campaign.CreateRequest{
		Name:      "Spring launch",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Budget:    decimal.NewFromInt(5000),
	}
}

func TestServiceCreate(t *testing.T) {
	svc := campaign.NewService(newFakeRepo())

	c, err := svc.Create(context.Background(), "advertiser-1", validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "advertiser-1", c.AdvertiserID)
	assert.Equal(t, campaign.StatusDraft, c.Status)
	assert.True(t, c.Spent.IsZero())
	assert.True(t, c.Remaining().Equal(decimal.NewFromInt(5000)))
}

func TestServiceCreateValidation(t *testing.T) {
	svc := campaign.NewService(newFakeRepo())

	tests := []struct {
		name    string
		mutate  func(*campaign.CreateRequest)
		wantErr error
	}{
		{
			name:    "blank name",
			mutate:  func(r *campaign.CreateRequest) { r.Name = "   " },
			wantErr: campaign.ErrNameRequired,
		},
		{
			name: "end before start",
			mutate: func(r *campaign.CreateRequest) {
				r.EndDate = r.StartDate.Add(-24 * time.Hour)
			},
			wantErr: campaign.ErrInvalidDateRange,
		},
		{
			name:    "zero length range",
			mutate:  func(r *campaign.CreateRequest) { r.EndDate = r.StartDate },
			wantErr: campaign.ErrInvalidDateRange,
		},
		{
			name:    "negative budget",
			mutate:  func(r *campaign.CreateRequest) { r.Budget = decimal.NewFromInt(-1) },
			wantErr: campaign.ErrNegativeBudget,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), "advertiser-1", req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServiceUpdateAuthorization(t *testing.T) {
	svc := campaign.NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "advertiser-1", validCreate())
	require.NoError(t, err)

	newName := "Renamed"

	_, err = svc.Update(ctx, c.ID, campaign.UpdateRequest{Name: &newName}, "someone-else", false)
	assert.ErrorIs(t, err, campaign.ErrPermissionDenied)

	updated, err := svc.Update(ctx, c.ID, campaign.UpdateRequest{Name: &newName}, "someone-else", true)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	badStatus := "paused"
	_, err = svc.Update(ctx, c.ID, campaign.UpdateRequest{Status: &badStatus}, "advertiser-1", false)
	assert.ErrorIs(t, err, campaign.ErrInvalidStatus)

	active := string(campaign.StatusActive)
	updated, err = svc.Update(ctx, c.ID, campaign.UpdateRequest{Status: &active}, "advertiser-1", false)
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusActive, updated.Status)
}

func TestServiceUpdateDateRangeCrossCheck(t *testing.T) {
	svc := campaign.NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "advertiser-1", validCreate())
	require.NoError(t, err)

	// Moving only the start past the stored end must fail.
	lateStart := c.EndDate.Add(24 * time.Hour)
	_, err = svc.Update(ctx, c.ID, campaign.UpdateRequest{StartDate: &lateStart}, "advertiser-1", false)
	assert.ErrorIs(t, err, campaign.ErrInvalidDateRange)

	// Moving both together is fine.
	newEnd := lateStart.Add(7 * 24 * time.Hour)
	updated, err := svc.Update(ctx, c.ID, campaign.UpdateRequest{StartDate: &lateStart, EndDate: &newEnd}, "advertiser-1", false)
	require.NoError(t, err)
	assert.Equal(t, lateStart, updated.StartDate)
}

func TestServiceCreativeLifecycle(t *testing.T) {
	svc := campaign.NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, "advertiser-1", validCreate())
	require.NoError(t, err)

	_, err = svc.AddCreative(ctx, c.ID, campaign.CreativeRequest{
		Name: "Banner", Type: "image", ContentURL: "/assets/abc",
	}, "someone-else", false)
	assert.ErrorIs(t, err, campaign.ErrPermissionDenied)

	_, err = svc.AddCreative(ctx, c.ID, campaign.CreativeRequest{
		Name: "Banner", Type: "gif", ContentURL: "/assets/abc",
	}, "advertiser-1", false)
	assert.ErrorIs(t, err, campaign.ErrInvalidCreativeTyp)

	_, err = svc.AddCreative(ctx, c.ID, campaign.CreativeRequest{
		Name: "", Type: "image", ContentURL: "/assets/abc",
	}, "advertiser-1", false)
	assert.ErrorIs(t, err, campaign.ErrInvalidCreative)

	cr, err := svc.AddCreative(ctx, c.ID, campaign.CreativeRequest{
		Name: "Banner", Type: "image", ContentURL: "/assets/abc", DurationSeconds: 15,
	}, "advertiser-1", false)
	require.NoError(t, err)
	assert.False(t, cr.IsApproved, "new creatives start unapproved")

	_, err = svc.RejectCreative(ctx, c.ID, cr.ID, "  ")
	assert.ErrorIs(t, err, campaign.ErrReasonRequired)

	rejected, err := svc.RejectCreative(ctx, c.ID, cr.ID, "too blurry")
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)
	assert.Equal(t, "too blurry", rejected.RejectionReason)

	approved, err := svc.ApproveCreative(ctx, c.ID, cr.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Empty(t, approved.RejectionReason, "approval clears the rejection reason")

	_, err = svc.ApproveCreative(ctx, c.ID, cr.ID)
	assert.ErrorIs(t, err, campaign.ErrAlreadyApproved)

	_, err = svc.GetCreative(ctx, "other-campaign", cr.ID)
	assert.ErrorIs(t, err, campaign.ErrCreativeNotFound)
}

func TestCampaignIsRunning(t *testing.T) {
	c := &campaign.Campaign{
		Status:    campaign.StatusActive,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, c.IsRunning(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, c.IsRunning(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, c.IsRunning(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	c.Status = campaign.StatusDraft
	assert.False(t, c.IsRunning(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)))
}
