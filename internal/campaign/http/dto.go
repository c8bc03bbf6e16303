package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/campaign"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
)

// ListCampaignsRequest defines query parameters for listing campaigns.
type ListCampaignsRequest struct {
	request.ListParams
	Status       string `form:"status" binding:"omitempty,oneof=draft active completed cancelled"`
	Keyword      string `form:"keyword"`
	AdvertiserID string `form:"advertiser_id" binding:"omitempty,uuid"`
}

type CampaignResponse struct {
	ID              string          `json:"id"`
	AdvertiserID    string          `json:"advertiser_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Budget          decimal.Decimal `json:"budget"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	Status          string          `json:"status"`
	TargetAudience  string          `json:"target_audience,omitempty"`
	TargetLocations string          `json:"target_locations,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewCampaignResponse(c *campaign.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:              c.ID,
		AdvertiserID:    c.AdvertiserID,
		Name:            c.Name,
		Description:     c.Description,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		Budget:          c.Budget,
		Spent:           c.Spent,
		Remaining:       c.Remaining(),
		Status:          string(c.Status),
		TargetAudience:  c.TargetAudience,
		TargetLocations: c.TargetLocations,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type CreateCampaignRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date" binding:"required"`
	Budget          decimal.Decimal `json:"budget" binding:"required"`
	TargetAudience  string          `json:"target_audience"`
	TargetLocations string          `json:"target_locations"`
}

type UpdateCampaignRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	Budget          *decimal.Decimal `json:"budget"`
	Status          *string          `json:"status" binding:"omitempty,oneof=draft active completed cancelled"`
	TargetAudience  *string          `json:"target_audience"`
	TargetLocations *string          `json:"target_locations"`
}

type CreativeResponse struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	ContentURL      string    `json:"content_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	IsApproved      bool      `json:"is_approved"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCreativeResponse(cr *campaign.Creative) CreativeResponse {
	return CreativeResponse{
		ID:              cr.ID,
		CampaignID:      cr.CampaignID,
		Name:            cr.Name,
		Type:            cr.Type,
		ContentURL:      cr.ContentURL,
		ThumbnailURL:    cr.ThumbnailURL,
		DurationSeconds: cr.DurationSeconds,
		IsApproved:      cr.IsApproved,
		RejectionReason: cr.RejectionReason,
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.UpdatedAt,
	}
}

type CreateCreativeRequest struct {
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=image video html"`
	ContentURL      string `json:"content_url" binding:"required,url"`
	ThumbnailURL    string `json:"thumbnail_url" binding:"omitempty,url"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=1"`
}

type RejectCreativeRequest struct {
	Reason string `json:"reason" binding:"required"`
}
