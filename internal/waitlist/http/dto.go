package http

import (
	"time"

	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/waitlist"
)

// JoinWaitlistRequest is the public signup payload.
type JoinWaitlistRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
	UserType    string `json:"user_type" binding:"required,oneof=advertiser screen_owner"`
}

// ListWaitlistRequest defines query parameters for listing entries.
type ListWaitlistRequest struct {
	request.ListParams
	UserType string `form:"user_type" binding:"omitempty,oneof=advertiser screen_owner"`
	Status   string `form:"status" binding:"omitempty,oneof=pending invited registered"`
	Keyword  string `form:"keyword"`
}

type EntryResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	CompanyName string     `json:"company_name,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	UserType    string     `json:"user_type"`
	Status      string     `json:"status"`
	InvitedAt   *time.Time `json:"invited_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewEntryResponse(e *waitlist.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Email:       e.Email,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		CompanyName: e.CompanyName,
		PhoneNumber: e.PhoneNumber,
		UserType:    e.UserType,
		Status:      e.Status,
		InvitedAt:   e.InvitedAt,
		CreatedAt:   e.CreatedAt,
	}
}
