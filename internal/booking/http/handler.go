package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/booking"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/pkg/response"
	"github.com/lumenview/screen-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// checkIsSysAdmin helper checks if the current user is a system admin
func (h *Handler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}
	req.Normalize()

	// Access Control Logic
	currentUserID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, currentUserID)

	filterAdvertiserID := currentUserID

	// If Admin, they can see all or filter by specific advertiser
	if isSysAdmin {
		filterAdvertiserID = req.AdvertiserID // can be empty to show all
	}
	// If Normal User, forced to see only their own

	filter := booking.Filter{
		AdvertiserID: filterAdvertiserID,
		ScreenID:     req.ScreenID,
		CampaignID:   req.CampaignID,
		Status:       req.Status,
		StartTime:    req.StartTimeFrom,
		EndTime:      req.StartTimeTo,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, booking.CreateRequest{
		ScreenID:   body.ScreenID,
		CampaignID: body.CampaignID,
		CreativeID: body.CreativeID,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// Access Check: advertiser, screen owner, or SysAdmin
	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	b, err := h.service.GetForActor(c.Request.Context(), uri.ID, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

type transitionFunc func(ctx context.Context, id, actorID string, isSysAdmin bool) (*booking.Booking, error)

// transition runs one lifecycle action against the booking in the URI;
// the service decides whether the actor may perform it.
func (h *Handler) transition(c *gin.Context, action transitionFunc) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	b, err := action(c.Request.Context(), uri.ID, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Confirm accepts a pending booking. Screen owner or admin.
func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// Cancel cancels a booking, freeing its slot for other advertisers.
// Advertiser, screen owner or admin.
func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Complete marks a confirmed booking as finished. Screen owner or admin.
func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// UpdatePayment records the outcome of an external payment flow.
func (h *Handler) UpdatePayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	b, err := h.service.SetPaymentStatus(c.Request.Context(), uri.ID, body.PaymentStatus, body.PaymentReference, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
