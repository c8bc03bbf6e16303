package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/pkg/response"
	"github.com/lumenview/screen-booking-backend/internal/waitlist"
)

type Handler struct {
	service waitlist.Service
}

func NewHandler(service waitlist.Service) *Handler {
	return &Handler{service: service}
}

// Join adds an email to the pre-launch waitlist. Public.
func (h *Handler) Join(c *gin.Context) {
	var body JoinWaitlistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.Join(c.Request.Context(), waitlist.JoinRequest{
		Email:       body.Email,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		CompanyName: body.CompanyName,
		PhoneNumber: body.PhoneNumber,
		UserType:    body.UserType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEntryResponse(e))
}

// List retrieves waitlist entries.
// Access Control: System Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListWaitlistRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	entries, total, err := h.service.List(c.Request.Context(), waitlist.Filter{
		UserType: req.UserType,
		Status:   req.Status,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list waitlist entries"})
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Invite marks a pending entry as invited.
// Access Control: System Admin only.
func (h *Handler) Invite(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	e, err := h.service.Invite(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEntryResponse(e))
}

// Delete removes an entry from the waitlist.
// Access Control: System Admin only.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
