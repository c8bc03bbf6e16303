package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/pkg/response"
	"github.com/lumenview/screen-booking-backend/internal/screen"
	"github.com/lumenview/screen-booking-backend/internal/user"
)

type Handler struct {
	service     screen.Service
	userService user.Service
}

func NewHandler(service screen.Service, userService user.Service) *Handler {
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

// Search lists screens matching the given filters. Unauthenticated callers
// only see active, verified screens; owners can pass owner_id to include
// their own unverified inventory.
func (h *Handler) Search(c *gin.Context) {
	var req SearchScreensRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}
	req.Normalize()

	filter := screen.Filter{
		OwnerID:   req.OwnerID,
		Keyword:   req.Keyword,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Type:      req.Type,
		RadiusKm:  req.RadiusKm,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.Lat != nil && req.Lng != nil {
		filter.Near = &screen.GeoCoordinate{Latitude: *req.Lat, Longitude: *req.Lng}
	}

	screens, total, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ScreenResponse, len(screens))
	for i, s := range screens {
		items[i] = NewScreenResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := h.service.GetWithDetails(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScreenResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateScreenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if auth.GetUserRole(c) != user.RoleScreenOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "only screen owners can list screens"})
		return
	}

	req := screen.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Type:        body.Type,
		Address:     body.Address,
		City:        body.City,
		State:       body.State,
		Country:     body.Country,
		PostalCode:  body.PostalCode,
		Location:    screen.GeoCoordinate{Latitude: body.Location.Latitude, Longitude: body.Location.Longitude},
		Size:        screen.Size{Width: body.Size.Width, Height: body.Size.Height, Unit: body.Size.Unit},
		ImageURL:    body.ImageURL,
	}

	for _, w := range body.Windows {
		in, err := w.toInput()
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Windows = append(req.Windows, in)
	}
	if body.RateCard != nil {
		in := body.RateCard.toInput()
		req.RateCard = &in
	}

	s, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewScreenResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateScreenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	req := screen.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Type:        body.Type,
		Address:     body.Address,
		City:        body.City,
		State:       body.State,
		Country:     body.Country,
		PostalCode:  body.PostalCode,
		ImageURL:    body.ImageURL,
	}
	if body.Location != nil {
		req.Location = &screen.GeoCoordinate{Latitude: body.Location.Latitude, Longitude: body.Location.Longitude}
	}
	if body.Size != nil {
		req.Size = &screen.Size{Width: body.Size.Width, Height: body.Size.Height, Unit: body.Size.Unit}
	}

	s, err := h.service.Update(c.Request.Context(), uri.ID, req, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScreenResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), uri.ID, userID, isSysAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetActive toggles whether a screen accepts new bookings. Owner or admin.
func (h *Handler) SetActive(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body SetActiveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.SetActiveStatus(c.Request.Context(), uri.ID, *body.IsActive, userID, isSysAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetVerified marks a screen as reviewed.
// Access Control: System Admin only.
func (h *Handler) SetVerified(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body SetVerifiedRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.SetVerificationStatus(c.Request.Context(), uri.ID, *body.IsVerified); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListWindows(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	windows, err := h.service.ListWindows(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AddWindow(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body WindowRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	in, err := body.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	w, err := h.service.AddWindow(c.Request.Context(), uri.ID, in, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWindowResponse(*w))
}

func (h *Handler) RemoveWindow(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	windowID := c.Param("windowId")
	if _, err := uuid.Parse(windowID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.RemoveWindow(c.Request.Context(), uri.ID, windowID, userID, isSysAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetRateCard(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rc, err := h.service.GetRateCard(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRateCardResponse(rc))
}

func (h *Handler) PutRateCard(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body RateCardRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	rc, err := h.service.PutRateCard(c.Request.Context(), uri.ID, body.toInput(), userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRateCardResponse(rc))
}

// CheckAvailability answers whether the screen can be booked for the
// requested interval.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	available, err := h.service.IsAvailable(c.Request.Context(), uri.ID, req.StartTime, req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Available: available})
}

// Quote returns the price for the requested interval, or available=false
// when the screen cannot host it.
func (h *Handler) Quote(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	q, err := h.service.QuotePrice(c.Request.Context(), uri.ID, req.StartTime, req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
