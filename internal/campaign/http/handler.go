package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/campaign"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/pkg/response"
	"github.com/lumenview/screen-booking-backend/internal/user"
)

type Handler struct {
	service     campaign.Service
	userService user.Service
}

func NewHandler(service campaign.Service, userService user.Service) *Handler {
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
	var req ListCampaignsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	currentUserID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, currentUserID)

	filterAdvertiserID := currentUserID
	if isSysAdmin {
		filterAdvertiserID = req.AdvertiserID
	}

	filter := campaign.Filter{
		AdvertiserID: filterAdvertiserID,
		Status:       req.Status,
		Keyword:      req.Keyword,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}

	campaigns, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}

	items := make([]CampaignResponse, len(campaigns))
	for i, cam := range campaigns {
		items[i] = NewCampaignResponse(cam)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCampaignRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cam, err := h.service.Create(c.Request.Context(), userID, campaign.CreateRequest{
		Name:            body.Name,
		Description:     body.Description,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		Budget:          body.Budget,
		TargetAudience:  body.TargetAudience,
		TargetLocations: body.TargetLocations,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCampaignResponse(cam))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cam, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if userID != cam.AdvertiserID && !h.checkIsSysAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewCampaignResponse(cam))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateCampaignRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	cam, err := h.service.Update(c.Request.Context(), uri.ID, campaign.UpdateRequest{
		Name:            body.Name,
		Description:     body.Description,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		Budget:          body.Budget,
		Status:          body.Status,
		TargetAudience:  body.TargetAudience,
		TargetLocations: body.TargetLocations,
	}, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCampaignResponse(cam))
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

// creativeIDs binds and validates the campaign and creative path params.
func creativeIDs(c *gin.Context) (campaignID, creativeID string, ok bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return "", "", false
	}

	creativeID = c.Param("creativeId")
	if _, err := uuid.Parse(creativeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return "", "", false
	}

	return uri.ID, creativeID, true
}

func (h *Handler) ListCreatives(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	creatives, err := h.service.ListCreatives(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CreativeResponse, len(creatives))
	for i, cr := range creatives {
		items[i] = NewCreativeResponse(cr)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AddCreative(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body CreateCreativeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	cr, err := h.service.AddCreative(c.Request.Context(), uri.ID, campaign.CreativeRequest{
		Name:            body.Name,
		Type:            body.Type,
		ContentURL:      body.ContentURL,
		ThumbnailURL:    body.ThumbnailURL,
		DurationSeconds: body.DurationSeconds,
	}, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCreativeResponse(cr))
}

func (h *Handler) GetCreative(c *gin.Context) {
	campaignID, creativeID, ok := creativeIDs(c)
	if !ok {
		return
	}

	cr, err := h.service.GetCreative(c.Request.Context(), campaignID, creativeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCreativeResponse(cr))
}

func (h *Handler) RemoveCreative(c *gin.Context) {
	campaignID, creativeID, ok := creativeIDs(c)
	if !ok {
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.RemoveCreative(c.Request.Context(), campaignID, creativeID, userID, isSysAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ApproveCreative clears a creative for display.
// Access Control: System Admin only.
func (h *Handler) ApproveCreative(c *gin.Context) {
	campaignID, creativeID, ok := creativeIDs(c)
	if !ok {
		return
	}

	cr, err := h.service.ApproveCreative(c.Request.Context(), campaignID, creativeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCreativeResponse(cr))
}

// RejectCreative rejects a creative with a reason.
// Access Control: System Admin only.
func (h *Handler) RejectCreative(c *gin.Context) {
	campaignID, creativeID, ok := creativeIDs(c)
	if !ok {
		return
	}

	var body RejectCreativeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cr, err := h.service.RejectCreative(c.Request.Context(), campaignID, creativeID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCreativeResponse(cr))
}
