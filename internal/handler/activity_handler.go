package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/service"
)

type ActivityHandler struct {
	crudHandler[domain.Activity, dto.ActivityRequest, dto.ActivityRequest]
	activities service.ActivityService
}

func NewActivityHandler(activities service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		crudHandler: crudHandler[domain.Activity, dto.ActivityRequest, dto.ActivityRequest]{svc: activities},
		activities:  activities,
	}
}

func ownerType(c *gin.Context) (domain.OwnerType, bool) {
	t := domain.OwnerType(c.Query("ownerType"))
	if t != "" && !t.Valid() {
		response.SendError(c, response.CodeActivityOwnerTypeInvalid, "")
		return "", false
	}
	return t, true
}

func activityFilter(c *gin.Context) (repository.ActivityFilter, bool) {
	var f repository.ActivityFilter
	var ok bool
	if f.OwnerType, ok = ownerType(c); !ok {
		return f, false
	}
	if f.OwnerID, ok = queryUUID(c, "ownerId"); !ok {
		return f, false
	}
	if f.AssignToID, ok = queryUUID(c, "assignToId"); !ok {
		return f, false
	}
	if f.StatusID, ok = queryUUID(c, "statusId"); !ok {
		return f, false
	}
	return f, true
}

func (h *ActivityHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	f, ok := activityFilter(c)
	if !ok {
		return
	}
	grid, err := h.activities.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

// ListByOwner returns the whole timeline of one lead, referral or
// organization. Both ownerType and ownerId are required.
func (h *ActivityHandler) ListByOwner(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	t, ok := ownerType(c)
	if !ok {
		return
	}
	if t == "" {
		response.SendError(c, response.CodeActivityOwnerTypeInvalid, "")
		return
	}
	ownerID, ok := queryUUID(c, "ownerId")
	if !ok {
		return
	}
	if ownerID == nil {
		sendValidation(c, "ownerId is required", nil)
		return
	}
	items, err := h.activities.ListByOwner(c.Request.Context(), tc, t, *ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, items)
}

func (h *ActivityHandler) Export(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendValidation(c, "Invalid export query", err)
		return
	}
	f, ok := activityFilter(c)
	if !ok {
		return
	}
	result, err := h.activities.Export(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendExport(c, result)
}

func (h *ActivityHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", h.ListByOwner)
	g.GET("/export", h.Export)
	h.crudHandler.Register(g)
}
