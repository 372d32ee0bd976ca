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

type LeadHandler struct {
	crudHandler[domain.Lead, dto.LeadRequest, dto.LeadRequest]
	leads service.LeadService
}

func NewLeadHandler(leads service.LeadService) *LeadHandler {
	return &LeadHandler{
		crudHandler: crudHandler[domain.Lead, dto.LeadRequest, dto.LeadRequest]{svc: leads},
		leads:       leads,
	}
}

// leadFilter reads state, ownerId, facilityId and spam.
func leadFilter(c *gin.Context) (repository.LeadFilter, bool) {
	var f repository.LeadFilter
	if raw := c.Query("state"); raw != "" {
		state := domain.LeadState(raw)
		if state != domain.LeadStateOpen && state != domain.LeadStateClosed {
			sendValidation(c, "Invalid state", nil)
			return f, false
		}
		f.State = &state
	}
	var ok bool
	if f.OwnerID, ok = queryUUID(c, "ownerId"); !ok {
		return f, false
	}
	if f.FacilityID, ok = queryUUID(c, "facilityId"); !ok {
		return f, false
	}
	if f.Spam, ok = queryBool(c, "spam"); !ok {
		return f, false
	}
	return f, true
}

func (h *LeadHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	f, ok := leadFilter(c)
	if !ok {
		return
	}
	grid, err := h.leads.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

// Spam flags or clears the spam marker of several leads at once.
func (h *LeadHandler) Spam(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	var req dto.SpamRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.leads.Spam(c.Request.Context(), tc, req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

func (h *LeadHandler) Export(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendValidation(c, "Invalid export query", err)
		return
	}
	f, ok := leadFilter(c)
	if !ok {
		return
	}
	result, err := h.leads.Export(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendExport(c, result)
}

func (h *LeadHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", listHandler[domain.Lead](h.leads))
	g.GET("/export", h.Export)
	g.PUT("/spam", h.Spam)
	g.POST("/related/info", relatedInfoHandler(h.leads))
	h.crudHandler.Register(g)
}
