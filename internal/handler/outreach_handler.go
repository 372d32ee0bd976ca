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

type OutreachHandler struct {
	crudHandler[domain.Outreach, dto.OutreachRequest, dto.OutreachRequest]
	outreaches service.OutreachService
}

func NewOutreachHandler(outreaches service.OutreachService) *OutreachHandler {
	return &OutreachHandler{
		crudHandler: crudHandler[domain.Outreach, dto.OutreachRequest, dto.OutreachRequest]{svc: outreaches},
		outreaches:  outreaches,
	}
}

func (h *OutreachHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	var f repository.OutreachFilter
	if f.TypeID, ok = queryUUID(c, "typeId"); !ok {
		return
	}
	if f.OrganizationID, ok = queryUUID(c, "organizationId"); !ok {
		return
	}
	grid, err := h.outreaches.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *OutreachHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	h.crudHandler.Register(g)
}

// WebEmailHandler serves inbound website emails. Create takes the captured
// form; update only records the review.
type WebEmailHandler struct {
	crudHandler[domain.WebEmail, dto.WebEmailRequest, dto.WebEmailReviewRequest]
	emails service.WebEmailService
}

func NewWebEmailHandler(emails service.WebEmailService) *WebEmailHandler {
	return &WebEmailHandler{
		crudHandler: crudHandler[domain.WebEmail, dto.WebEmailRequest, dto.WebEmailReviewRequest]{svc: emails},
		emails:      emails,
	}
}

func (h *WebEmailHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	var f repository.WebEmailFilter
	if f.FacilityID, ok = queryUUID(c, "facilityId"); !ok {
		return
	}
	if f.EmailReviewTypeID, ok = queryUUID(c, "emailReviewTypeId"); !ok {
		return
	}
	if f.Spam, ok = queryBool(c, "spam"); !ok {
		return
	}
	grid, err := h.emails.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *WebEmailHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	h.crudHandler.Register(g)
}
