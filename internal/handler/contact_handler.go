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

type OrganizationHandler struct {
	crudHandler[domain.Organization, dto.OrganizationRequest, dto.OrganizationRequest]
	orgs service.OrganizationService
}

func NewOrganizationHandler(orgs service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		crudHandler: crudHandler[domain.Organization, dto.OrganizationRequest, dto.OrganizationRequest]{svc: orgs},
		orgs:        orgs,
	}
}

func (h *OrganizationHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	categoryID, ok := queryUUID(c, "categoryId")
	if !ok {
		return
	}
	grid, err := h.orgs.Grid(c.Request.Context(), tc, req, repository.OrganizationFilter{CategoryID: categoryID})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *OrganizationHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", listHandler[domain.Organization](h.orgs))
	g.POST("/related/info", relatedInfoHandler(h.orgs))
	h.crudHandler.Register(g)
}

type ContactHandler struct {
	crudHandler[domain.Contact, dto.ContactRequest, dto.ContactRequest]
	contacts service.ContactService
}

func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{
		crudHandler: crudHandler[domain.Contact, dto.ContactRequest, dto.ContactRequest]{svc: contacts},
		contacts:    contacts,
	}
}

func (h *ContactHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	orgID, ok := queryUUID(c, "organizationId")
	if !ok {
		return
	}
	grid, err := h.contacts.Grid(c.Request.Context(), tc, req, repository.ContactFilter{OrganizationID: orgID})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *ContactHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", listHandler[domain.Contact](h.contacts))
	g.POST("/related/info", relatedInfoHandler(h.contacts))
	h.crudHandler.Register(g)
}

type ReferralHandler struct {
	crudHandler[domain.Referral, dto.ReferralRequest, dto.ReferralRequest]
	referrals service.ReferralService
}

func NewReferralHandler(referrals service.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		crudHandler: crudHandler[domain.Referral, dto.ReferralRequest, dto.ReferralRequest]{svc: referrals},
		referrals:   referrals,
	}
}

func (h *ReferralHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	var f repository.ReferralFilter
	if f.TypeID, ok = queryUUID(c, "typeId"); !ok {
		return
	}
	if f.OrganizationID, ok = queryUUID(c, "organizationId"); !ok {
		return
	}
	grid, err := h.referrals.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *ReferralHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.POST("/related/info", relatedInfoHandler(h.referrals))
	h.crudHandler.Register(g)
}
