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

type AssessmentFormHandler struct {
	crudHandler[domain.AssessmentForm, dto.AssessmentFormRequest, dto.AssessmentFormRequest]
	forms service.AssessmentFormService
}

func NewAssessmentFormHandler(forms service.AssessmentFormService) *AssessmentFormHandler {
	return &AssessmentFormHandler{
		crudHandler: crudHandler[domain.AssessmentForm, dto.AssessmentFormRequest, dto.AssessmentFormRequest]{svc: forms},
		forms:       forms,
	}
}

func (h *AssessmentFormHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	grid, err := h.forms.Grid(c.Request.Context(), tc, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *AssessmentFormHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", listHandler[domain.AssessmentForm](h.forms))
	g.POST("/related/info", relatedInfoHandler(h.forms))
	h.crudHandler.Register(g)
}

type AssessmentHandler struct {
	crudHandler[domain.Assessment, dto.AssessmentRequest, dto.AssessmentRequest]
	assessments service.AssessmentService
}

func NewAssessmentHandler(assessments service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		crudHandler: crudHandler[domain.Assessment, dto.AssessmentRequest, dto.AssessmentRequest]{svc: assessments},
		assessments: assessments,
	}
}

func (h *AssessmentHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	var f repository.AssessmentFilter
	if f.LeadID, ok = queryUUID(c, "leadId"); !ok {
		return
	}
	if f.FormID, ok = queryUUID(c, "formId"); !ok {
		return
	}
	grid, err := h.assessments.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *AssessmentHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	h.crudHandler.Register(g)
}
