package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/service"
)

// ReferenceHandler serves one lookup table.
type ReferenceHandler[T any, R any] struct {
	crudHandler[T, R, R]
	svc service.ReferenceService[T, R]
}

func NewReferenceHandler[T any, R any](svc service.ReferenceService[T, R]) *ReferenceHandler[T, R] {
	return &ReferenceHandler[T, R]{crudHandler: crudHandler[T, R, R]{svc: svc}, svc: svc}
}

func (h *ReferenceHandler[T, R]) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	grid, err := h.svc.Grid(c.Request.Context(), tc, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}

func (h *ReferenceHandler[T, R]) Register(g *gin.RouterGroup) {
	g.GET("", h.Grid)
	g.GET("/list", listHandler[T](h.svc))
	g.POST("/related/info", relatedInfoHandler(h.svc))
	h.crudHandler.Register(g)
}

// RegisterReferences mounts every lookup table under g, one group per kind.
func RegisterReferences(g *gin.RouterGroup, refs service.ReferenceServices) {
	NewReferenceHandler(refs.CareTypes).Register(g.Group("/care-types"))
	NewReferenceHandler(refs.PaymentSources).Register(g.Group("/payment-sources"))
	NewReferenceHandler(refs.Facilities).Register(g.Group("/facilities"))
	NewReferenceHandler(refs.Temperatures).Register(g.Group("/temperatures"))
	NewReferenceHandler(refs.FunnelStages).Register(g.Group("/funnel-stages"))
	NewReferenceHandler(refs.ActivityStatuses).Register(g.Group("/activity-statuses"))
	NewReferenceHandler(refs.ActivityTypes).Register(g.Group("/activity-types"))
	NewReferenceHandler(refs.ReferrerTypes).Register(g.Group("/referrer-types"))
	NewReferenceHandler(refs.OutreachTypes).Register(g.Group("/outreach-types"))
	NewReferenceHandler(refs.Hobbies).Register(g.Group("/hobbies"))
	NewReferenceHandler(refs.QualificationRequirements).Register(g.Group("/qualification-requirements"))
	NewReferenceHandler(refs.StageChangeReasons).Register(g.Group("/stage-change-reasons"))
	NewReferenceHandler(refs.StateChangeReasons).Register(g.Group("/state-change-reasons"))
	NewReferenceHandler(refs.CurrentResidences).Register(g.Group("/current-residences"))
	NewReferenceHandler(refs.EmailReviewTypes).Register(g.Group("/email-review-types"))
}
