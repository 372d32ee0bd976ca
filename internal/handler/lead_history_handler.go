package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

type historyService[T any, R any] interface {
	crudService[T, R, R]
	ListByLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) ([]T, error)
}

// LeadHistoryHandler serves the temperature and funnel stage histories of
// a lead. Listing needs the leadId query parameter.
type LeadHistoryHandler[T any, R any] struct {
	crudHandler[T, R, R]
	svc historyService[T, R]
}

func NewLeadHistoryHandler[T any, R any](svc historyService[T, R]) *LeadHistoryHandler[T, R] {
	return &LeadHistoryHandler[T, R]{crudHandler: crudHandler[T, R, R]{svc: svc}, svc: svc}
}

func (h *LeadHistoryHandler[T, R]) ListByLead(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	leadID, ok := queryUUID(c, "leadId")
	if !ok {
		return
	}
	if leadID == nil {
		sendValidation(c, "leadId is required", nil)
		return
	}
	items, err := h.svc.ListByLead(c.Request.Context(), tc, *leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, items)
}

func (h *LeadHistoryHandler[T, R]) Register(g *gin.RouterGroup) {
	g.GET("", h.ListByLead)
	h.crudHandler.Register(g)
}
