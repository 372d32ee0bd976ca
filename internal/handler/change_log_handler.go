package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/service"
)

type ChangeLogHandler struct {
	changeLogs service.ChangeLogService
}

func NewChangeLogHandler(changeLogs service.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogs: changeLogs}
}

// Grid lists change log entries, newest first, optionally narrowed to one
// lead or one event type.
func (h *ChangeLogHandler) Grid(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	req, ok := bindGrid(c)
	if !ok {
		return
	}
	var f repository.ChangeLogFilter
	if f.LeadID, ok = queryUUID(c, "leadId"); !ok {
		return
	}
	if raw := c.Query("type"); raw != "" {
		t := domain.ChangeLogType(raw)
		f.Type = &t
	}
	grid, err := h.changeLogs.Grid(c.Request.Context(), tc, req, f)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, grid)
}
