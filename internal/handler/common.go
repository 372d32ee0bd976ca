package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/middleware"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// handleServiceError writes the AppError carried by err. Anything else is
// reported as an internal error without leaking its text.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.SendAppError(c, appErr)
		return
	}
	response.SendAppError(c, response.Wrap("Internal server error", err))
}

func sendValidation(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
		_ = c.Error(err)
	}
	response.SendAppError(c, response.NewValidationError(message, details))
}

// currentTenant returns the tenant stored by the auth middleware.
func currentTenant(c *gin.Context) (tenant.Context, bool) {
	tc, ok := middleware.TenantFrom(c)
	if !ok {
		response.SendError(c, response.CodeUnauthorized, "Missing tenant context")
		return tenant.Context{}, false
	}
	return tc, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		sendValidation(c, "Invalid request body", err)
		return false
	}
	return true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendValidation(c, "Invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

func bindGrid(c *gin.Context) (dto.GridRequest, bool) {
	var req dto.GridRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendValidation(c, "Invalid grid query", err)
		return req, false
	}
	return req, true
}

func bindIDs(c *gin.Context) ([]uuid.UUID, bool) {
	var req dto.IDsRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	return req.IDs, true
}

// queryUUID reads an optional uuid filter. An absent or empty parameter
// yields nil.
func queryUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		sendValidation(c, "Invalid "+key, err)
		return nil, false
	}
	return &id, true
}

func queryBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		sendValidation(c, "Invalid "+key, err)
		return nil, false
	}
	return &v, true
}

// sendExport streams the workbook when it was rendered inline and returns
// the download link otherwise.
func sendExport(c *gin.Context, result *dto.ExportResult) {
	if result.URL != "" {
		response.SendSuccess(c, http.StatusOK, result)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
