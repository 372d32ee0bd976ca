package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// crudService is the part every resource service shares. A is the create
// payload and E the edit payload; most resources use the same type for both.
type crudService[T any, A any, E any] interface {
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, tc tenant.Context, req A) (*T, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req E) (*T, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

type listService[T any] interface {
	List(ctx context.Context, tc tenant.Context, search string) ([]T, error)
}

type relatedService interface {
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
}

// crudHandler serves GET /:id, POST, PUT /:id, DELETE /:id and POST /delete.
type crudHandler[T any, A any, E any] struct {
	svc crudService[T, A, E]
}

func (h crudHandler[T, A, E]) Get(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.GetByID(c.Request.Context(), tc, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, item)
}

func (h crudHandler[T, A, E]) Create(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	var req A
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Add(c.Request.Context(), tc, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, item)
}

func (h crudHandler[T, A, E]) Update(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req E
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Edit(c.Request.Context(), tc, id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, item)
}

func (h crudHandler[T, A, E]) Delete(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), tc, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

func (h crudHandler[T, A, E]) DeleteBulk(c *gin.Context) {
	tc, ok := currentTenant(c)
	if !ok {
		return
	}
	ids, ok := bindIDs(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveBulk(c.Request.Context(), tc, ids); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// Register mounts the shared routes on g. Static paths go first so that
// "/delete" is never taken for an id.
func (h crudHandler[T, A, E]) Register(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.POST("/delete", h.DeleteBulk)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func listHandler[T any](svc listService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := currentTenant(c)
		if !ok {
			return
		}
		items, err := svc.List(c.Request.Context(), tc, c.Query("search"))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusOK, items)
	}
}

func relatedInfoHandler(svc relatedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := currentTenant(c)
		if !ok {
			return
		}
		ids, ok := bindIDs(c)
		if !ok {
			return
		}
		infos, err := svc.GetRelatedInfo(c.Request.Context(), tc, ids)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusOK, infos)
	}
}
