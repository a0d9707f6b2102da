package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecodrive/repository"
)

type resource interface {
	ResourceID() uint
}

// CRUDService is the service surface every entity exposes.
type CRUDService[C any, R resource] interface {
	List(ctx context.Context, page, size int) (repository.Page[R], error)
	Get(ctx context.Context, id uint) (R, error)
	Create(ctx context.Context, in C) (R, error)
	Update(ctx context.Context, id uint, in C) (R, error)
	Delete(ctx context.Context, id uint) error
}

// CRUDHandler serves the five standard endpoints of one resource.
type CRUDHandler[C any, R resource] struct {
	svc   CRUDService[C, R]
	links linker
}

func NewCRUDHandler[C any, R resource](rel string, svc CRUDService[C, R]) *CRUDHandler[C, R] {
	return &CRUDHandler[C, R]{svc: svc, links: linker{rel: rel}}
}

// Rel is the collection relation and base path segment.
func (h *CRUDHandler[C, R]) Rel() string {
	return h.links.rel
}

// Register mounts the standard endpoints on g. Finder routes must be added by the caller.
func (h *CRUDHandler[C, R]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *CRUDHandler[C, R]) List(c *gin.Context) {
	page, size := pageParams(c)
	p, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollection(c, h.links, p))
}

func (h *CRUDHandler[C, R]) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toItem(c, h.links, r))
}

func (h *CRUDHandler[C, R]) Create(c *gin.Context) {
	var in C
	if !bindCreate(c, &in) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Location", h.links.itemHref(c, r.ResourceID()))
	c.JSON(http.StatusCreated, toItem(c, h.links, r))
}

func (h *CRUDHandler[C, R]) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in C
	if !bindUpdate(c, &in) {
		return
	}
	r, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toItem(c, h.links, r))
}

func (h *CRUDHandler[C, R]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// items writes a finder result as a JSON array of linked items.
func (h *CRUDHandler[C, R]) items(c *gin.Context, rs []R, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toItems(c, h.links, rs))
}

// byParent serves a finder keyed by a numeric path parameter.
func (h *CRUDHandler[C, R]) byParent(param string, find func(context.Context, uint) ([]R, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, param)
		if !ok {
			return
		}
		rs, err := find(c.Request.Context(), id)
		h.items(c, rs, err)
	}
}

// byQuery serves a finder keyed by a required query parameter.
func (h *CRUDHandler[C, R]) byQuery(param string, find func(context.Context, string) ([]R, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := requiredQuery(c, param)
		if !ok {
			return
		}
		rs, err := find(c.Request.Context(), v)
		h.items(c, rs, err)
	}
}
