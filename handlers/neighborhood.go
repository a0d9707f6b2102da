package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type NeighborhoodHandler struct {
	*CRUDHandler[models.NeighborhoodInput, models.NeighborhoodResponse]
	svc *services.NeighborhoodService
}

func NewNeighborhoodHandler(svc *services.NeighborhoodService) *NeighborhoodHandler {
	return &NeighborhoodHandler{
		CRUDHandler: NewCRUDHandler[models.NeighborhoodInput, models.NeighborhoodResponse]("bairros", svc),
		svc:         svc,
	}
}

func (h *NeighborhoodHandler) Register(g *gin.RouterGroup) {
	g.GET("/busca", h.byQuery("nome", h.svc.SearchByName))
	h.CRUDHandler.Register(g)
}
