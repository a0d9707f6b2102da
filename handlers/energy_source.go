package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type EnergySourceHandler struct {
	*CRUDHandler[models.EnergySourceInput, models.EnergySourceResponse]
	svc *services.EnergySourceService
}

func NewEnergySourceHandler(svc *services.EnergySourceService) *EnergySourceHandler {
	return &EnergySourceHandler{
		CRUDHandler: NewCRUDHandler[models.EnergySourceInput, models.EnergySourceResponse]("fontes-energia", svc),
		svc:         svc,
	}
}

func (h *EnergySourceHandler) Register(g *gin.RouterGroup) {
	g.GET("/busca", h.byQuery("tipoEnergia", h.svc.SearchByType))
	h.CRUDHandler.Register(g)
}
