package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type SustainableStationHandler struct {
	*CRUDHandler[models.SustainableStationInput, models.SustainableStationResponse]
	svc *services.SustainableStationService
}

func NewSustainableStationHandler(svc *services.SustainableStationService) *SustainableStationHandler {
	return &SustainableStationHandler{
		CRUDHandler: NewCRUDHandler[models.SustainableStationInput, models.SustainableStationResponse]("estacoes-sustentaveis", svc),
		svc:         svc,
	}
}

func (h *SustainableStationHandler) Register(g *gin.RouterGroup) {
	g.GET("/busca", h.byQuery("tipoEnergia", h.svc.SearchByEnergyType))
	h.CRUDHandler.Register(g)
}
