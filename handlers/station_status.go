package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type StationStatusHandler struct {
	*CRUDHandler[models.StationStatusInput, models.StationStatusResponse]
	svc *services.StationStatusService
}

func NewStationStatusHandler(svc *services.StationStatusService) *StationStatusHandler {
	return &StationStatusHandler{
		CRUDHandler: NewCRUDHandler[models.StationStatusInput, models.StationStatusResponse]("status-estacoes", svc),
		svc:         svc,
	}
}

func (h *StationStatusHandler) Register(g *gin.RouterGroup) {
	g.GET("/estacao/:estacaoId", h.byParent("estacaoId", h.svc.FindByStation))
	h.CRUDHandler.Register(g)
}
