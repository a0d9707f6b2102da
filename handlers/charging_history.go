package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type ChargingHistoryHandler struct {
	*CRUDHandler[models.ChargingHistoryInput, models.ChargingHistoryResponse]
	svc *services.ChargingHistoryService
}

func NewChargingHistoryHandler(svc *services.ChargingHistoryService) *ChargingHistoryHandler {
	return &ChargingHistoryHandler{
		CRUDHandler: NewCRUDHandler[models.ChargingHistoryInput, models.ChargingHistoryResponse]("historico-carregamento", svc),
		svc:         svc,
	}
}

func (h *ChargingHistoryHandler) Register(g *gin.RouterGroup) {
	g.GET("/usuario/:usuarioId", h.byParent("usuarioId", h.svc.FindByUser))
	g.GET("/veiculo/:veiculoId", h.byParent("veiculoId", h.svc.FindByVehicle))
	h.CRUDHandler.Register(g)
}
