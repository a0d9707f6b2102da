package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type VehicleHandler struct {
	*CRUDHandler[models.VehicleInput, models.VehicleResponse]
	svc *services.VehicleService
}

func NewVehicleHandler(svc *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		CRUDHandler: NewCRUDHandler[models.VehicleInput, models.VehicleResponse]("veiculos", svc),
		svc:         svc,
	}
}

func (h *VehicleHandler) Register(g *gin.RouterGroup) {
	g.GET("/usuario/:usuarioId", h.byParent("usuarioId", h.svc.FindByUser))
	h.CRUDHandler.Register(g)
}
