package handlers

import (
	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type DealershipHandler struct {
	*CRUDHandler[models.DealershipInput, models.DealershipResponse]
	svc *services.DealershipService
}

func NewDealershipHandler(svc *services.DealershipService) *DealershipHandler {
	return &DealershipHandler{
		CRUDHandler: NewCRUDHandler[models.DealershipInput, models.DealershipResponse]("concessionarias", svc),
		svc:         svc,
	}
}

func (h *DealershipHandler) Register(g *gin.RouterGroup) {
	g.GET("/bairro/:bairroId", h.byParent("bairroId", h.svc.FindByNeighborhood))
	g.GET("/busca", h.byQuery("marca", h.svc.SearchByBrand))
	h.CRUDHandler.Register(g)
}
