package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

type ChargingStationHandler struct {
	*CRUDHandler[models.ChargingStationInput, models.ChargingStationResponse]
	svc *services.ChargingStationService
}

func NewChargingStationHandler(svc *services.ChargingStationService) *ChargingStationHandler {
	return &ChargingStationHandler{
		CRUDHandler: NewCRUDHandler[models.ChargingStationInput, models.ChargingStationResponse]("estacoes-recarga", svc),
		svc:         svc,
	}
}

func (h *ChargingStationHandler) Register(g *gin.RouterGroup) {
	g.GET("/bairro/:bairroId", h.byParent("bairroId", h.svc.FindByNeighborhood))
	g.GET("/busca", h.byQuery("tipoCarregador", h.svc.SearchByChargerType))
	g.GET("/proximas", h.Nearby)
	g.GET("/geojson", h.GeoJSON)
	h.CRUDHandler.Register(g)
}

// Nearby lists stations around latitude/longitude within raioKm, closest first.
func (h *ChargingStationHandler) Nearby(c *gin.Context) {
	lat, ok := floatQuery(c, "latitude", true)
	if !ok {
		return
	}
	lon, ok := floatQuery(c, "longitude", true)
	if !ok {
		return
	}
	radius, ok := floatQuery(c, "raioKm", false)
	if !ok {
		return
	}
	rs, err := h.svc.Nearby(c.Request.Context(), lat, lon, radius)
	h.items(c, rs, err)
}

func (h *ChargingStationHandler) GeoJSON(c *gin.Context) {
	fc, err := h.svc.FeatureCollection(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	body, err := fc.MarshalJSON()
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}
