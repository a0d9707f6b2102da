package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/services"
)

type ReservationHandler struct {
	*CRUDHandler[models.ReservationInput, models.ReservationResponse]
	svc *services.ReservationService
}

func NewReservationHandler(svc *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		CRUDHandler: NewCRUDHandler[models.ReservationInput, models.ReservationResponse]("reservas", svc),
		svc:         svc,
	}
}

func (h *ReservationHandler) Register(g *gin.RouterGroup) {
	g.GET("/status/:status", h.ByStatus)
	g.GET("/usuario/:usuarioId", h.byParent("usuarioId", h.svc.FindByUser))
	g.GET("/periodo", h.ByPeriod)
	h.CRUDHandler.Register(g)
}

func (h *ReservationHandler) ByStatus(c *gin.Context) {
	status, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		fail(c, apperror.Invalidf("Parâmetro 'status' inválido: %s", c.Param("status")))
		return
	}
	rs, err := h.svc.FindByStatus(c.Request.Context(), status)
	h.items(c, rs, err)
}

func (h *ReservationHandler) ByPeriod(c *gin.Context) {
	inicio, fim, ok := period(c)
	if !ok {
		return
	}
	rs, err := h.svc.FindByPeriod(c.Request.Context(), inicio, fim)
	h.items(c, rs, err)
}
