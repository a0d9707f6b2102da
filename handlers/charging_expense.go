package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecodrive/models"
	"ecodrive/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ChargingExpenseHandler struct {
	*CRUDHandler[models.ChargingExpenseInput, models.ChargingExpenseResponse]
	svc *services.ChargingExpenseService
}

func NewChargingExpenseHandler(svc *services.ChargingExpenseService) *ChargingExpenseHandler {
	return &ChargingExpenseHandler{
		CRUDHandler: NewCRUDHandler[models.ChargingExpenseInput, models.ChargingExpenseResponse]("gastos-carregamento", svc),
		svc:         svc,
	}
}

func (h *ChargingExpenseHandler) Register(g *gin.RouterGroup) {
	g.GET("/historico/:historicoId", h.byParent("historicoId", h.svc.FindByHistory))
	g.GET("/periodo", h.ByPeriod)
	g.GET("/exportar", h.Export)
	h.CRUDHandler.Register(g)
}

func (h *ChargingExpenseHandler) ByPeriod(c *gin.Context) {
	inicio, fim, ok := period(c)
	if !ok {
		return
	}
	rs, err := h.svc.FindByPeriod(c.Request.Context(), inicio, fim)
	h.items(c, rs, err)
}

// Export downloads the expenses as an xlsx workbook; inicio and fim are optional.
func (h *ChargingExpenseHandler) Export(c *gin.Context) {
	inicio, ok := timeQuery(c, "inicio", false)
	if !ok {
		return
	}
	fim, ok := timeQuery(c, "fim", true)
	if !ok {
		return
	}
	buf, err := h.svc.Export(c.Request.Context(), inicio, fim)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="gastos-carregamento.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
