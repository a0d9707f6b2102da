package models

import "time"

// ChargingExpense is the cost of exactly one ChargingHistory.
type ChargingExpense struct {
	ID          uint      `json:"gastoId" gorm:"column:gasto_id;primaryKey;autoIncrement"`
	HistoricoID uint      `json:"historicoId" gorm:"column:historico_id;not null;uniqueIndex:uk_gasto_historico"`
	DataGasto   time.Time `json:"dataGasto" gorm:"column:data_gasto;not null;index"`
	CustoTotal  float64   `json:"custoTotal" gorm:"column:custo_total;precision:10;scale:2;not null"`

	Historico *ChargingHistory `json:"-" gorm:"foreignKey:HistoricoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ChargingExpense) TableName() string {
	return "gasto_carregamento"
}

type ChargingExpenseInput struct {
	HistoricoID *uint      `json:"historicoId" create:"required"`
	DataGasto   *time.Time `json:"dataGasto"`
	CustoTotal  *float64   `json:"custoTotal" create:"required"`
}

type ChargingExpenseResponse struct {
	GastoID     uint      `json:"gastoId"`
	HistoricoID uint      `json:"historicoId"`
	DataGasto   time.Time `json:"dataGasto"`
	CustoTotal  float64   `json:"custoTotal"`
}

func (r ChargingExpenseResponse) ResourceID() uint { return r.GastoID }

func (g *ChargingExpense) ToResponse() ChargingExpenseResponse {
	return ChargingExpenseResponse{
		GastoID:     g.ID,
		HistoricoID: g.HistoricoID,
		DataGasto:   g.DataGasto,
		CustoTotal:  g.CustoTotal,
	}
}
