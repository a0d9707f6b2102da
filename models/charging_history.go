package models

import "time"

// ChargingHistory is one charging session of a user's vehicle at a station.
type ChargingHistory struct {
	ID               uint      `json:"historicoId" gorm:"column:historico_id;primaryKey;autoIncrement"`
	UsuarioID        uint      `json:"usuarioId" gorm:"column:usuario_id;not null;index"`
	VeiculoID        uint      `json:"veiculoId" gorm:"column:veiculo_id;not null;index"`
	EstacaoID        uint      `json:"estacaoId" gorm:"column:estacao_id;not null;index"`
	DataCarregamento time.Time `json:"dataCarregamento" gorm:"column:data_carregamento;not null"`
	KwhConsumidos    float64   `json:"kwhConsumidos" gorm:"column:kwh_consumidos;precision:10;scale:2;not null"`

	Usuario *User            `json:"-" gorm:"foreignKey:UsuarioID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Veiculo *Vehicle         `json:"-" gorm:"foreignKey:VeiculoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Estacao *ChargingStation `json:"-" gorm:"foreignKey:EstacaoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (ChargingHistory) TableName() string {
	return "historico_carregamento"
}

type ChargingHistoryInput struct {
	UsuarioID        *uint      `json:"usuarioId" create:"required"`
	VeiculoID        *uint      `json:"veiculoId" create:"required"`
	EstacaoID        *uint      `json:"estacaoId" create:"required"`
	DataCarregamento *time.Time `json:"dataCarregamento" create:"required"`
	KwhConsumidos    *float64   `json:"kwhConsumidos" create:"required"`
}

type ChargingHistoryResponse struct {
	HistoricoID      uint      `json:"historicoId"`
	UsuarioID        uint      `json:"usuarioId"`
	VeiculoID        uint      `json:"veiculoId"`
	EstacaoID        uint      `json:"estacaoId"`
	DataCarregamento time.Time `json:"dataCarregamento"`
	KwhConsumidos    float64   `json:"kwhConsumidos"`
}

func (r ChargingHistoryResponse) ResourceID() uint { return r.HistoricoID }

func (h *ChargingHistory) ToResponse() ChargingHistoryResponse {
	return ChargingHistoryResponse{
		HistoricoID:      h.ID,
		UsuarioID:        h.UsuarioID,
		VeiculoID:        h.VeiculoID,
		EstacaoID:        h.EstacaoID,
		DataCarregamento: h.DataCarregamento,
		KwhConsumidos:    h.KwhConsumidos,
	}
}
