package models

import "time"

// Reservation status codes as stored and sent on the wire.
const (
	ReservaPendente   = 0
	ReservaConfirmada = 1
	ReservaCancelada  = 2
	ReservaExpirada   = 3
)

type Reservation struct {
	ID          uint      `json:"reservaId" gorm:"column:reserva_id;primaryKey;autoIncrement"`
	UsuarioID   uint      `json:"usuarioId" gorm:"column:usuario_id;not null;index"`
	EstacaoID   uint      `json:"estacaoId" gorm:"column:estacao_id;not null;index"`
	DataReserva time.Time `json:"dataReserva" gorm:"column:data_reserva;not null;index"`
	Status      int       `json:"status" gorm:"column:status;not null;index"`

	Usuario *User            `json:"-" gorm:"foreignKey:UsuarioID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Estacao *ChargingStation `json:"-" gorm:"foreignKey:EstacaoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Reservation) TableName() string {
	return "reserva"
}

type ReservationInput struct {
	UsuarioID   *uint      `json:"usuarioId" create:"required"`
	EstacaoID   *uint      `json:"estacaoId" create:"required"`
	DataReserva *time.Time `json:"dataReserva" create:"required"`
	Status      *int       `json:"status" binding:"omitempty,min=0,max=3" create:"required"`
}

type ReservationResponse struct {
	ReservaID   uint      `json:"reservaId"`
	UsuarioID   uint      `json:"usuarioId"`
	EstacaoID   uint      `json:"estacaoId"`
	DataReserva time.Time `json:"dataReserva"`
	Status      int       `json:"status"`
}

func (r ReservationResponse) ResourceID() uint { return r.ReservaID }

func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ReservaID:   r.ID,
		UsuarioID:   r.UsuarioID,
		EstacaoID:   r.EstacaoID,
		DataReserva: r.DataReserva,
		Status:      r.Status,
	}
}
