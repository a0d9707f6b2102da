package models

import "time"

const (
	StatusAtiva        = "Ativa"
	StatusDefeituosa   = "Defeituosa"
	StatusEmManutencao = "Em Manutenção"
)

// StationStatus records the operational state of a charging station. UltimaAtualizacao
// is stamped by the server on every write.
type StationStatus struct {
	ID                uint      `json:"statusId" gorm:"column:status_id;primaryKey;autoIncrement"`
	EstacaoID         uint      `json:"estacaoId" gorm:"column:estacao_id;not null;index"`
	Status            string    `json:"status" gorm:"column:status;size:50;not null"`
	UltimaAtualizacao time.Time `json:"ultimaAtualizacao" gorm:"column:ultima_atualizacao;not null"`

	Estacao *ChargingStation `json:"-" gorm:"foreignKey:EstacaoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (StationStatus) TableName() string {
	return "status_estacao_recarga"
}

type StationStatusInput struct {
	EstacaoID *uint   `json:"estacaoId" create:"required"`
	Status    *string `json:"status" binding:"omitempty,oneof=Ativa Defeituosa 'Em Manutenção'" create:"required"`
}

type StationStatusResponse struct {
	StatusID          uint      `json:"statusId"`
	EstacaoID         uint      `json:"estacaoId"`
	Status            string    `json:"status"`
	UltimaAtualizacao time.Time `json:"ultimaAtualizacao"`
}

func (r StationStatusResponse) ResourceID() uint { return r.StatusID }

func (s *StationStatus) ToResponse() StationStatusResponse {
	return StationStatusResponse{
		StatusID:          s.ID,
		EstacaoID:         s.EstacaoID,
		Status:            s.Status,
		UltimaAtualizacao: s.UltimaAtualizacao,
	}
}
