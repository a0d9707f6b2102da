package models

// SustainableStation extends a ChargingStation with its energy source. It shares the
// station's primary key, so a station has at most one sustainable record.
type SustainableStation struct {
	EstacaoID      uint    `json:"estacaoId" gorm:"column:estacao_id;primaryKey;autoIncrement:false"`
	FonteID        uint    `json:"fonteId" gorm:"column:fonte_id;not null;index"`
	ReducaoCarbono float64 `json:"reducaoCarbono" gorm:"column:reducao_carbono;precision:10;scale:2;not null"`

	Fonte *EnergySource `json:"-" gorm:"foreignKey:FonteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (SustainableStation) TableName() string {
	return "estacao_sustentavel"
}

type SustainableStationInput struct {
	EstacaoID      *uint    `json:"estacaoId" create:"required"`
	FonteID        *uint    `json:"fonteId" create:"required"`
	ReducaoCarbono *float64 `json:"reducaoCarbono" create:"required"`
}

type SustainableStationResponse struct {
	EstacaoID      uint    `json:"estacaoId"`
	FonteID        uint    `json:"fonteId"`
	ReducaoCarbono float64 `json:"reducaoCarbono"`
}

func (r SustainableStationResponse) ResourceID() uint { return r.EstacaoID }

func (s *SustainableStation) ToResponse() SustainableStationResponse {
	return SustainableStationResponse{
		EstacaoID:      s.EstacaoID,
		FonteID:        s.FonteID,
		ReducaoCarbono: s.ReducaoCarbono,
	}
}
