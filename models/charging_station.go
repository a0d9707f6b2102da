package models

// ChargingStation is an estacao de recarga.
type ChargingStation struct {
	ID             uint    `json:"estacaoId" gorm:"column:estacao_id;primaryKey;autoIncrement"`
	Nome           string  `json:"nome" gorm:"column:nome;size:100;not null"`
	BairroID       uint    `json:"bairroId" gorm:"column:bairro_id;not null;index"`
	Latitude       float64 `json:"latitude" gorm:"column:latitude;not null;index:idx_estacao_coord"`
	Longitude      float64 `json:"longitude" gorm:"column:longitude;not null;index:idx_estacao_coord"`
	TipoCarregador string  `json:"tipoCarregador" gorm:"column:tipo_carregador;size:50;not null"`
	PrecoPorKwh    float64 `json:"precoPorKwh" gorm:"column:preco_por_kwh;precision:10;scale:2;not null"`

	Bairro *Neighborhood `json:"-" gorm:"foreignKey:BairroID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (ChargingStation) TableName() string {
	return "estacao_recarga"
}

type ChargingStationInput struct {
	Nome           *string  `json:"nome" binding:"omitempty,notblank,max=100" create:"required"`
	BairroID       *uint    `json:"bairroId" create:"required"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,latitude" create:"required"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,longitude" create:"required"`
	TipoCarregador *string  `json:"tipoCarregador" binding:"omitempty,notblank,max=50" create:"required"`
	PrecoPorKwh    *float64 `json:"precoPorKwh" create:"required"`
}

type ChargingStationResponse struct {
	EstacaoID      uint    `json:"estacaoId"`
	Nome           string  `json:"nome"`
	BairroID       uint    `json:"bairroId"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TipoCarregador string  `json:"tipoCarregador"`
	PrecoPorKwh    float64 `json:"precoPorKwh"`
	// set only by the proximity search
	DistanciaKm *float64 `json:"distanciaKm,omitempty"`
}

func (r ChargingStationResponse) ResourceID() uint { return r.EstacaoID }

func (s *ChargingStation) ToResponse() ChargingStationResponse {
	return ChargingStationResponse{
		EstacaoID:      s.ID,
		Nome:           s.Nome,
		BairroID:       s.BairroID,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		TipoCarregador: s.TipoCarregador,
		PrecoPorKwh:    s.PrecoPorKwh,
	}
}
