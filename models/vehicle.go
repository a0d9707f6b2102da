package models

// Vehicle belongs to a user and optionally to the dealership that sold it. Marca is
// unique across all vehicles.
type Vehicle struct {
	ID               uint   `json:"veiculoId" gorm:"column:veiculo_id;primaryKey;autoIncrement"`
	UsuarioID        uint   `json:"usuarioId" gorm:"column:usuario_id;not null;index"`
	ConcessionariaID *uint  `json:"concessionariaId,omitempty" gorm:"column:concessionaria_id;index"`
	Marca            string `json:"marca" gorm:"column:marca;size:50;not null;uniqueIndex:uk_veiculo_marca"`
	Modelo           string `json:"modelo" gorm:"column:modelo;size:50;not null"`
	Ano              int    `json:"ano" gorm:"column:ano;not null"`
	// stored as 0/1
	IsEletrico int `json:"isEletrico" gorm:"column:is_eletrico;not null;default:0"`

	Usuario        *User       `json:"-" gorm:"foreignKey:UsuarioID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Concessionaria *Dealership `json:"-" gorm:"foreignKey:ConcessionariaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Vehicle) TableName() string {
	return "veiculo"
}

type VehicleInput struct {
	UsuarioID        *uint   `json:"usuarioId" create:"required"`
	ConcessionariaID *uint   `json:"concessionariaId"`
	Marca            *string `json:"marca" binding:"omitempty,notblank,max=50" create:"required"`
	Modelo           *string `json:"modelo" binding:"omitempty,notblank,max=50" create:"required"`
	Ano              *int    `json:"ano" binding:"omitempty,min=1886,max=2100" create:"required"`
	IsEletrico       *bool   `json:"isEletrico" create:"required"`
}

type VehicleResponse struct {
	VeiculoID        uint   `json:"veiculoId"`
	UsuarioID        uint   `json:"usuarioId"`
	ConcessionariaID *uint  `json:"concessionariaId,omitempty"`
	Marca            string `json:"marca"`
	Modelo           string `json:"modelo"`
	Ano              int    `json:"ano"`
	IsEletrico       bool   `json:"isEletrico"`
}

func (r VehicleResponse) ResourceID() uint { return r.VeiculoID }

func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		VeiculoID:        v.ID,
		UsuarioID:        v.UsuarioID,
		ConcessionariaID: v.ConcessionariaID,
		Marca:            v.Marca,
		Modelo:           v.Modelo,
		Ano:              v.Ano,
		IsEletrico:       IntToBool(v.IsEletrico),
	}
}
