package models

// Dealership is a vehicle concessionaria located in a neighborhood.
type Dealership struct {
	ID       uint   `json:"concessionariaId" gorm:"column:concessionaria_id;primaryKey;autoIncrement"`
	Nome     string `json:"nome" gorm:"column:nome;size:100;not null"`
	BairroID uint   `json:"bairroId" gorm:"column:bairro_id;not null;index"`
	Marca    string `json:"marca" gorm:"column:marca;size:50;not null"`
	// stored as 0/1
	TemEstacaoRecarga int `json:"temEstacaoRecarga" gorm:"column:tem_estacao_recarga;not null;default:0"`

	Bairro *Neighborhood `json:"-" gorm:"foreignKey:BairroID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Dealership) TableName() string {
	return "concessionaria"
}

type DealershipInput struct {
	Nome              *string `json:"nome" binding:"omitempty,notblank,max=100" create:"required"`
	BairroID          *uint   `json:"bairroId" create:"required"`
	Marca             *string `json:"marca" binding:"omitempty,notblank,max=50" create:"required"`
	TemEstacaoRecarga *bool   `json:"temEstacaoRecarga" create:"required"`
}

type DealershipResponse struct {
	ConcessionariaID  uint   `json:"concessionariaId"`
	Nome              string `json:"nome"`
	BairroID          uint   `json:"bairroId"`
	Marca             string `json:"marca"`
	TemEstacaoRecarga bool   `json:"temEstacaoRecarga"`
}

func (r DealershipResponse) ResourceID() uint { return r.ConcessionariaID }

func (d *Dealership) ToResponse() DealershipResponse {
	return DealershipResponse{
		ConcessionariaID:  d.ID,
		Nome:              d.Nome,
		BairroID:          d.BairroID,
		Marca:             d.Marca,
		TemEstacaoRecarga: IntToBool(d.TemEstacaoRecarga),
	}
}
