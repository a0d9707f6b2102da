package models

// Neighborhood is a bairro. Parent of dealerships and charging stations.
type Neighborhood struct {
	ID   uint   `json:"bairroId" gorm:"column:bairro_id;primaryKey;autoIncrement"`
	Nome string `json:"nome" gorm:"column:nome;size:100;not null"`
}

func (Neighborhood) TableName() string {
	return "bairro"
}

type NeighborhoodInput struct {
	Nome *string `json:"nome" binding:"omitempty,notblank,max=100" create:"required"`
}

type NeighborhoodResponse struct {
	BairroID uint   `json:"bairroId"`
	Nome     string `json:"nome"`
}

func (r NeighborhoodResponse) ResourceID() uint { return r.BairroID }

func (n *Neighborhood) ToResponse() NeighborhoodResponse {
	return NeighborhoodResponse{
		BairroID: n.ID,
		Nome:     n.Nome,
	}
}
