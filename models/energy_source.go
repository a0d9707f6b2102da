package models

const (
	EnergiaSolar = "Paineis Solares"
	EnergiaComum = "Energia Comum"
)

type EnergySource struct {
	ID          uint   `json:"fonteId" gorm:"column:fonte_id;primaryKey;autoIncrement"`
	TipoEnergia string `json:"tipoEnergia" gorm:"column:tipo_energia;size:50;not null"`
}

func (EnergySource) TableName() string {
	return "fonte_energia"
}

type EnergySourceInput struct {
	TipoEnergia *string `json:"tipoEnergia" binding:"omitempty,oneof='Paineis Solares' 'Energia Comum'" create:"required"`
}

type EnergySourceResponse struct {
	FonteID     uint   `json:"fonteId"`
	TipoEnergia string `json:"tipoEnergia"`
}

func (r EnergySourceResponse) ResourceID() uint { return r.FonteID }

func (e *EnergySource) ToResponse() EnergySourceResponse {
	return EnergySourceResponse{FonteID: e.ID, TipoEnergia: e.TipoEnergia}
}
