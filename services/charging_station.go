package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

// ChargingStationService owns charging stations. Deleting a station removes its
// sustainable extension; reservations, history and status records block the delete.
type ChargingStationService struct {
	crud[models.ChargingStation, models.ChargingStationInput, models.ChargingStationResponse]
}

func NewChargingStationService(db *gorm.DB, log *zap.Logger) *ChargingStationService {
	s := &ChargingStationService{}
	s.crud = crud[models.ChargingStation, models.ChargingStationInput, models.ChargingStationResponse]{
		db:         db,
		log:        log.Named("estacao_recarga"),
		entity:     "Estação de recarga",
		toResponse: (*models.ChargingStation).ToResponse,
		build:      buildChargingStation,
		apply:      applyChargingStation,
		remove:     removeChargingStation,
	}
	return s
}

func buildChargingStation(ctx context.Context, tx *gorm.DB, in models.ChargingStationInput) (*models.ChargingStation, error) {
	nome, err := requiredString("nome", in.Nome)
	if err != nil {
		return nil, err
	}
	tipo, err := requiredString("tipoCarregador", in.TipoCarregador)
	if err != nil {
		return nil, err
	}
	bairroID, err := required("bairroId", in.BairroID)
	if err != nil {
		return nil, err
	}
	if in.Latitude == nil || in.Longitude == nil {
		return nil, apperror.Invalid("Latitude e Longitude são obrigatórios.")
	}
	preco, err := required("precoPorKwh", in.PrecoPorKwh)
	if err != nil {
		return nil, err
	}
	if preco < 0 {
		return nil, apperror.Invalid("O preço por kWh não pode ser negativo.")
	}
	if err := mustExist[models.Neighborhood](ctx, tx, "Bairro", bairroID); err != nil {
		return nil, err
	}
	return &models.ChargingStation{
		Nome:           nome,
		BairroID:       bairroID,
		Latitude:       *in.Latitude,
		Longitude:      *in.Longitude,
		TipoCarregador: tipo,
		PrecoPorKwh:    preco,
	}, nil
}

func applyChargingStation(ctx context.Context, tx *gorm.DB, st *models.ChargingStation, in models.ChargingStationInput) error {
	if err := notBlank("nome", in.Nome); err != nil {
		return err
	}
	if err := notBlank("tipoCarregador", in.TipoCarregador); err != nil {
		return err
	}
	if in.PrecoPorKwh != nil && *in.PrecoPorKwh < 0 {
		return apperror.Invalid("O preço por kWh não pode ser negativo.")
	}
	if in.BairroID != nil && *in.BairroID != st.BairroID {
		if err := mustExist[models.Neighborhood](ctx, tx, "Bairro", *in.BairroID); err != nil {
			return err
		}
		st.BairroID = *in.BairroID
	}
	if in.Nome != nil {
		st.Nome = *in.Nome
	}
	if in.Latitude != nil {
		st.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		st.Longitude = *in.Longitude
	}
	if in.TipoCarregador != nil {
		st.TipoCarregador = *in.TipoCarregador
	}
	if in.PrecoPorKwh != nil {
		st.PrecoPorKwh = *in.PrecoPorKwh
	}
	return nil
}

func removeChargingStation(ctx context.Context, tx *gorm.DB, st *models.ChargingStation) error {
	const parent = "Estação de recarga"
	if err := noDependents[models.Reservation](ctx, tx, "estacao_id", st.ID, parent, "reserva(s)"); err != nil {
		return err
	}
	if err := noDependents[models.ChargingHistory](ctx, tx, "estacao_id", st.ID, parent, "histórico(s) de carregamento"); err != nil {
		return err
	}
	if err := noDependents[models.StationStatus](ctx, tx, "estacao_id", st.ID, parent, "status"); err != nil {
		return err
	}
	if _, err := repository.New[models.SustainableStation](tx).DeleteWhere(ctx, "estacao_id = ?", st.ID); err != nil {
		return err
	}
	return repository.New[models.ChargingStation](tx).Delete(ctx, st)
}

func (s *ChargingStationService) FindByNeighborhood(ctx context.Context, bairroID uint) ([]models.ChargingStationResponse, error) {
	items, err := repository.New[models.ChargingStation](s.db).FindWhere(ctx, "bairro_id = ?", bairroID)
	return s.list(items, err, "find by bairro", "Nenhuma estação de recarga encontrada para o bairro com ID: "+uintStr(bairroID))
}

func (s *ChargingStationService) SearchByChargerType(ctx context.Context, tipo string) ([]models.ChargingStationResponse, error) {
	items, err := repository.New[models.ChargingStation](s.db).FindContaining(ctx, "tipo_carregador", tipo)
	return s.list(items, err, "search", "Nenhuma estação de recarga encontrada com o tipo de carregador: "+tipo)
}
