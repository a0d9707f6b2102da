package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

type SustainableStationService struct {
	crud[models.SustainableStation, models.SustainableStationInput, models.SustainableStationResponse]
}

func NewSustainableStationService(db *gorm.DB, log *zap.Logger) *SustainableStationService {
	s := &SustainableStationService{}
	s.crud = crud[models.SustainableStation, models.SustainableStationInput, models.SustainableStationResponse]{
		db:         db,
		log:        log.Named("estacao_sustentavel"),
		entity:     "Estação sustentável",
		toResponse: (*models.SustainableStation).ToResponse,
		build:      buildSustainableStation,
		apply:      applySustainableStation,
	}
	return s
}

func buildSustainableStation(ctx context.Context, tx *gorm.DB, in models.SustainableStationInput) (*models.SustainableStation, error) {
	estacaoID, err := required("estacaoId", in.EstacaoID)
	if err != nil {
		return nil, err
	}
	fonteID, err := required("fonteId", in.FonteID)
	if err != nil {
		return nil, err
	}
	reducao, err := required("reducaoCarbono", in.ReducaoCarbono)
	if err != nil {
		return nil, err
	}
	if err := positive("reducaoCarbono", reducao); err != nil {
		return nil, err
	}
	if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", estacaoID); err != nil {
		return nil, err
	}
	if err := mustExist[models.EnergySource](ctx, tx, "Fonte de energia", fonteID); err != nil {
		return nil, err
	}
	taken, err := repository.New[models.SustainableStation](tx).ExistsByID(ctx, estacaoID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Invalidf("A estação de recarga %d já possui registro de estação sustentável.", estacaoID)
	}
	return &models.SustainableStation{
		EstacaoID:      estacaoID,
		FonteID:        fonteID,
		ReducaoCarbono: reducao,
	}, nil
}

// applySustainableStation keeps the station id fixed: it is the record's identity.
func applySustainableStation(ctx context.Context, tx *gorm.DB, st *models.SustainableStation, in models.SustainableStationInput) error {
	if in.EstacaoID != nil && *in.EstacaoID != st.EstacaoID {
		return apperror.Invalid("A estação de recarga de uma estação sustentável não pode ser alterada.")
	}
	if in.ReducaoCarbono != nil {
		if err := positive("reducaoCarbono", *in.ReducaoCarbono); err != nil {
			return err
		}
		st.ReducaoCarbono = *in.ReducaoCarbono
	}
	if in.FonteID != nil && *in.FonteID != st.FonteID {
		if err := mustExist[models.EnergySource](ctx, tx, "Fonte de energia", *in.FonteID); err != nil {
			return err
		}
		st.FonteID = *in.FonteID
	}
	return nil
}

// SearchByEnergyType matches the energy source type of each record, ignoring case.
func (s *SustainableStationService) SearchByEnergyType(ctx context.Context, tipo string) ([]models.SustainableStationResponse, error) {
	var items []models.SustainableStation
	err := s.db.WithContext(ctx).
		Joins("JOIN fonte_energia ON fonte_energia.fonte_id = estacao_sustentavel.fonte_id").
		Where(repository.Contains(clause.Column{Table: "fonte_energia", Name: "tipo_energia"}, tipo)).
		Order("estacao_sustentavel.estacao_id").
		Find(&items).Error
	return s.list(items, err, "search", "Nenhuma estação sustentável encontrada com o tipo de energia: "+tipo)
}
