package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

type EnergySourceService struct {
	crud[models.EnergySource, models.EnergySourceInput, models.EnergySourceResponse]
}

func NewEnergySourceService(db *gorm.DB, log *zap.Logger) *EnergySourceService {
	s := &EnergySourceService{}
	s.crud = crud[models.EnergySource, models.EnergySourceInput, models.EnergySourceResponse]{
		db:         db,
		log:        log.Named("fonte_energia"),
		entity:     "Fonte de energia",
		toResponse: (*models.EnergySource).ToResponse,
		build: func(_ context.Context, _ *gorm.DB, in models.EnergySourceInput) (*models.EnergySource, error) {
			tipo, err := requiredString("tipoEnergia", in.TipoEnergia)
			if err != nil {
				return nil, err
			}
			if err := validEnergyType(tipo); err != nil {
				return nil, err
			}
			return &models.EnergySource{TipoEnergia: tipo}, nil
		},
		apply: func(_ context.Context, _ *gorm.DB, e *models.EnergySource, in models.EnergySourceInput) error {
			if in.TipoEnergia == nil {
				return nil
			}
			if err := validEnergyType(*in.TipoEnergia); err != nil {
				return err
			}
			e.TipoEnergia = *in.TipoEnergia
			return nil
		},
		remove: func(ctx context.Context, tx *gorm.DB, e *models.EnergySource) error {
			if err := noDependents[models.SustainableStation](ctx, tx, "fonte_id", e.ID, "Fonte de energia", "estação(ões) sustentável(is)"); err != nil {
				return err
			}
			return repository.New[models.EnergySource](tx).Delete(ctx, e)
		},
	}
	return s
}

func validEnergyType(tipo string) error {
	switch tipo {
	case models.EnergiaSolar, models.EnergiaComum:
		return nil
	}
	return apperror.Invalidf("Tipo de energia inválido: %s", tipo)
}

func (s *EnergySourceService) SearchByType(ctx context.Context, tipo string) ([]models.EnergySourceResponse, error) {
	items, err := repository.New[models.EnergySource](s.db).FindContaining(ctx, "tipo_energia", tipo)
	return s.list(items, err, "search", "Nenhuma fonte de energia encontrada com o tipo: "+tipo)
}
