package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/models"
	"ecodrive/repository"
)

type NeighborhoodService struct {
	crud[models.Neighborhood, models.NeighborhoodInput, models.NeighborhoodResponse]
}

func NewNeighborhoodService(db *gorm.DB, log *zap.Logger) *NeighborhoodService {
	s := &NeighborhoodService{}
	s.crud = crud[models.Neighborhood, models.NeighborhoodInput, models.NeighborhoodResponse]{
		db:         db,
		log:        log.Named("bairro"),
		entity:     "Bairro",
		toResponse: (*models.Neighborhood).ToResponse,
		build: func(_ context.Context, _ *gorm.DB, in models.NeighborhoodInput) (*models.Neighborhood, error) {
			nome, err := requiredString("nome", in.Nome)
			if err != nil {
				return nil, err
			}
			return &models.Neighborhood{Nome: nome}, nil
		},
		apply: func(_ context.Context, _ *gorm.DB, n *models.Neighborhood, in models.NeighborhoodInput) error {
			if err := notBlank("nome", in.Nome); err != nil {
				return err
			}
			if in.Nome != nil {
				n.Nome = *in.Nome
			}
			return nil
		},
		remove: func(ctx context.Context, tx *gorm.DB, n *models.Neighborhood) error {
			if err := noDependents[models.ChargingStation](ctx, tx, "bairro_id", n.ID, "Bairro", "estação(ões) de recarga"); err != nil {
				return err
			}
			if err := noDependents[models.Dealership](ctx, tx, "bairro_id", n.ID, "Bairro", "concessionária(s)"); err != nil {
				return err
			}
			return repository.New[models.Neighborhood](tx).Delete(ctx, n)
		},
	}
	return s
}

// SearchByName matches names containing nome, ignoring case.
func (s *NeighborhoodService) SearchByName(ctx context.Context, nome string) ([]models.NeighborhoodResponse, error) {
	items, err := repository.New[models.Neighborhood](s.db).FindContaining(ctx, "nome", nome)
	return s.list(items, err, "search", "Nenhum bairro encontrado com o nome: "+nome)
}
