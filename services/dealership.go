package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/models"
	"ecodrive/repository"
)

// DealershipService deletes a dealership together with the vehicles it sold.
type DealershipService struct {
	crud[models.Dealership, models.DealershipInput, models.DealershipResponse]
}

func NewDealershipService(db *gorm.DB, log *zap.Logger) *DealershipService {
	s := &DealershipService{}
	s.crud = crud[models.Dealership, models.DealershipInput, models.DealershipResponse]{
		db:         db,
		log:        log.Named("concessionaria"),
		entity:     "Concessionária",
		toResponse: (*models.Dealership).ToResponse,
		build:      buildDealership,
		apply:      applyDealership,
		remove: func(ctx context.Context, tx *gorm.DB, d *models.Dealership) error {
			n, err := repository.New[models.Vehicle](tx).DeleteWhere(ctx, "concessionaria_id = ?", d.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				s.log.Info("vehicles removed with dealership", zap.Uint("id", d.ID), zap.Int64("vehicles", n))
			}
			return repository.New[models.Dealership](tx).Delete(ctx, d)
		},
	}
	return s
}

func buildDealership(ctx context.Context, tx *gorm.DB, in models.DealershipInput) (*models.Dealership, error) {
	nome, err := requiredString("nome", in.Nome)
	if err != nil {
		return nil, err
	}
	marca, err := requiredString("marca", in.Marca)
	if err != nil {
		return nil, err
	}
	bairroID, err := required("bairroId", in.BairroID)
	if err != nil {
		return nil, err
	}
	temEstacao, err := required("temEstacaoRecarga", in.TemEstacaoRecarga)
	if err != nil {
		return nil, err
	}
	if err := mustExist[models.Neighborhood](ctx, tx, "Bairro", bairroID); err != nil {
		return nil, err
	}
	return &models.Dealership{
		Nome:              nome,
		BairroID:          bairroID,
		Marca:             marca,
		TemEstacaoRecarga: models.BoolToInt(temEstacao),
	}, nil
}

func applyDealership(ctx context.Context, tx *gorm.DB, d *models.Dealership, in models.DealershipInput) error {
	if err := notBlank("nome", in.Nome); err != nil {
		return err
	}
	if err := notBlank("marca", in.Marca); err != nil {
		return err
	}
	if in.BairroID != nil && *in.BairroID != d.BairroID {
		if err := mustExist[models.Neighborhood](ctx, tx, "Bairro", *in.BairroID); err != nil {
			return err
		}
		d.BairroID = *in.BairroID
	}
	if in.Nome != nil {
		d.Nome = *in.Nome
	}
	if in.Marca != nil {
		d.Marca = *in.Marca
	}
	if in.TemEstacaoRecarga != nil {
		d.TemEstacaoRecarga = models.BoolToInt(*in.TemEstacaoRecarga)
	}
	return nil
}

func (s *DealershipService) FindByNeighborhood(ctx context.Context, bairroID uint) ([]models.DealershipResponse, error) {
	items, err := repository.New[models.Dealership](s.db).FindWhere(ctx, "bairro_id = ?", bairroID)
	return s.list(items, err, "find by bairro", "Nenhuma concessionária encontrada no bairro com ID: "+uintStr(bairroID))
}

func (s *DealershipService) SearchByBrand(ctx context.Context, marca string) ([]models.DealershipResponse, error) {
	items, err := repository.New[models.Dealership](s.db).FindContaining(ctx, "marca", marca)
	return s.list(items, err, "search", "Nenhuma concessionária encontrada com a marca: "+marca)
}
