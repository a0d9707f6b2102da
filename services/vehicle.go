package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

// VehicleService manages veiculos. A brand can be registered by only one vehicle.
type VehicleService struct {
	crud[models.Vehicle, models.VehicleInput, models.VehicleResponse]
}

func NewVehicleService(db *gorm.DB, log *zap.Logger) *VehicleService {
	s := &VehicleService{}
	s.crud = crud[models.Vehicle, models.VehicleInput, models.VehicleResponse]{
		db:         db,
		log:        log.Named("veiculo"),
		entity:     "Veículo",
		toResponse: (*models.Vehicle).ToResponse,
		build:      buildVehicle,
		apply:      applyVehicle,
		remove: func(ctx context.Context, tx *gorm.DB, v *models.Vehicle) error {
			if err := noDependents[models.ChargingHistory](ctx, tx, "veiculo_id", v.ID, "Veículo", "histórico(s) de carregamento"); err != nil {
				return err
			}
			return repository.New[models.Vehicle](tx).Delete(ctx, v)
		},
	}
	return s
}

func buildVehicle(ctx context.Context, tx *gorm.DB, in models.VehicleInput) (*models.Vehicle, error) {
	usuarioID, err := required("usuarioId", in.UsuarioID)
	if err != nil {
		return nil, err
	}
	marca, err := requiredString("marca", in.Marca)
	if err != nil {
		return nil, err
	}
	modelo, err := requiredString("modelo", in.Modelo)
	if err != nil {
		return nil, err
	}
	ano, err := required("ano", in.Ano)
	if err != nil {
		return nil, err
	}
	eletrico, err := required("isEletrico", in.IsEletrico)
	if err != nil {
		return nil, err
	}

	if err := brandAvailable(ctx, tx, marca, 0); err != nil {
		return nil, err
	}
	if err := mustExist[models.User](ctx, tx, "Usuário", usuarioID); err != nil {
		return nil, err
	}
	if in.ConcessionariaID != nil {
		if err := mustExist[models.Dealership](ctx, tx, "Concessionária", *in.ConcessionariaID); err != nil {
			return nil, err
		}
	}

	return &models.Vehicle{
		UsuarioID:        usuarioID,
		ConcessionariaID: in.ConcessionariaID,
		Marca:            marca,
		Modelo:           modelo,
		Ano:              ano,
		IsEletrico:       models.BoolToInt(eletrico),
	}, nil
}

func applyVehicle(ctx context.Context, tx *gorm.DB, v *models.Vehicle, in models.VehicleInput) error {
	if err := notBlank("marca", in.Marca); err != nil {
		return err
	}
	if err := notBlank("modelo", in.Modelo); err != nil {
		return err
	}
	if in.Marca != nil && *in.Marca != v.Marca {
		if err := brandAvailable(ctx, tx, *in.Marca, v.ID); err != nil {
			return err
		}
		v.Marca = *in.Marca
	}
	if in.UsuarioID != nil && *in.UsuarioID != v.UsuarioID {
		if err := mustExist[models.User](ctx, tx, "Usuário", *in.UsuarioID); err != nil {
			return err
		}
		v.UsuarioID = *in.UsuarioID
	}
	if in.ConcessionariaID != nil && (v.ConcessionariaID == nil || *in.ConcessionariaID != *v.ConcessionariaID) {
		if err := mustExist[models.Dealership](ctx, tx, "Concessionária", *in.ConcessionariaID); err != nil {
			return err
		}
		id := *in.ConcessionariaID
		v.ConcessionariaID = &id
	}
	if in.Modelo != nil {
		v.Modelo = *in.Modelo
	}
	if in.Ano != nil {
		v.Ano = *in.Ano
	}
	if in.IsEletrico != nil {
		v.IsEletrico = models.BoolToInt(*in.IsEletrico)
	}
	return nil
}

// brandAvailable fails when another vehicle than exceptID already uses marca.
func brandAvailable(ctx context.Context, tx *gorm.DB, marca string, exceptID uint) error {
	taken, err := repository.New[models.Vehicle](tx).Exists(ctx, "marca = ? AND veiculo_id <> ?", marca, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Invalidf("A marca %s já está cadastrada em outro veículo.", marca)
	}
	return nil
}

func (s *VehicleService) FindByUser(ctx context.Context, usuarioID uint) ([]models.VehicleResponse, error) {
	items, err := repository.New[models.Vehicle](s.db).FindWhere(ctx, "usuario_id = ?", usuarioID)
	return s.list(items, err, "find by usuario", "Nenhum veículo encontrado para o usuário com ID: "+uintStr(usuarioID))
}
