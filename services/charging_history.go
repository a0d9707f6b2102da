package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/models"
	"ecodrive/repository"
)

// ChargingHistoryService records charging sessions. Deleting a session also deletes its
// expense.
type ChargingHistoryService struct {
	crud[models.ChargingHistory, models.ChargingHistoryInput, models.ChargingHistoryResponse]
}

func NewChargingHistoryService(db *gorm.DB, log *zap.Logger) *ChargingHistoryService {
	s := &ChargingHistoryService{}
	s.crud = crud[models.ChargingHistory, models.ChargingHistoryInput, models.ChargingHistoryResponse]{
		db:         db,
		log:        log.Named("historico_carregamento"),
		entity:     "Histórico de carregamento",
		toResponse: (*models.ChargingHistory).ToResponse,
		build:      buildChargingHistory,
		apply:      applyChargingHistory,
		remove: func(ctx context.Context, tx *gorm.DB, h *models.ChargingHistory) error {
			if _, err := repository.New[models.ChargingExpense](tx).DeleteWhere(ctx, "historico_id = ?", h.ID); err != nil {
				return err
			}
			return repository.New[models.ChargingHistory](tx).Delete(ctx, h)
		},
	}
	return s
}

func buildChargingHistory(ctx context.Context, tx *gorm.DB, in models.ChargingHistoryInput) (*models.ChargingHistory, error) {
	usuarioID, err := required("usuarioId", in.UsuarioID)
	if err != nil {
		return nil, err
	}
	veiculoID, err := required("veiculoId", in.VeiculoID)
	if err != nil {
		return nil, err
	}
	estacaoID, err := required("estacaoId", in.EstacaoID)
	if err != nil {
		return nil, err
	}
	data, err := required("dataCarregamento", in.DataCarregamento)
	if err != nil {
		return nil, err
	}
	kwh, err := required("kwhConsumidos", in.KwhConsumidos)
	if err != nil {
		return nil, err
	}
	if err := positive("kwhConsumidos", kwh); err != nil {
		return nil, err
	}
	if err := mustExist[models.User](ctx, tx, "Usuário", usuarioID); err != nil {
		return nil, err
	}
	if err := mustExist[models.Vehicle](ctx, tx, "Veículo", veiculoID); err != nil {
		return nil, err
	}
	if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", estacaoID); err != nil {
		return nil, err
	}
	return &models.ChargingHistory{
		UsuarioID:        usuarioID,
		VeiculoID:        veiculoID,
		EstacaoID:        estacaoID,
		DataCarregamento: data.UTC(),
		KwhConsumidos:    kwh,
	}, nil
}

func applyChargingHistory(ctx context.Context, tx *gorm.DB, h *models.ChargingHistory, in models.ChargingHistoryInput) error {
	if in.KwhConsumidos != nil {
		if err := positive("kwhConsumidos", *in.KwhConsumidos); err != nil {
			return err
		}
		h.KwhConsumidos = *in.KwhConsumidos
	}
	if in.UsuarioID != nil && *in.UsuarioID != h.UsuarioID {
		if err := mustExist[models.User](ctx, tx, "Usuário", *in.UsuarioID); err != nil {
			return err
		}
		h.UsuarioID = *in.UsuarioID
	}
	if in.VeiculoID != nil && *in.VeiculoID != h.VeiculoID {
		if err := mustExist[models.Vehicle](ctx, tx, "Veículo", *in.VeiculoID); err != nil {
			return err
		}
		h.VeiculoID = *in.VeiculoID
	}
	if in.EstacaoID != nil && *in.EstacaoID != h.EstacaoID {
		if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", *in.EstacaoID); err != nil {
			return err
		}
		h.EstacaoID = *in.EstacaoID
	}
	if in.DataCarregamento != nil {
		h.DataCarregamento = in.DataCarregamento.UTC()
	}
	return nil
}

func (s *ChargingHistoryService) FindByUser(ctx context.Context, usuarioID uint) ([]models.ChargingHistoryResponse, error) {
	items, err := repository.New[models.ChargingHistory](s.db).FindWhere(ctx, "usuario_id = ?", usuarioID)
	return s.list(items, err, "find by usuario", "Nenhum histórico de carregamento encontrado para o usuário com ID: "+uintStr(usuarioID))
}

func (s *ChargingHistoryService) FindByVehicle(ctx context.Context, veiculoID uint) ([]models.ChargingHistoryResponse, error) {
	items, err := repository.New[models.ChargingHistory](s.db).FindWhere(ctx, "veiculo_id = ?", veiculoID)
	return s.list(items, err, "find by veiculo", "Nenhum histórico de carregamento encontrado para o veículo com ID: "+uintStr(veiculoID))
}
