package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

// ChargingExpenseService manages the single expense each charging session may have.
type ChargingExpenseService struct {
	crud[models.ChargingExpense, models.ChargingExpenseInput, models.ChargingExpenseResponse]
	now func() time.Time
}

func NewChargingExpenseService(db *gorm.DB, log *zap.Logger) *ChargingExpenseService {
	s := &ChargingExpenseService{now: time.Now}
	s.crud = crud[models.ChargingExpense, models.ChargingExpenseInput, models.ChargingExpenseResponse]{
		db:         db,
		log:        log.Named("gasto_carregamento"),
		entity:     "Gasto de carregamento",
		toResponse: (*models.ChargingExpense).ToResponse,
		build:      s.build,
		apply:      applyChargingExpense,
	}
	return s
}

func (s *ChargingExpenseService) build(ctx context.Context, tx *gorm.DB, in models.ChargingExpenseInput) (*models.ChargingExpense, error) {
	historicoID, err := required("historicoId", in.HistoricoID)
	if err != nil {
		return nil, err
	}
	custo, err := required("custoTotal", in.CustoTotal)
	if err != nil {
		return nil, err
	}
	if err := positive("custoTotal", custo); err != nil {
		return nil, err
	}
	if err := mustExist[models.ChargingHistory](ctx, tx, "Histórico de carregamento", historicoID); err != nil {
		return nil, err
	}
	if err := historyFree(ctx, tx, historicoID); err != nil {
		return nil, err
	}

	data := s.now()
	if in.DataGasto != nil {
		data = *in.DataGasto
	}
	return &models.ChargingExpense{
		HistoricoID: historicoID,
		DataGasto:   data.UTC(),
		CustoTotal:  custo,
	}, nil
}

func applyChargingExpense(ctx context.Context, tx *gorm.DB, g *models.ChargingExpense, in models.ChargingExpenseInput) error {
	if in.CustoTotal != nil {
		if err := positive("custoTotal", *in.CustoTotal); err != nil {
			return err
		}
		g.CustoTotal = *in.CustoTotal
	}
	if in.HistoricoID != nil && *in.HistoricoID != g.HistoricoID {
		if err := mustExist[models.ChargingHistory](ctx, tx, "Histórico de carregamento", *in.HistoricoID); err != nil {
			return err
		}
		if err := historyFree(ctx, tx, *in.HistoricoID); err != nil {
			return err
		}
		g.HistoricoID = *in.HistoricoID
	}
	if in.DataGasto != nil {
		g.DataGasto = in.DataGasto.UTC()
	}
	return nil
}

// historyFree fails when the charging session already has an expense.
func historyFree(ctx context.Context, tx *gorm.DB, historicoID uint) error {
	taken, err := repository.New[models.ChargingExpense](tx).Exists(ctx, "historico_id = ?", historicoID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Invalidf("O histórico de carregamento %d já possui um gasto registrado.", historicoID)
	}
	return nil
}

func (s *ChargingExpenseService) FindByHistory(ctx context.Context, historicoID uint) ([]models.ChargingExpenseResponse, error) {
	items, err := repository.New[models.ChargingExpense](s.db).FindWhere(ctx, "historico_id = ?", historicoID)
	return s.list(items, err, "find by historico", "Nenhum gasto encontrado para o histórico com ID: "+uintStr(historicoID))
}

func (s *ChargingExpenseService) FindByPeriod(ctx context.Context, inicio, fim time.Time) ([]models.ChargingExpenseResponse, error) {
	if fim.Before(inicio) {
		return nil, apperror.Invalid("A data final deve ser posterior à data inicial.")
	}
	items, err := repository.New[models.ChargingExpense](s.db).FindWhere(ctx, "data_gasto BETWEEN ? AND ?", inicio.UTC(), fim.UTC())
	return s.list(items, err, "find by period", "Nenhum gasto encontrado entre "+timeStr(inicio)+" e "+timeStr(fim))
}
