package services

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

type ReservationService struct {
	crud[models.Reservation, models.ReservationInput, models.ReservationResponse]
	now func() time.Time
}

func NewReservationService(db *gorm.DB, log *zap.Logger) *ReservationService {
	s := &ReservationService{now: time.Now}
	s.crud = crud[models.Reservation, models.ReservationInput, models.ReservationResponse]{
		db:         db,
		log:        log.Named("reserva"),
		entity:     "Reserva",
		toResponse: (*models.Reservation).ToResponse,
		build:      buildReservation,
		apply:      applyReservation,
	}
	return s
}

func buildReservation(ctx context.Context, tx *gorm.DB, in models.ReservationInput) (*models.Reservation, error) {
	usuarioID, err := required("usuarioId", in.UsuarioID)
	if err != nil {
		return nil, err
	}
	estacaoID, err := required("estacaoId", in.EstacaoID)
	if err != nil {
		return nil, err
	}
	data, err := required("dataReserva", in.DataReserva)
	if err != nil {
		return nil, err
	}
	status, err := required("status", in.Status)
	if err != nil {
		return nil, err
	}
	if err := validReservationStatus(status); err != nil {
		return nil, err
	}
	if err := mustExist[models.User](ctx, tx, "Usuário", usuarioID); err != nil {
		return nil, err
	}
	if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", estacaoID); err != nil {
		return nil, err
	}
	return &models.Reservation{
		UsuarioID:   usuarioID,
		EstacaoID:   estacaoID,
		DataReserva: data.UTC(),
		Status:      status,
	}, nil
}

func applyReservation(ctx context.Context, tx *gorm.DB, r *models.Reservation, in models.ReservationInput) error {
	if in.Status != nil {
		if err := validReservationStatus(*in.Status); err != nil {
			return err
		}
		r.Status = *in.Status
	}
	if in.UsuarioID != nil && *in.UsuarioID != r.UsuarioID {
		if err := mustExist[models.User](ctx, tx, "Usuário", *in.UsuarioID); err != nil {
			return err
		}
		r.UsuarioID = *in.UsuarioID
	}
	if in.EstacaoID != nil && *in.EstacaoID != r.EstacaoID {
		if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", *in.EstacaoID); err != nil {
			return err
		}
		r.EstacaoID = *in.EstacaoID
	}
	if in.DataReserva != nil {
		r.DataReserva = in.DataReserva.UTC()
	}
	return nil
}

func validReservationStatus(status int) error {
	if status < models.ReservaPendente || status > models.ReservaExpirada {
		return apperror.Invalidf("Status de reserva inválido: %d", status)
	}
	return nil
}

func (s *ReservationService) FindByStatus(ctx context.Context, status int) ([]models.ReservationResponse, error) {
	items, err := repository.New[models.Reservation](s.db).FindWhere(ctx, "status = ?", status)
	return s.list(items, err, "find by status", "Nenhuma reserva encontrada com o status: "+strconv.Itoa(status))
}

func (s *ReservationService) FindByUser(ctx context.Context, usuarioID uint) ([]models.ReservationResponse, error) {
	items, err := repository.New[models.Reservation](s.db).FindWhere(ctx, "usuario_id = ?", usuarioID)
	return s.list(items, err, "find by usuario", "Nenhuma reserva encontrada para o usuário com ID: "+uintStr(usuarioID))
}

// FindByPeriod lists reservations whose date falls within [inicio, fim].
func (s *ReservationService) FindByPeriod(ctx context.Context, inicio, fim time.Time) ([]models.ReservationResponse, error) {
	if fim.Before(inicio) {
		return nil, apperror.Invalid("A data final deve ser posterior à data inicial.")
	}
	items, err := repository.New[models.Reservation](s.db).FindWhere(ctx, "data_reserva BETWEEN ? AND ?", inicio.UTC(), fim.UTC())
	return s.list(items, err, "find by period", "Nenhuma reserva encontrada entre "+timeStr(inicio)+" e "+timeStr(fim))
}

// ExpireOverdue marks pending reservations older than grace as expired.
func (s *ReservationService) ExpireOverdue(ctx context.Context, grace time.Duration) (int64, error) {
	cutoff := s.now().Add(-grace).UTC()
	n, err := repository.New[models.Reservation](s.db).UpdateWhere(ctx,
		map[string]interface{}{"status": models.ReservaExpirada},
		"status = ? AND data_reserva < ?", models.ReservaPendente, cutoff,
	)
	if err != nil {
		return 0, s.fail("expire", err)
	}
	if n > 0 {
		s.log.Info("reservations expired", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
