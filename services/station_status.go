package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/events"
	"ecodrive/models"
	"ecodrive/repository"
)

// StationStatusService stamps UltimaAtualizacao on every write and announces the new
// status through the publisher once the write commits.
type StationStatusService struct {
	crud[models.StationStatus, models.StationStatusInput, models.StationStatusResponse]
	publisher events.Publisher
	now       func() time.Time
}

func NewStationStatusService(db *gorm.DB, log *zap.Logger, publisher events.Publisher) *StationStatusService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &StationStatusService{publisher: publisher, now: time.Now}
	s.crud = crud[models.StationStatus, models.StationStatusInput, models.StationStatusResponse]{
		db:         db,
		log:        log.Named("status_estacao"),
		entity:     "Status da estação",
		toResponse: (*models.StationStatus).ToResponse,
		build:      s.build,
		apply:      s.apply,
		written:    s.publish,
	}
	return s
}

func (s *StationStatusService) build(ctx context.Context, tx *gorm.DB, in models.StationStatusInput) (*models.StationStatus, error) {
	estacaoID, err := required("estacaoId", in.EstacaoID)
	if err != nil {
		return nil, err
	}
	status, err := requiredString("status", in.Status)
	if err != nil {
		return nil, err
	}
	if err := validStationStatus(status); err != nil {
		return nil, err
	}
	if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", estacaoID); err != nil {
		return nil, err
	}
	return &models.StationStatus{
		EstacaoID:         estacaoID,
		Status:            status,
		UltimaAtualizacao: s.now().UTC(),
	}, nil
}

func (s *StationStatusService) apply(ctx context.Context, tx *gorm.DB, st *models.StationStatus, in models.StationStatusInput) error {
	if in.Status != nil {
		if err := validStationStatus(*in.Status); err != nil {
			return err
		}
		st.Status = *in.Status
	}
	if in.EstacaoID != nil && *in.EstacaoID != st.EstacaoID {
		if err := mustExist[models.ChargingStation](ctx, tx, "Estação de recarga", *in.EstacaoID); err != nil {
			return err
		}
		st.EstacaoID = *in.EstacaoID
	}
	st.UltimaAtualizacao = s.now().UTC()
	return nil
}

func (s *StationStatusService) publish(ctx context.Context, st *models.StationStatus) {
	evt := events.StationStatusChanged{
		StatusID:          st.ID,
		EstacaoID:         st.EstacaoID,
		Status:            st.Status,
		UltimaAtualizacao: st.UltimaAtualizacao,
	}
	if err := s.publisher.PublishStationStatus(ctx, evt); err != nil {
		s.log.Warn("station status event not published", zap.Uint("status_id", st.ID), zap.Error(err))
	}
}

func validStationStatus(status string) error {
	switch status {
	case models.StatusAtiva, models.StatusDefeituosa, models.StatusEmManutencao:
		return nil
	}
	return apperror.Invalidf("Status inválido: %s", status)
}

// FindByStation lists the status records of a station, which must exist.
func (s *StationStatusService) FindByStation(ctx context.Context, estacaoID uint) ([]models.StationStatusResponse, error) {
	if err := mustExist[models.ChargingStation](ctx, s.db, "Estação de recarga", estacaoID); err != nil {
		return nil, s.fail("find by estacao", err)
	}
	items, err := repository.New[models.StationStatus](s.db).FindWhere(ctx, "estacao_id = ?", estacaoID)
	return s.list(items, err, "find by estacao", "Nenhum status encontrado para a estação com ID: "+uintStr(estacaoID))
}
