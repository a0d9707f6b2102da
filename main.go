package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/config"
	"ecodrive/database"
	"ecodrive/events"
	"ecodrive/logging"
	"ecodrive/routes"
	"ecodrive/services"
	"ecodrive/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ecodrive: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("database migration completed")

	publisher, err := newPublisher(context.Background(), cfg.Redis, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svc := newServices(db, log, publisher, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := svc.Users.RehashLegacyPasswords(ctx)
	if err != nil {
		return fmt.Errorf("rehash passwords: %w", err)
	}
	log.Info("password check completed", zap.Int("rehashed", n))

	jobs, err := startJobs(ctx, cfg.Jobs, svc.Reservations, log)
	if err != nil {
		return err
	}
	defer func() { <-jobs.Stop().Done() }()

	gin.SetMode(cfg.Server.GinMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes.New(log, svc, tokens),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("gin_mode", cfg.Server.GinMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newServices(db *gorm.DB, log *zap.Logger, publisher events.Publisher, tokens *utils.TokenIssuer) routes.Services {
	return routes.Services{
		Neighborhoods:       services.NewNeighborhoodService(db, log),
		Dealerships:         services.NewDealershipService(db, log),
		ChargingStations:    services.NewChargingStationService(db, log),
		SustainableStations: services.NewSustainableStationService(db, log),
		EnergySources:       services.NewEnergySourceService(db, log),
		StationStatuses:     services.NewStationStatusService(db, log, publisher),
		ChargingHistory:     services.NewChargingHistoryService(db, log),
		ChargingExpenses:    services.NewChargingExpenseService(db, log),
		Reservations:        services.NewReservationService(db, log),
		Vehicles:            services.NewVehicleService(db, log),
		Users:               services.NewUserService(db, log, tokens),
	}
}

// newPublisher returns a redis publisher when an address is configured.
func newPublisher(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (events.Publisher, error) {
	if cfg.Addr == "" {
		log.Info("redis not configured, station status events disabled")
		return events.NopPublisher{}, nil
	}
	client, err := events.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("redis connected", zap.String("addr", cfg.Addr), zap.String("channel", cfg.StatusChannel))
	return events.NewRedisPublisher(client, cfg.StatusChannel, log), nil
}

// startJobs schedules the reservation expiry check.
func startJobs(ctx context.Context, cfg config.JobsConfig, reservations *services.ReservationService, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.ReservationExpirySchedule, func() {
		n, err := reservations.ExpireOverdue(ctx, cfg.ReservationGracePeriod)
		if err != nil {
			log.Error("expire reservations failed", zap.Error(err))
			return
		}
		log.Debug("expired reservations checked", zap.Int64("expired", n))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reservation expiry %q: %w", cfg.ReservationExpirySchedule, err)
	}
	c.Start()
	log.Info("cron jobs started", zap.String("reservation_expiry", cfg.ReservationExpirySchedule))
	return c, nil
}
