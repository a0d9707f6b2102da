package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecodrive/config"
)

// StationStatusChanged is emitted whenever a station status record is written.
type StationStatusChanged struct {
	StatusID          uint      `json:"statusId"`
	EstacaoID         uint      `json:"estacaoId"`
	Status            string    `json:"status"`
	UltimaAtualizacao time.Time `json:"ultimaAtualizacao"`
}

// Publisher delivers station status events to subscribers.
type Publisher interface {
	PublishStationStatus(ctx context.Context, evt StationStatusChanged) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishStationStatus(context.Context, StationStatusChanged) error { return nil }
func (NopPublisher) Close() error                                                   { return nil }

// NewRedisClient connects to cfg.Addr and fails unless the server answers PING within
// the dial timeout.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis: no address configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// RedisPublisher publishes JSON events on a redis pub/sub channel.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	log     *zap.Logger
}

func NewRedisPublisher(client redis.UniversalClient, channel string, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, log: log}
}

func (p *RedisPublisher) PublishStationStatus(ctx context.Context, evt StationStatusChanged) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return err
	}
	p.log.Debug("station status published",
		zap.String("channel", p.channel),
		zap.Uint("estacao_id", evt.EstacaoID),
		zap.Int64("receivers", receivers),
	)
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
