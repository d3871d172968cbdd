package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/live_location_sync/internal/models"
)

const (
	webhookQueueKey = "location_webhook_events"

	// при отсутствии воркера очередь не растет бесконечно: старые события отбрасываются
	maxQueueLen = 10000

	// EventLocationUpdated - тип события о новом текущем местоположении
	EventLocationUpdated = "location.updated"
)

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	Type       string    `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLocationUpdatedEvent строит событие из принятого состояния
func NewLocationUpdatedEvent(state *models.LiveState) WebhookEvent {
	return WebhookEvent{
		Type:       EventLocationUpdated,
		EntityID:   state.EntityID,
		Latitude:   state.Latitude,
		Longitude:  state.Longitude,
		Accuracy:   state.Accuracy,
		CapturedAt: state.CapturedAt,
		UpdatedAt:  state.UpdatedAt,
	}
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish ставит событие в очередь Redis, откуда его доставляет WebhookWorker
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH кладет новое событие слева, воркер забирает справа; LTRIM срезает самые старые
	_, err = p.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, webhookQueueKey, payload)
		pipe.LTrim(ctx, webhookQueueKey, 0, maxQueueLen-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event for entity %s: %w", event.Type, event.EntityID, err)
	}
	return nil
}
