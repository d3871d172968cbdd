// Package hub рассылает принятые обновления местоположения всем подписчикам сущности
// и управляет жизненным циклом подписок.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/metrics"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrHubClosed возвращается при подписке после остановки хаба
	ErrHubClosed = errors.New("hub is closed")
	// ErrRevoked возвращается, если доступ отозван, пока подписка загружала снимок
	ErrRevoked = errors.New("subscription revoked")
)

// SnapshotSource отдает текущее состояние сущности для новых подписчиков
type SnapshotSource interface {
	GetLiveState(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error)
}

// Hub - уведомитель об изменениях и менеджер подписок.
// Публикация никогда не ждет подписчиков: у каждого свой слот ожидающего обновления.
type Hub struct {
	source SnapshotSource
	logger *logrus.Logger

	mu     sync.RWMutex
	subs   map[uuid.UUID]map[string]*Subscription
	closed bool
}

// New создает хаб
func New(source SnapshotSource, logger *logrus.Logger) *Hub {
	return &Hub{
		source: source,
		logger: logger,
		subs:   make(map[uuid.UUID]map[string]*Subscription),
	}
}

// Subscribe регистрирует подписку, загружает снимок и активирует ее.
// Публикации, пришедшие во время загрузки снимка, не теряются: остается самое новое значение.
func (h *Hub) Subscribe(ctx context.Context, entityID, principalID uuid.UUID) (*Subscription, error) {
	sub := newSubscription(h, entityID, principalID)
	log := h.logger.WithFields(logrus.Fields{
		"component":       "hub",
		"entity_id":       entityID,
		"principal_id":    principalID,
		"subscription_id": sub.id,
	})

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	list, ok := h.subs[entityID]
	if !ok {
		list = make(map[string]*Subscription)
		h.subs[entityID] = list
	}
	list[sub.id] = sub
	h.mu.Unlock()
	metrics.SubscriptionsActive.Inc()

	snapshot, err := h.source.GetLiveState(ctx, entityID)
	if err != nil {
		log.WithError(err).Error("Failed to load snapshot for subscription")
		sub.close(ReasonSnapshotFailed, err)
		return nil, fmt.Errorf("hub: could not load snapshot: %w", err)
	}

	if !sub.activate(snapshot) {
		// закрыта во время загрузки снимка
		log.WithField("reason", sub.CloseReason()).Info("Subscription closed while connecting")
		switch sub.CloseReason() {
		case ReasonRevoked:
			return nil, ErrRevoked
		case ReasonShutdown:
			return nil, ErrHubClosed
		}
		return nil, sub.closeError()
	}
	log.Debug("Subscription activated")
	return sub, nil
}

// Publish раздает новое состояние всем подпискам сущности и возвращает их число
func (h *Hub) Publish(state *models.LiveState) int {
	h.mu.RLock()
	list := h.subs[state.EntityID]
	targets := make([]*Subscription, 0, len(list))
	for _, sub := range list {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		sub.offer(state.Clone())
	}
	return len(targets)
}

// Revoke закрывает все подписки субъекта (завершение сессии или отзыв доступа)
func (h *Hub) Revoke(principalID uuid.UUID) int {
	var targets []*Subscription
	h.mu.RLock()
	for _, list := range h.subs {
		for _, sub := range list {
			if sub.principalID == principalID {
				targets = append(targets, sub)
			}
		}
	}
	h.mu.RUnlock()

	closed := 0
	for _, sub := range targets {
		if sub.close(ReasonRevoked, nil) {
			closed++
		}
	}
	if closed > 0 {
		h.logger.WithFields(logrus.Fields{
			"component":    "hub",
			"principal_id": principalID,
			"closed":       closed,
		}).Info("Subscriptions revoked")
	}
	return closed
}

// Count возвращает число открытых подписок на сущность
func (h *Hub) Count(entityID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[entityID])
}

// Close закрывает все подписки и запрещает новые
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var targets []*Subscription
	for _, list := range h.subs {
		for _, sub := range list {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.close(ReasonShutdown, nil)
	}
	h.logger.WithField("closed", len(targets)).Info("Hub stopped")
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list, ok := h.subs[sub.entityID]
	if !ok {
		return
	}
	delete(list, sub.id)
	if len(list) == 0 {
		delete(h.subs, sub.entityID)
	}
}
