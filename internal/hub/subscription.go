package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shenikar/live_location_sync/internal/metrics"
	"github.com/shenikar/live_location_sync/internal/models"
)

// State - состояние подписки: Connecting → Active → Closed
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// CloseReason - причина закрытия подписки
type CloseReason string

const (
	ReasonUnsubscribed   CloseReason = "unsubscribed"
	ReasonRevoked        CloseReason = "revoked"
	ReasonDeliveryFailed CloseReason = "delivery_failed"
	ReasonSnapshotFailed CloseReason = "snapshot_failed"
	ReasonShutdown       CloseReason = "shutdown"
)

// ErrClosed возвращается из Next после закрытия подписки
var ErrClosed = errors.New("subscription closed")

// DeliveryError - сбой канала доставки одного подписчика. Касается только его.
type DeliveryError struct {
	SubscriptionID string
	Err            error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to subscription %s failed: %v", e.SubscriptionID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Update - одно сообщение потока. State == nil означает, что позиции еще нет.
// Snapshot выставлен у первого сообщения после активации.
type Update struct {
	EntityID uuid.UUID
	State    *models.LiveState
	Snapshot bool
}

// Subscription связывает сессию наблюдателя с отслеживаемой сущностью.
// Хранит только один ожидающий апдейт: медленный подписчик получает последнее значение,
// промежуточные схлопываются, но порядок никогда не нарушается.
type Subscription struct {
	id          string
	entityID    uuid.UUID
	principalID uuid.UUID
	createdAt   time.Time
	hub         *Hub

	mu        sync.Mutex
	state     State
	pending   *Update
	last      time.Time
	hasLast   bool
	reason    CloseReason
	err       error
	delivered uint64
	coalesced uint64
	ready     chan struct{}
	done      chan struct{}
}

func newSubscription(h *Hub, entityID, principalID uuid.UUID) *Subscription {
	return &Subscription{
		id:          ulid.Make().String(),
		entityID:    entityID,
		principalID: principalID,
		createdAt:   time.Now().UTC(),
		hub:         h,
		state:       StateConnecting,
		ready:       make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

func (s *Subscription) ID() string             { return s.id }
func (s *Subscription) EntityID() uuid.UUID    { return s.entityID }
func (s *Subscription) PrincipalID() uuid.UUID { return s.principalID }

// State возвращает текущее состояние подписки
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CloseReason возвращает причину закрытия (пусто, пока подписка открыта)
func (s *Subscription) CloseReason() CloseReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Stats возвращает число доставленных и схлопнутых обновлений
func (s *Subscription) Stats() (delivered, coalesced uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered, s.coalesced
}

// Done закрывается при переходе в Closed
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Next блокируется до следующего обновления, закрытия подписки или отмены ctx
func (s *Subscription) Next(ctx context.Context) (Update, error) {
	for {
		s.mu.Lock()
		if s.state == StateClosed {
			err := s.closedErr()
			s.mu.Unlock()
			return Update{}, err
		}
		if s.state == StateActive && s.pending != nil {
			u := *s.pending
			s.pending = nil
			if u.State != nil {
				s.last = u.State.CapturedAt
				s.hasLast = true
			}
			s.delivered++
			s.mu.Unlock()
			metrics.NotificationsDelivered.Inc()
			return u, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Update{}, ctx.Err()
		case <-s.ready:
		case <-s.done:
		}
	}
}

// Close закрывает подписку. Повторный вызов ничего не делает.
func (s *Subscription) Close() {
	s.close(ReasonUnsubscribed, nil)
}

// Fail закрывает подписку из-за сбоя канала доставки; подписчик должен переподписаться
func (s *Subscription) Fail(err error) {
	s.close(ReasonDeliveryFailed, &DeliveryError{SubscriptionID: s.id, Err: err})
}

func (s *Subscription) closedErr() error {
	if s.err != nil {
		return s.err
	}
	return ErrClosed
}

func (s *Subscription) close(reason CloseReason, err error) bool {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return false
	}
	s.state = StateClosed
	s.reason = reason
	s.err = err
	s.pending = nil
	close(s.done)
	s.mu.Unlock()

	s.hub.remove(s)
	metrics.SubscriptionsActive.Dec()
	metrics.SubscriptionsClosed.WithLabelValues(string(reason)).Inc()
	return true
}

// activate кладет снимок первым сообщением и переводит подписку в Active
func (s *Subscription) activate(snapshot *models.LiveState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return false
	}

	switch {
	case snapshot != nil && !s.isOutdated(snapshot):
		s.pending = &Update{EntityID: s.entityID, State: snapshot}
	case s.pending == nil:
		// позиции еще нет и публикаций не было
		s.pending = &Update{EntityID: s.entityID}
	}
	s.pending.Snapshot = true
	s.state = StateActive
	s.signal()
	return true
}

// offer передает опубликованное состояние без блокировки издателя
func (s *Subscription) offer(state *models.LiveState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed || s.isOutdated(state) {
		return
	}
	snapshot := false
	if s.pending != nil {
		// недоставленный снимок заменяется, но первое сообщение остается снимком
		snapshot = s.pending.Snapshot
		s.coalesced++
		metrics.NotificationsCoalesced.Inc()
	}
	s.pending = &Update{EntityID: s.entityID, State: state, Snapshot: snapshot}
	s.signal()
}

// isOutdated: состояние не новее уже доставленного или ожидающего
func (s *Subscription) isOutdated(state *models.LiveState) bool {
	if s.hasLast && !state.CapturedAt.After(s.last) {
		return true
	}
	if s.pending != nil && s.pending.State != nil && !state.CapturedAt.After(s.pending.State.CapturedAt) {
		return true
	}
	return false
}

func (s *Subscription) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *Subscription) closeError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closedErr()
}
