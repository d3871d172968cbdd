package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/metrics"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/position"
	"github.com/shenikar/live_location_sync/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=location.go -destination=mocks/mock_location.go -package=mocks

// AdmitCheck вызывается хранилищем внутри эксклюзивной секции сущности
// с текущим состоянием (nil - состояния нет). Ошибка отменяет запись.
type AdmitCheck = func(current *models.LiveState) error

// EntityRepository определяет контракт для работы с отслеживаемыми сущностями
type EntityRepository interface {
	CreateEntity(ctx context.Context, entity *models.TrackedEntity) error
	GetEntity(ctx context.Context, id uuid.UUID) (*models.TrackedEntity, error)
	ListEntities(ctx context.Context) ([]*models.TrackedEntity, error)
	ListEntitiesByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.TrackedEntity, error)
}

// LocationRepository определяет контракт хранилища текущего состояния и истории.
// Admit атомарно проверяет отчет, перезаписывает текущее состояние и дописывает историю.
type LocationRepository interface {
	Admit(ctx context.Context, report *models.PositionReport, check AdmitCheck) (*models.LiveState, *models.HistoryEntry, error)
	GetLiveState(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error)
	ListHistory(ctx context.Context, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error)
}

// LiveStateCache - кеш текущего состояния. Put не должен заменять более новое значение.
type LiveStateCache interface {
	Get(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error)
	Put(ctx context.Context, state *models.LiveState) error
	Invalidate(ctx context.Context, entityID uuid.UUID) error
}

// SubscriptionHub - уведомитель об изменениях и менеджер подписок
type SubscriptionHub interface {
	Publish(state *models.LiveState) int
	Subscribe(ctx context.Context, entityID, principalID uuid.UUID) (*hub.Subscription, error)
	Revoke(principalID uuid.UUID) int
}

// IngestionGateway принимает отчеты о местоположении
type IngestionGateway interface {
	Submit(ctx context.Context, principal models.Principal, report *models.PositionReport) (*models.LiveState, error)
}

// QueryGateway отдает текущее состояние, историю и живой поток
type QueryGateway interface {
	CurrentPosition(ctx context.Context, principal models.Principal, entityID uuid.UUID) (*models.LiveState, error)
	RecentHistory(ctx context.Context, principal models.Principal, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error)
	Subscribe(ctx context.Context, principal models.Principal, entityID uuid.UUID) (*hub.Subscription, error)
	ListEntities(ctx context.Context, principal models.Principal) ([]*models.TrackedEntity, error)
}

// LocationService определяет контракт для бизнес-логики синхронизации местоположения
type LocationService interface {
	IngestionGateway
	QueryGateway
	ProvisionEntity(ctx context.Context, principal models.Principal, entity *models.TrackedEntity) error
	RevokeSessions(ctx context.Context, principal models.Principal, target uuid.UUID) (int, error)
}

type locationService struct {
	entities  EntityRepository
	locations LocationRepository
	authz     Authorizer
	hub       SubscriptionHub
	cache     LiveStateCache
	webhooks  webhook.WebhookPublisher
	validator *position.Validator
	locks     *entityLocks
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

// Option настраивает необязательные зависимости сервиса
type Option func(*locationService)

// WithLiveStateCache включает кеш текущего состояния
func WithLiveStateCache(cache LiveStateCache) Option {
	return func(s *locationService) { s.cache = cache }
}

// WithWebhookPublisher включает отправку вебхуков о новых состояниях
func WithWebhookPublisher(publisher webhook.WebhookPublisher) Option {
	return func(s *locationService) { s.webhooks = publisher }
}

func NewLocationService(
	entities EntityRepository,
	locations LocationRepository,
	authz Authorizer,
	subs SubscriptionHub,
	logger *logrus.Logger,
	cfg *config.Config,
	opts ...Option,
) LocationService {
	s := &locationService{
		entities:  entities,
		locations: locations,
		authz:     authz,
		hub:       subs,
		validator: position.NewValidator(cfg.MaxFutureSkew),
		locks:     newEntityLocks(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit: авторизация → проверка → запись состояния и истории → уведомление.
// Любая ошибка до уведомления отменяет вызов без частичного эффекта.
func (s *locationService) Submit(ctx context.Context, principal models.Principal, report *models.PositionReport) (*models.LiveState, error) {
	start := s.now()
	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "Submit",
		"entity_id":    report.EntityID,
		"principal_id": principal.ID,
		"captured_at":  report.CapturedAt,
	})

	if err := s.authz.Authorize(ctx, principal, report.EntityID, models.ActionWrite); err != nil {
		log.WithError(err).Warn("Report submission not authorized")
		metrics.ReportRejected("unauthorized")
		return nil, err
	}

	// хранилища держат время с точностью до микросекунды
	normalized := *report
	normalized.CapturedAt = report.CapturedAt.UTC().Truncate(time.Microsecond)
	report = &normalized

	// начатый прием не прерывается отменой вызывающего
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.lock(report.EntityID)
	defer unlock()

	state, entry, err := s.locations.Admit(ctx, report, func(current *models.LiveState) error {
		verdict := s.validator.Check(report, current)
		if !verdict.Accepted {
			return &ValidationError{Reason: verdict.Reason, Detail: verdict.Detail}
		}
		return nil
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.WithField("reason", vErr.Reason).Info("Report rejected by validator")
			metrics.ReportRejected(string(vErr.Reason))
			return nil, err
		}
		if errors.Is(err, ErrEntityNotFound) {
			log.Warn("Report for unknown entity")
			metrics.ReportRejected("unknown_entity")
			return nil, err
		}
		var sErr *StoreError
		if !errors.As(err, &sErr) {
			err = &StoreError{Op: "admit", Err: err}
		}
		log.WithError(err).Error("Failed to admit report")
		metrics.ReportRejected("store_error")
		return nil, fmt.Errorf("service: could not admit report: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, state); err != nil {
			log.WithError(err).Warn("Failed to write live state to cache")
			if err := s.cache.Invalidate(ctx, state.EntityID); err != nil {
				log.WithError(err).Error("Failed to invalidate live state cache")
			}
		}
	}

	delivered := s.hub.Publish(state)

	if s.webhooks != nil {
		if err := s.webhooks.Publish(ctx, webhook.NewLocationUpdatedEvent(state)); err != nil {
			log.WithError(err).Warn("Failed to enqueue location webhook")
		}
	}

	metrics.ReportAccepted()
	metrics.IngestDuration.Observe(s.now().Sub(start).Seconds())
	log.WithFields(logrus.Fields{
		"history_id":  entry.ID,
		"subscribers": delivered,
	}).Info("Report accepted")
	return state, nil
}

// CurrentPosition возвращает текущее состояние сущности; nil - отчетов еще не было
func (s *locationService) CurrentPosition(ctx context.Context, principal models.Principal, entityID uuid.UUID) (*models.LiveState, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "CurrentPosition",
		"entity_id":    entityID,
		"principal_id": principal.ID,
	})

	if err := s.authz.Authorize(ctx, principal, entityID, models.ActionRead); err != nil {
		log.WithError(err).Warn("Position query not authorized")
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, entityID)
		switch {
		case err != nil:
			log.WithError(err).Warn("Failed to read live state from cache")
			metrics.LiveCacheLookups.WithLabelValues("error").Inc()
		case cached != nil:
			metrics.LiveCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.LiveCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	state, err := s.locations.GetLiveState(ctx, entityID)
	if err != nil {
		log.WithError(err).Error("Failed to get live state from repository")
		return nil, fmt.Errorf("service: could not get live state: %w", err)
	}

	if state != nil && s.cache != nil {
		if err := s.cache.Put(ctx, state); err != nil {
			log.WithError(err).Warn("Failed to populate live state cache")
		}
	}
	log.Debug("Live state fetched")
	return state, nil
}

// RecentHistory возвращает последние limit записей истории
func (s *locationService) RecentHistory(ctx context.Context, principal models.Principal, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error) {
	if limit < 1 {
		limit = s.cfg.HistoryDefaultLimit
	}
	if limit > s.cfg.HistoryMaxLimit {
		limit = s.cfg.HistoryMaxLimit
	}
	if order == "" {
		order = models.SortDesc
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "RecentHistory",
		"entity_id":    entityID,
		"principal_id": principal.ID,
		"limit":        limit,
		"order":        order,
	})

	if err := s.authz.Authorize(ctx, principal, entityID, models.ActionRead); err != nil {
		log.WithError(err).Warn("History query not authorized")
		return nil, err
	}

	entries, err := s.locations.ListHistory(ctx, entityID, limit, order)
	if err != nil {
		log.WithError(err).Error("Failed to list history from repository")
		return nil, fmt.Errorf("service: could not list history: %w", err)
	}

	log.WithField("count", len(entries)).Debug("History listed")
	return entries, nil
}

// Subscribe открывает живую подписку; первым сообщением придет текущий снимок
func (s *locationService) Subscribe(ctx context.Context, principal models.Principal, entityID uuid.UUID) (*hub.Subscription, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "Subscribe",
		"entity_id":    entityID,
		"principal_id": principal.ID,
	})

	if err := s.authz.Authorize(ctx, principal, entityID, models.ActionRead); err != nil {
		log.WithError(err).Warn("Subscription not authorized")
		return nil, err
	}

	sub, err := s.hub.Subscribe(ctx, entityID, principal.ID)
	if err != nil {
		if errors.Is(err, hub.ErrRevoked) {
			log.Warn("Access revoked while subscribing")
			return nil, &AuthorizationError{PrincipalID: principal.ID, EntityID: entityID, Action: models.ActionRead}
		}
		log.WithError(err).Error("Failed to open subscription")
		return nil, fmt.Errorf("service: could not subscribe: %w", err)
	}

	log.WithField("subscription_id", sub.ID()).Info("Subscription opened")
	return sub, nil
}

// ListEntities возвращает сущности, доступные субъекту
func (s *locationService) ListEntities(ctx context.Context, principal models.Principal) ([]*models.TrackedEntity, error) {
	entities, err := s.authz.PermittedEntities(ctx, principal)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":      "location",
			"method":       "ListEntities",
			"principal_id": principal.ID,
		}).WithError(err).Warn("Failed to list permitted entities")
		var aErr *AuthorizationError
		if errors.As(err, &aErr) {
			return nil, err
		}
		return nil, fmt.Errorf("service: could not list entities: %w", err)
	}
	return entities, nil
}

// ProvisionEntity регистрирует новую отслеживаемую сущность. Только для admin.
func (s *locationService) ProvisionEntity(ctx context.Context, principal models.Principal, entity *models.TrackedEntity) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "ProvisionEntity",
		"principal_id": principal.ID,
		"caretaker_id": entity.CaretakerID,
	})

	if principal.Role != models.RoleAdmin {
		log.Warn("Only admins can provision entities")
		return &AuthorizationError{PrincipalID: principal.ID, Action: models.ActionWrite}
	}

	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	entity.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	if err := s.entities.CreateEntity(ctx, entity); err != nil {
		log.WithError(err).Error("Failed to create entity in repository")
		return fmt.Errorf("service: could not create entity: %w", err)
	}

	log.WithField("entity_id", entity.ID).Info("Entity provisioned")
	return nil
}

// RevokeSessions закрывает все подписки субъекта target. Только для admin.
func (s *locationService) RevokeSessions(ctx context.Context, principal models.Principal, target uuid.UUID) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "location",
		"method":       "RevokeSessions",
		"principal_id": principal.ID,
		"target_id":    target,
	})

	if principal.Role != models.RoleAdmin {
		log.Warn("Only admins can revoke sessions")
		return 0, &AuthorizationError{PrincipalID: principal.ID, Action: models.ActionWrite}
	}

	closed := s.hub.Revoke(target)
	log.WithField("closed", closed).Info("Sessions revoked")
	return closed, nil
}
