package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/position"
	"github.com/shenikar/live_location_sync/internal/service/mocks"
	"github.com/shenikar/live_location_sync/internal/webhook"
	webhook_mocks "github.com/shenikar/live_location_sync/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	entities  *mocks.MockEntityRepository
	locations *mocks.MockLocationRepository
	authz     *mocks.MockAuthorizer
	hub       *mocks.MockSubscriptionHub
	cache     *mocks.MockLiveStateCache
	webhooks  *webhook_mocks.MockWebhookPublisher
}

// newTestLocationService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestLocationService(t *testing.T) (*locationService, *testDeps) {
	ctrl := gomock.NewController(t)
	deps := &testDeps{
		entities:  mocks.NewMockEntityRepository(ctrl),
		locations: mocks.NewMockLocationRepository(ctrl),
		authz:     mocks.NewMockAuthorizer(ctrl),
		hub:       mocks.NewMockSubscriptionHub(ctrl),
		cache:     mocks.NewMockLiveStateCache(ctrl),
		webhooks:  webhook_mocks.NewMockWebhookPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		HistoryDefaultLimit: 50,
		HistoryMaxLimit:     500,
	}

	svc := NewLocationService(deps.entities, deps.locations, deps.authz, deps.hub, logger, cfg,
		WithLiveStateCache(deps.cache), WithWebhookPublisher(deps.webhooks))
	return svc.(*locationService), deps
}

func testReport(entityID uuid.UUID, sec int64) *models.PositionReport {
	return &models.PositionReport{
		EntityID:   entityID,
		Latitude:   12,
		Longitude:  22,
		CapturedAt: time.Unix(sec, 0).UTC(),
	}
}

// admitWith имитирует хранилище: вызывает check с текущим состоянием и возвращает результат записи
func admitWith(current *models.LiveState) func(context.Context, *models.PositionReport, AdmitCheck) (*models.LiveState, *models.HistoryEntry, error) {
	return func(_ context.Context, report *models.PositionReport, check AdmitCheck) (*models.LiveState, *models.HistoryEntry, error) {
		if err := check(current); err != nil {
			return nil, nil, err
		}
		now := time.Now().UTC()
		return models.NewLiveState(report, now), models.NewHistoryEntry("01TEST", report, now), nil
	}
}

func TestSubmit_Success(t *testing.T) {
	// Подготовка
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(admitWith(nil))
	deps.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	deps.hub.EXPECT().Publish(gomock.Any()).DoAndReturn(func(state *models.LiveState) int {
		assert.Equal(t, report.EntityID, state.EntityID)
		return 1
	})
	deps.webhooks.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event webhook.WebhookEvent) error {
		assert.Equal(t, webhook.EventLocationUpdated, event.Type)
		assert.Equal(t, report.EntityID, event.EntityID)
		return nil
	})

	// Выполнение
	state, err := svc.Submit(ctx, principal, report)

	// Проверка
	require.NoError(t, err)
	assert.Equal(t, report.Latitude, state.Latitude)
	assert.True(t, state.CapturedAt.Equal(report.CapturedAt))
	assert.Equal(t, 0, svc.locks.size())
}

func TestSubmit_Unauthorized(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleCaretaker}
	report := testReport(uuid.New(), 100)

	denied := &AuthorizationError{PrincipalID: principal.ID, EntityID: report.EntityID, Action: models.ActionWrite}
	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(denied)

	_, err := svc.Submit(ctx, principal, report)

	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)
	assert.Equal(t, principal.ID, aErr.PrincipalID)
}

func TestSubmit_StaleReportRejected(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 90)
	current := models.NewLiveState(testReport(report.EntityID, 100), time.Now())

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(admitWith(current))
	// ни кеш, ни хаб, ни вебхук не вызываются

	_, err := svc.Submit(ctx, principal, report)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, position.ReasonStale, vErr.Reason)
}

func TestSubmit_InvalidCoordinates(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)
	report.Latitude = 91

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(admitWith(nil))

	_, err := svc.Submit(ctx, principal, report)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, position.ReasonLatitudeOutOfRange, vErr.Reason)
}

func TestSubmit_StoreFailure(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("connection reset"))

	_, err := svc.Submit(ctx, principal, report)

	var sErr *StoreError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "admit", sErr.Op)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSubmit_UnknownEntity(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, ErrEntityNotFound)

	_, err := svc.Submit(ctx, principal, report)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestSubmit_SinkFailuresDoNotFailIngestion(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)

	deps.authz.EXPECT().Authorize(ctx, principal, report.EntityID, models.ActionWrite).Return(nil)
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(admitWith(nil))
	deps.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	deps.cache.EXPECT().Invalidate(gomock.Any(), report.EntityID).Return(errors.New("redis down"))
	deps.hub.EXPECT().Publish(gomock.Any()).Return(0)
	deps.webhooks.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	state, err := svc.Submit(ctx, principal, report)
	require.NoError(t, err)
	assert.NotNil(t, state)
}

func TestSubmit_IgnoresCallerCancellationAfterAuthorization(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx, cancel := context.WithCancel(context.Background())
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	report := testReport(uuid.New(), 100)

	deps.authz.EXPECT().Authorize(gomock.Any(), principal, report.EntityID, models.ActionWrite).DoAndReturn(
		func(context.Context, models.Principal, uuid.UUID, models.Action) error {
			cancel()
			return nil
		})
	deps.locations.EXPECT().Admit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, report *models.PositionReport, check AdmitCheck) (*models.LiveState, *models.HistoryEntry, error) {
			require.NoError(t, ctx.Err())
			return admitWith(nil)(ctx, report, check)
		})
	deps.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	deps.hub.EXPECT().Publish(gomock.Any()).Return(0)
	deps.webhooks.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Submit(ctx, principal, report)
	require.NoError(t, err)
}

func TestCurrentPosition_FromCache(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	entityID := uuid.New()
	cached := models.NewLiveState(testReport(entityID, 100), time.Now())

	deps.authz.EXPECT().Authorize(ctx, principal, entityID, models.ActionRead).Return(nil)
	deps.cache.EXPECT().Get(ctx, entityID).Return(cached, nil)

	state, err := svc.CurrentPosition(ctx, principal, entityID)
	require.NoError(t, err)
	assert.Equal(t, cached, state)
}

func TestCurrentPosition_FromRepositoryOnMiss(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	entityID := uuid.New()
	stored := models.NewLiveState(testReport(entityID, 100), time.Now())

	deps.authz.EXPECT().Authorize(ctx, principal, entityID, models.ActionRead).Return(nil)
	deps.cache.EXPECT().Get(ctx, entityID).Return(nil, nil)
	deps.locations.EXPECT().GetLiveState(ctx, entityID).Return(stored, nil)
	deps.cache.EXPECT().Put(ctx, stored).Return(nil)

	state, err := svc.CurrentPosition(ctx, principal, entityID)
	require.NoError(t, err)
	assert.Equal(t, stored, state)
}

func TestCurrentPosition_NoneYet(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	entityID := uuid.New()

	deps.authz.EXPECT().Authorize(ctx, principal, entityID, models.ActionRead).Return(nil)
	deps.cache.EXPECT().Get(ctx, entityID).Return(nil, errors.New("redis down"))
	deps.locations.EXPECT().GetLiveState(ctx, entityID).Return(nil, nil)

	state, err := svc.CurrentPosition(ctx, principal, entityID)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestRecentHistory_ClampsLimit(t *testing.T) {
	testCases := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default when zero", limit: 0, expected: 50},
		{name: "default when negative", limit: -3, expected: 50},
		{name: "within bounds", limit: 7, expected: 7},
		{name: "capped at max", limit: 10000, expected: 500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestLocationService(t)
			ctx := context.Background()
			principal := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
			entityID := uuid.New()

			deps.authz.EXPECT().Authorize(ctx, principal, entityID, models.ActionRead).Return(nil)
			deps.locations.EXPECT().ListHistory(ctx, entityID, tc.expected, models.SortDesc).Return([]*models.HistoryEntry{}, nil)

			entries, err := svc.RecentHistory(ctx, principal, entityID, tc.limit, "")
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSubscribe_ClosedWhileConnecting(t *testing.T) {
	testCases := []struct {
		name    string
		hubErr  error
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "revoked maps to authorization error",
			hubErr: hub.ErrRevoked,
			checkFn: func(t *testing.T, err error) {
				var aErr *AuthorizationError
				require.ErrorAs(t, err, &aErr)
				assert.Equal(t, models.ActionRead, aErr.Action)
			},
		},
		{
			name:   "hub closed is kept",
			hubErr: hub.ErrHubClosed,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, hub.ErrHubClosed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestLocationService(t)
			principal := models.Principal{ID: uuid.New(), Role: models.RoleCaretaker}
			entityID := uuid.New()

			deps.authz.EXPECT().Authorize(gomock.Any(), principal, entityID, models.ActionRead).Return(nil)
			deps.hub.EXPECT().Subscribe(gomock.Any(), entityID, principal.ID).Return(nil, tc.hubErr)

			sub, err := svc.Subscribe(context.Background(), principal, entityID)
			assert.Nil(t, sub)
			tc.checkFn(t, err)
		})
	}
}

func TestListEntities_DelegatesToAuthorizer(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	principal := models.Principal{ID: uuid.New(), Role: models.RoleCaretaker}
	expected := []*models.TrackedEntity{{ID: uuid.New(), CaretakerID: principal.ID}}

	deps.authz.EXPECT().PermittedEntities(ctx, principal).Return(expected, nil)

	entities, err := svc.ListEntities(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, expected, entities)
}

func TestProvisionEntity(t *testing.T) {
	t.Run("admin creates entity", func(t *testing.T) {
		svc, deps := newTestLocationService(t)
		ctx := context.Background()
		admin := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
		entity := &models.TrackedEntity{CaretakerID: uuid.New(), Label: "grandpa's cane"}

		deps.entities.EXPECT().CreateEntity(ctx, entity).Return(nil)

		require.NoError(t, svc.ProvisionEntity(ctx, admin, entity))
		assert.NotEqual(t, uuid.Nil, entity.ID)
		assert.False(t, entity.CreatedAt.IsZero())
	})

	t.Run("caretaker is denied", func(t *testing.T) {
		svc, _ := newTestLocationService(t)
		caretaker := models.Principal{ID: uuid.New(), Role: models.RoleCaretaker}

		err := svc.ProvisionEntity(context.Background(), caretaker, &models.TrackedEntity{})
		var aErr *AuthorizationError
		assert.ErrorAs(t, err, &aErr)
	})
}

func TestRevokeSessions(t *testing.T) {
	svc, deps := newTestLocationService(t)
	ctx := context.Background()
	admin := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	target := uuid.New()

	deps.hub.EXPECT().Revoke(target).Return(2)

	closed, err := svc.RevokeSessions(ctx, admin, target)
	require.NoError(t, err)
	assert.Equal(t, 2, closed)

	_, err = svc.RevokeSessions(ctx, models.Principal{ID: target, Role: models.RoleDevice}, target)
	var aErr *AuthorizationError
	assert.ErrorAs(t, err, &aErr)
}
