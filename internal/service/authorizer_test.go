package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthorizer(t *testing.T) (*EntityAuthorizer, *mocks.MockEntityRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntityRepository(ctrl)
	return NewEntityAuthorizer(repo), repo
}

func TestAuthorize(t *testing.T) {
	caretakerID := uuid.New()
	entity := &models.TrackedEntity{ID: uuid.New(), CaretakerID: caretakerID}

	testCases := []struct {
		name      string
		principal models.Principal
		entityID  uuid.UUID
		setup     func(repo *mocks.MockEntityRepository)
		check     func(t *testing.T, err error)
	}{
		{
			name:      "admin reads any entity",
			principal: models.Principal{ID: uuid.New(), Role: models.RoleAdmin},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(entity, nil)
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "admin sees not found",
			principal: models.Principal{ID: uuid.New(), Role: models.RoleAdmin},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(nil, ErrEntityNotFound)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEntityNotFound) },
		},
		{
			name:      "caretaker reads own entity",
			principal: models.Principal{ID: caretakerID, Role: models.RoleCaretaker},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(entity, nil)
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "caretaker denied for foreign entity",
			principal: models.Principal{ID: uuid.New(), Role: models.RoleCaretaker},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(entity, nil)
			},
			check: func(t *testing.T, err error) {
				var aErr *AuthorizationError
				assert.ErrorAs(t, err, &aErr)
			},
		},
		{
			name:      "caretaker cannot probe unknown entity",
			principal: models.Principal{ID: caretakerID, Role: models.RoleCaretaker},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(nil, ErrEntityNotFound)
			},
			check: func(t *testing.T, err error) {
				var aErr *AuthorizationError
				assert.ErrorAs(t, err, &aErr)
				assert.NotErrorIs(t, err, ErrEntityNotFound)
			},
		},
		{
			name:      "device writes for itself",
			principal: models.Principal{ID: entity.ID, Role: models.RoleDevice},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(entity, nil)
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "device denied for other entity without lookup",
			principal: models.Principal{ID: uuid.New(), Role: models.RoleDevice},
			entityID:  entity.ID,
			setup:     func(*mocks.MockEntityRepository) {},
			check: func(t *testing.T, err error) {
				var aErr *AuthorizationError
				assert.ErrorAs(t, err, &aErr)
			},
		},
		{
			name:      "unknown role denied",
			principal: models.Principal{ID: uuid.New(), Role: "guest"},
			entityID:  entity.ID,
			setup:     func(*mocks.MockEntityRepository) {},
			check: func(t *testing.T, err error) {
				var aErr *AuthorizationError
				assert.ErrorAs(t, err, &aErr)
			},
		},
		{
			name:      "repository failure is propagated",
			principal: models.Principal{ID: uuid.New(), Role: models.RoleAdmin},
			entityID:  entity.ID,
			setup: func(repo *mocks.MockEntityRepository) {
				repo.EXPECT().GetEntity(gomock.Any(), entity.ID).Return(nil, errors.New("db down"))
			},
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "db down")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authz, repo := newTestAuthorizer(t)
			tc.setup(repo)
			err := authz.Authorize(context.Background(), tc.principal, tc.entityID, models.ActionRead)
			tc.check(t, err)
		})
	}
}

func TestPermittedEntities(t *testing.T) {
	ctx := context.Background()
	entity := &models.TrackedEntity{ID: uuid.New(), CaretakerID: uuid.New()}

	t.Run("admin gets all", func(t *testing.T) {
		authz, repo := newTestAuthorizer(t)
		repo.EXPECT().ListEntities(ctx).Return([]*models.TrackedEntity{entity}, nil)

		entities, err := authz.PermittedEntities(ctx, models.Principal{ID: uuid.New(), Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, entities, 1)
	})

	t.Run("caretaker gets own", func(t *testing.T) {
		authz, repo := newTestAuthorizer(t)
		repo.EXPECT().ListEntitiesByCaretaker(ctx, entity.CaretakerID).Return([]*models.TrackedEntity{entity}, nil)

		entities, err := authz.PermittedEntities(ctx, models.Principal{ID: entity.CaretakerID, Role: models.RoleCaretaker})
		require.NoError(t, err)
		assert.Equal(t, entity.ID, entities[0].ID)
	})

	t.Run("unprovisioned device gets nothing", func(t *testing.T) {
		authz, repo := newTestAuthorizer(t)
		deviceID := uuid.New()
		repo.EXPECT().GetEntity(ctx, deviceID).Return(nil, ErrEntityNotFound)

		entities, err := authz.PermittedEntities(ctx, models.Principal{ID: deviceID, Role: models.RoleDevice})
		require.NoError(t, err)
		assert.Empty(t, entities)
	})
}
