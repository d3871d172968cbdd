package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/models"
)

//go:generate mockgen -source=authorizer.go -destination=mocks/mock_authorizer.go -package=mocks

// Authorizer - контроль доступа: по субъекту определяет набор доступных сущностей
type Authorizer interface {
	PermittedEntities(ctx context.Context, principal models.Principal) ([]*models.TrackedEntity, error)
	Authorize(ctx context.Context, principal models.Principal, entityID uuid.UUID, action models.Action) error
}

// EntityAuthorizer выдает доступ по владению сущностью:
// admin - все сущности, caretaker - свои трости, device - только собственная сущность.
type EntityAuthorizer struct {
	entities EntityRepository
}

func NewEntityAuthorizer(entities EntityRepository) *EntityAuthorizer {
	return &EntityAuthorizer{entities: entities}
}

// PermittedEntities возвращает сущности, доступные субъекту
func (a *EntityAuthorizer) PermittedEntities(ctx context.Context, principal models.Principal) ([]*models.TrackedEntity, error) {
	switch principal.Role {
	case models.RoleAdmin:
		return a.entities.ListEntities(ctx)
	case models.RoleCaretaker:
		return a.entities.ListEntitiesByCaretaker(ctx, principal.ID)
	case models.RoleDevice:
		entity, err := a.entities.GetEntity(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, ErrEntityNotFound) {
				return []*models.TrackedEntity{}, nil
			}
			return nil, err
		}
		return []*models.TrackedEntity{entity}, nil
	}
	return nil, &AuthorizationError{PrincipalID: principal.ID, Action: models.ActionRead}
}

// Authorize - булев шлюз на один вызов. Для не-админов несуществующая сущность
// неотличима от чужой, чтобы не раскрывать провижининг.
func (a *EntityAuthorizer) Authorize(ctx context.Context, principal models.Principal, entityID uuid.UUID, action models.Action) error {
	denied := &AuthorizationError{PrincipalID: principal.ID, EntityID: entityID, Action: action}

	if principal.Role == models.RoleDevice && principal.ID != entityID {
		return denied
	}
	if !principal.Role.Valid() {
		return denied
	}

	entity, err := a.entities.GetEntity(ctx, entityID)
	if err != nil {
		if errors.Is(err, ErrEntityNotFound) {
			if principal.Role == models.RoleAdmin {
				return err
			}
			return denied
		}
		return fmt.Errorf("authorizer: could not load entity: %w", err)
	}

	if principal.Role == models.RoleCaretaker && entity.CaretakerID != principal.ID {
		return denied
	}
	return nil
}
