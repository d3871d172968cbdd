package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/position"
)

// ErrEntityNotFound - сущность не провижинена
var ErrEntityNotFound = errors.New("entity not found")

// ErrEntityExists - сущность с таким идентификатором уже провижинена
var ErrEntityExists = errors.New("entity already exists")

// ValidationError - отчет некорректен или устарел. Сервис его не повторяет.
type ValidationError struct {
	Reason position.Reason
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("report rejected: %s: %s", e.Reason, e.Detail)
}

// AuthorizationError - у субъекта нет доступа к сущности
type AuthorizationError struct {
	PrincipalID uuid.UUID
	EntityID    uuid.UUID
	Action      models.Action
}

func (e *AuthorizationError) Error() string {
	if e.EntityID == uuid.Nil {
		return fmt.Sprintf("principal %s is not allowed to %s", e.PrincipalID, e.Action)
	}
	return fmt.Sprintf("principal %s is not allowed to %s entity %s", e.PrincipalID, e.Action, e.EntityID)
}

// StoreError - сбой хранилища при записи или чтении. Вызывающая сторона повторяет отчет целиком.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// DeliveryError - сбой доставки одному подписчику
type DeliveryError = hub.DeliveryError
