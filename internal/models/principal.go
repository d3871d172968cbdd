package models

import "github.com/google/uuid"

// Role - роль субъекта, выданная сервисом аутентификации
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCaretaker Role = "caretaker"
	RoleDevice    Role = "device"
)

// Valid сообщает, известна ли роль
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCaretaker, RoleDevice:
		return true
	}
	return false
}

// Principal - аутентифицированный субъект запроса
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// Action - тип доступа к сущности
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)
