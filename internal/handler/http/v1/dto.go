package v1

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReportRequest DTO для отчета о местоположении.
// Указатели отличают отсутствующее поле от нулевой координаты.
// @Description DTO для отчета о местоположении
type SubmitReportRequest struct {
	EntityID   *uuid.UUID `json:"entity_id" validate:"required"`
	Latitude   *float64   `json:"latitude" validate:"required"`
	Longitude  *float64   `json:"longitude" validate:"required"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"captured_at" validate:"required"`
}

// SubmitReportResponse DTO для ответа на отчет
// @Description DTO для ответа на отчет
type SubmitReportResponse struct {
	Accepted  bool               `json:"accepted"`
	LiveState *LiveStateResponse `json:"live_state,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// LiveStateResponse DTO текущего местоположения
// @Description DTO текущего местоположения
type LiveStateResponse struct {
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PositionResponse DTO ответа на запрос текущей позиции; live_state = null, если отчетов не было
// @Description DTO ответа на запрос текущей позиции
type PositionResponse struct {
	EntityID  uuid.UUID          `json:"entity_id"`
	LiveState *LiveStateResponse `json:"live_state"`
}

// HistoryEntryResponse DTO записи истории
// @Description DTO записи истории
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	AdmittedAt time.Time `json:"admitted_at"`
}

// CreateEntityRequest DTO для провижининга сущности
// @Description DTO для провижининга сущности
type CreateEntityRequest struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	CaretakerID *uuid.UUID `json:"caretaker_id" validate:"required"`
	Label       string     `json:"label" validate:"max=255"`
}

// EntityResponse DTO отслеживаемой сущности
// @Description DTO отслеживаемой сущности
type EntityResponse struct {
	ID          uuid.UUID `json:"id"`
	CaretakerID uuid.UUID `json:"caretaker_id"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
}

// RevokeResponse DTO ответа на отзыв сессий
// @Description DTO ответа на отзыв сессий
type RevokeResponse struct {
	Closed int `json:"closed"`
}

// StreamFrame - кадр живого потока
// @Description Кадр живого потока: snapshot приходит первым, затем update
type StreamFrame struct {
	Type      string             `json:"type"`
	EntityID  uuid.UUID          `json:"entity_id"`
	LiveState *LiveStateResponse `json:"live_state"`
}

// StreamCommand - сообщение клиента в потоке
type StreamCommand struct {
	Type string `json:"type"`
}

const (
	frameSnapshot      = "snapshot"
	frameUpdate        = "update"
	commandUnsubscribe = "unsubscribe"
)
