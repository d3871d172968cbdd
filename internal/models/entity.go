package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackedEntity - устройство (трость), местоположение которого отслеживается.
// Создается при провижининге и больше не меняется.
type TrackedEntity struct {
	ID          uuid.UUID `json:"id"`
	CaretakerID uuid.UUID `json:"caretaker_id"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
}
