package models

import (
	"time"

	"github.com/google/uuid"
)

// PositionReport - одна отметка геолокации от источника координат
type PositionReport struct {
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// LiveState - текущее местоположение сущности, ровно одна запись на сущность
type LiveState struct {
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HistoryEntry - неизменяемая копия принятого отчета
type HistoryEntry struct {
	ID         string    `json:"id"`
	EntityID   uuid.UUID `json:"entity_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	AdmittedAt time.Time `json:"admitted_at"`
}

// NewLiveState строит состояние из принятого отчета
func NewLiveState(report *PositionReport, updatedAt time.Time) *LiveState {
	return &LiveState{
		EntityID:   report.EntityID,
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		Accuracy:   copyFloat(report.Accuracy),
		CapturedAt: report.CapturedAt,
		UpdatedAt:  updatedAt,
	}
}

// NewHistoryEntry строит запись истории из принятого отчета
func NewHistoryEntry(id string, report *PositionReport, admittedAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:         id,
		EntityID:   report.EntityID,
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		Accuracy:   copyFloat(report.Accuracy),
		CapturedAt: report.CapturedAt,
		AdmittedAt: admittedAt,
	}
}

// Clone возвращает независимую копию состояния
func (s *LiveState) Clone() *LiveState {
	if s == nil {
		return nil
	}
	c := *s
	c.Accuracy = copyFloat(s.Accuracy)
	return &c
}

// Clone возвращает независимую копию записи
func (e *HistoryEntry) Clone() *HistoryEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Accuracy = copyFloat(e.Accuracy)
	return &c
}

// SortOrder - порядок выдачи истории по времени фиксации
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ParseSortOrder разбирает порядок сортировки; пустая строка означает desc
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "", SortDesc:
		return SortDesc, true
	case SortAsc:
		return SortAsc, true
	}
	return "", false
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
