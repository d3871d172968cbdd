package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service"
)

// entitySlot - эксклюзивная секция одной сущности: текущее состояние и ее история
type entitySlot struct {
	mu      sync.Mutex
	live    *models.LiveState
	history []*models.HistoryEntry
}

// MemoryStore хранит сущности, текущие состояния и историю в памяти процесса.
// Используется в тестах и для STORE_DRIVER=memory.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*models.TrackedEntity
	slots    map[uuid.UUID]*entitySlot
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[uuid.UUID]*models.TrackedEntity),
		slots:    make(map[uuid.UUID]*entitySlot),
		now:      time.Now,
	}
}

// CreateEntity регистрирует новую сущность
func (s *MemoryStore) CreateEntity(_ context.Context, entity *models.TrackedEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[entity.ID]; ok {
		return service.ErrEntityExists
	}
	c := *entity
	s.entities[entity.ID] = &c
	s.slots[entity.ID] = &entitySlot{}
	return nil
}

// GetEntity возвращает сущность по ID
func (s *MemoryStore) GetEntity(_ context.Context, id uuid.UUID) (*models.TrackedEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entities[id]
	if !ok {
		return nil, service.ErrEntityNotFound
	}
	c := *entity
	return &c, nil
}

// ListEntities возвращает все сущности в порядке создания
func (s *MemoryStore) ListEntities(_ context.Context) ([]*models.TrackedEntity, error) {
	return s.filterEntities(func(*models.TrackedEntity) bool { return true }), nil
}

// ListEntitiesByCaretaker возвращает сущности опекуна
func (s *MemoryStore) ListEntitiesByCaretaker(_ context.Context, caretakerID uuid.UUID) ([]*models.TrackedEntity, error) {
	return s.filterEntities(func(e *models.TrackedEntity) bool { return e.CaretakerID == caretakerID }), nil
}

func (s *MemoryStore) filterEntities(keep func(*models.TrackedEntity) bool) []*models.TrackedEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entities := make([]*models.TrackedEntity, 0, len(s.entities))
	for _, e := range s.entities {
		if keep(e) {
			c := *e
			entities = append(entities, &c)
		}
	}
	sortEntities(entities)
	return entities
}

// Admit проверяет отчет и атомарно обновляет состояние и историю под замком сущности
func (s *MemoryStore) Admit(_ context.Context, report *models.PositionReport, check service.AdmitCheck) (*models.LiveState, *models.HistoryEntry, error) {
	slot, err := s.slot(report.EntityID)
	if err != nil {
		return nil, nil, err
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if err := check(slot.live.Clone()); err != nil {
		return nil, nil, err
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	state := models.NewLiveState(report, now)
	entry := models.NewHistoryEntry(ulid.Make().String(), report, now)
	slot.live = state
	slot.history = append(slot.history, entry)
	return state.Clone(), entry.Clone(), nil
}

// GetLiveState возвращает текущее состояние; nil, если отчетов еще не было
func (s *MemoryStore) GetLiveState(_ context.Context, entityID uuid.UUID) (*models.LiveState, error) {
	slot, err := s.slot(entityID)
	if err != nil {
		return nil, nil
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.live.Clone(), nil
}

// ListHistory возвращает последние limit записей в заданном порядке
func (s *MemoryStore) ListHistory(_ context.Context, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error) {
	slot, err := s.slot(entityID)
	if err != nil {
		return []*models.HistoryEntry{}, nil
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	// принятые отчеты строго возрастают по времени фиксации, поэтому хвост слайса - самые свежие
	from := 0
	if limit > 0 && len(slot.history) > limit {
		from = len(slot.history) - limit
	}
	tail := slot.history[from:]

	entries := make([]*models.HistoryEntry, 0, len(tail))
	for _, e := range tail {
		entries = append(entries, e.Clone())
	}
	if order != models.SortAsc {
		reverseEntries(entries)
	}
	return entries, nil
}

func (s *MemoryStore) slot(entityID uuid.UUID) (*entitySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.slots[entityID]
	if !ok {
		return nil, service.ErrEntityNotFound
	}
	return slot, nil
}
