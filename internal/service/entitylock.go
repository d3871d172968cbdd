package service

import (
	"sync"

	"github.com/google/uuid"
)

// entityLocks сериализует конвейер приема по сущности внутри процесса,
// чтобы уведомления уходили в том же порядке, в котором были записаны состояния.
type entityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[uuid.UUID]*entityLock)}
}

// lock захватывает секцию сущности и возвращает функцию освобождения
func (l *entityLocks) lock(entityID uuid.UUID) func() {
	l.mu.Lock()
	el, ok := l.locks[entityID]
	if !ok {
		el = &entityLock{}
		l.locks[entityID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()
	return func() {
		el.mu.Unlock()
		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, entityID)
		}
		l.mu.Unlock()
	}
}

func (l *entityLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
