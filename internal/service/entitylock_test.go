package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntityLocks_SerializesSameEntity(t *testing.T) {
	locks := newEntityLocks()
	entityID := uuid.New()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(entityID)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, locks.size()) // освобожденные секции удаляются
}

func TestEntityLocks_IndependentEntities(t *testing.T) {
	locks := newEntityLocks()
	unlockA := locks.lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(uuid.New())
		unlockB()
		close(done)
	}()
	<-done
	assert.Equal(t, 1, locks.size())
}
