// Package repository содержит реализации хранилищ сущностей, текущих состояний и истории
// (memory, PostgreSQL, SQLite), а также Redis-кеш текущего состояния.
package repository

import (
	"slices"
	"strings"

	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service"
)

var (
	_ service.EntityRepository   = (*MemoryStore)(nil)
	_ service.LocationRepository = (*MemoryStore)(nil)
	_ service.EntityRepository   = (*PostgresStore)(nil)
	_ service.LocationRepository = (*PostgresStore)(nil)
	_ service.EntityRepository   = (*SQLiteStore)(nil)
	_ service.LocationRepository = (*SQLiteStore)(nil)
	_ service.LiveStateCache     = (*RedisLiveStateCache)(nil)
)

func sortEntities(entities []*models.TrackedEntity) {
	slices.SortFunc(entities, func(a, b *models.TrackedEntity) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

func reverseEntries(entries []*models.HistoryEntry) {
	slices.Reverse(entries)
}

// historyOrderSQL возвращает направление сортировки для запроса истории
func historyOrderSQL(order models.SortOrder) string {
	if order == models.SortAsc {
		return "ASC"
	}
	return "DESC"
}
