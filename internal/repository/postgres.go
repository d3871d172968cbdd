package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service"
)

const pgUniqueViolation = "23505"

type PostgresStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// CreateEntity создает новую запись о сущности в бд
func (r *PostgresStore) CreateEntity(ctx context.Context, entity *models.TrackedEntity) error {
	query := `
		INSERT INTO tracked_entities (id, caretaker_id, label, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query, entity.ID, entity.CaretakerID, entity.Label, entity.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return service.ErrEntityExists
		}
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

// GetEntity возвращает сущность по ее UUID
func (r *PostgresStore) GetEntity(ctx context.Context, id uuid.UUID) (*models.TrackedEntity, error) {
	entity := &models.TrackedEntity{}
	query := `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&entity.ID, &entity.CaretakerID, &entity.Label, &entity.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity by id: %w", err)
	}
	return entity, nil
}

// ListEntities возвращает все сущности
func (r *PostgresStore) ListEntities(ctx context.Context) ([]*models.TrackedEntity, error) {
	query := `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		ORDER BY created_at, id;
	`
	return r.queryEntities(ctx, query)
}

// ListEntitiesByCaretaker возвращает сущности опекуна
func (r *PostgresStore) ListEntitiesByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.TrackedEntity, error) {
	query := `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		WHERE caretaker_id = $1
		ORDER BY created_at, id;
	`
	return r.queryEntities(ctx, query, caretakerID)
}

func (r *PostgresStore) queryEntities(ctx context.Context, query string, args ...any) ([]*models.TrackedEntity, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	entities := make([]*models.TrackedEntity, 0)
	for rows.Next() {
		entity := &models.TrackedEntity{}
		if err := rows.Scan(&entity.ID, &entity.CaretakerID, &entity.Label, &entity.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return entities, nil
}

// Admit в одной транзакции под advisory-замком сущности читает текущее состояние,
// вызывает check и при успехе перезаписывает live_state и дописывает location_history
func (r *PostgresStore) Admit(ctx context.Context, report *models.PositionReport, check service.AdmitCheck) (state *models.LiveState, entry *models.HistoryEntry, retErr error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, &service.StoreError{Op: "begin", Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0));`, report.EntityID); err != nil {
		return nil, nil, &service.StoreError{Op: "lock", Err: err}
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tracked_entities WHERE id = $1);`, report.EntityID).Scan(&exists); err != nil {
		return nil, nil, &service.StoreError{Op: "lookup entity", Err: err}
	}
	if !exists {
		return nil, nil, service.ErrEntityNotFound
	}

	current, err := scanLiveState(tx.QueryRow(ctx, `
		SELECT entity_id, latitude, longitude, accuracy, captured_at, updated_at
		FROM live_state
		WHERE entity_id = $1
		FOR UPDATE;
	`, report.EntityID))
	if err != nil {
		return nil, nil, &service.StoreError{Op: "read live state", Err: err}
	}

	if err := check(current); err != nil {
		return nil, nil, err
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	state = models.NewLiveState(report, now)
	entry = models.NewHistoryEntry(ulid.Make().String(), report, now)

	_, err = tx.Exec(ctx, `
		INSERT INTO live_state (entity_id, latitude, longitude, accuracy, captured_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			accuracy = EXCLUDED.accuracy,
			captured_at = EXCLUDED.captured_at,
			updated_at = EXCLUDED.updated_at;
	`, state.EntityID, state.Latitude, state.Longitude, state.Accuracy, state.CapturedAt, state.UpdatedAt)
	if err != nil {
		return nil, nil, &service.StoreError{Op: "upsert live state", Err: err}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO location_history (id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, entry.ID, entry.EntityID, entry.Latitude, entry.Longitude, entry.Accuracy, entry.CapturedAt, entry.AdmittedAt)
	if err != nil {
		return nil, nil, &service.StoreError{Op: "append history", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, &service.StoreError{Op: "commit", Err: err}
	}
	return state, entry, nil
}

// GetLiveState возвращает текущее состояние сущности или nil
func (r *PostgresStore) GetLiveState(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error) {
	state, err := scanLiveState(r.db.QueryRow(ctx, `
		SELECT entity_id, latitude, longitude, accuracy, captured_at, updated_at
		FROM live_state
		WHERE entity_id = $1;
	`, entityID))
	if err != nil {
		return nil, &service.StoreError{Op: "get live state", Err: err}
	}
	return state, nil
}

// ListHistory возвращает последние limit записей истории
func (r *PostgresStore) ListHistory(ctx context.Context, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at
		FROM (
			SELECT id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at, seq
			FROM location_history
			WHERE entity_id = $1
			ORDER BY captured_at DESC, seq DESC
			LIMIT $2
		) recent
		ORDER BY captured_at %[1]s, seq %[1]s;
	`, historyOrderSQL(order))

	rows, err := r.db.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, &service.StoreError{Op: "list history", Err: err}
	}
	defer rows.Close()

	entries := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		entry := &models.HistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.EntityID, &entry.Latitude, &entry.Longitude,
			&entry.Accuracy, &entry.CapturedAt, &entry.AdmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.CapturedAt = entry.CapturedAt.UTC()
		entry.AdmittedAt = entry.AdmittedAt.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error history iteration: %w", err)
	}
	return entries, nil
}

// scanLiveState читает строку live_state; отсутствие строки - nil без ошибки
func scanLiveState(row pgx.Row) (*models.LiveState, error) {
	state := &models.LiveState{}
	err := row.Scan(&state.EntityID, &state.Latitude, &state.Longitude, &state.Accuracy,
		&state.CapturedAt, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	state.CapturedAt = state.CapturedAt.UTC()
	state.UpdatedAt = state.UpdatedAt.UTC()
	return state, nil
}
