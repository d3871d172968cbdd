package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service"
)

// время хранится как UnixMicro, чтобы сравнение в SQL совпадало со сравнением в Go
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tracked_entities (
		id TEXT PRIMARY KEY,
		caretaker_id TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tracked_entities_caretaker ON tracked_entities (caretaker_id)`,
	`CREATE TABLE IF NOT EXISTS live_state (
		entity_id TEXT PRIMARY KEY REFERENCES tracked_entities (id),
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		accuracy REAL,
		captured_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS location_history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		entity_id TEXT NOT NULL REFERENCES tracked_entities (id),
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		accuracy REAL,
		captured_at INTEGER NOT NULL,
		admitted_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_location_history_entity ON location_history (entity_id, captured_at, seq)`,
}

// SQLiteStore - хранилище на SQLite для однопроцессного развертывания
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore создает таблицы, если их нет, и возвращает хранилище
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// CreateEntity создает новую запись о сущности
func (r *SQLiteStore) CreateEntity(ctx context.Context, entity *models.TrackedEntity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tracked_entities (id, caretaker_id, label, created_at)
		VALUES (?, ?, ?, ?)
	`, entity.ID.String(), entity.CaretakerID.String(), entity.Label, entity.CreatedAt.UnixMicro())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return service.ErrEntityExists
		}
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

// GetEntity возвращает сущность по ее UUID
func (r *SQLiteStore) GetEntity(ctx context.Context, id uuid.UUID) (*models.TrackedEntity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		WHERE id = ?
	`, id.String())
	entity, err := scanSQLiteEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity by id: %w", err)
	}
	return entity, nil
}

// ListEntities возвращает все сущности
func (r *SQLiteStore) ListEntities(ctx context.Context) ([]*models.TrackedEntity, error) {
	return r.queryEntities(ctx, `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		ORDER BY created_at, id
	`)
}

// ListEntitiesByCaretaker возвращает сущности опекуна
func (r *SQLiteStore) ListEntitiesByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.TrackedEntity, error) {
	return r.queryEntities(ctx, `
		SELECT id, caretaker_id, label, created_at
		FROM tracked_entities
		WHERE caretaker_id = ?
		ORDER BY created_at, id
	`, caretakerID.String())
}

func (r *SQLiteStore) queryEntities(ctx context.Context, query string, args ...any) ([]*models.TrackedEntity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entities := make([]*models.TrackedEntity, 0)
	for rows.Next() {
		entity, err := scanSQLiteEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return entities, nil
}

// Admit выполняет проверку и запись в одной транзакции.
// Пул из одного соединения гарантирует, что транзакции не пересекаются.
func (r *SQLiteStore) Admit(ctx context.Context, report *models.PositionReport, check service.AdmitCheck) (state *models.LiveState, entry *models.HistoryEntry, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, &service.StoreError{Op: "begin", Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tracked_entities WHERE id = ?)`,
		report.EntityID.String()).Scan(&exists); err != nil {
		return nil, nil, &service.StoreError{Op: "lookup entity", Err: err}
	}
	if !exists {
		return nil, nil, service.ErrEntityNotFound
	}

	current, err := scanSQLiteLiveState(tx.QueryRowContext(ctx, `
		SELECT entity_id, latitude, longitude, accuracy, captured_at, updated_at
		FROM live_state
		WHERE entity_id = ?
	`, report.EntityID.String()))
	if err != nil {
		return nil, nil, &service.StoreError{Op: "read live state", Err: err}
	}

	if err := check(current); err != nil {
		return nil, nil, err
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	state = models.NewLiveState(report, now)
	entry = models.NewHistoryEntry(ulid.Make().String(), report, now)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO live_state (entity_id, latitude, longitude, accuracy, captured_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_id) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			accuracy = excluded.accuracy,
			captured_at = excluded.captured_at,
			updated_at = excluded.updated_at
	`, state.EntityID.String(), state.Latitude, state.Longitude, nullFloat(state.Accuracy),
		state.CapturedAt.UnixMicro(), state.UpdatedAt.UnixMicro())
	if err != nil {
		return nil, nil, &service.StoreError{Op: "upsert live state", Err: err}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO location_history (id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.EntityID.String(), entry.Latitude, entry.Longitude, nullFloat(entry.Accuracy),
		entry.CapturedAt.UnixMicro(), entry.AdmittedAt.UnixMicro())
	if err != nil {
		return nil, nil, &service.StoreError{Op: "append history", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, &service.StoreError{Op: "commit", Err: err}
	}
	return state, entry, nil
}

// GetLiveState возвращает текущее состояние сущности или nil
func (r *SQLiteStore) GetLiveState(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error) {
	state, err := scanSQLiteLiveState(r.db.QueryRowContext(ctx, `
		SELECT entity_id, latitude, longitude, accuracy, captured_at, updated_at
		FROM live_state
		WHERE entity_id = ?
	`, entityID.String()))
	if err != nil {
		return nil, &service.StoreError{Op: "get live state", Err: err}
	}
	return state, nil
}

// ListHistory возвращает последние limit записей истории
func (r *SQLiteStore) ListHistory(ctx context.Context, entityID uuid.UUID, limit int, order models.SortOrder) ([]*models.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at
		FROM (
			SELECT id, entity_id, latitude, longitude, accuracy, captured_at, admitted_at, seq
			FROM location_history
			WHERE entity_id = ?
			ORDER BY captured_at DESC, seq DESC
			LIMIT ?
		)
		ORDER BY captured_at %[1]s, seq %[1]s
	`, historyOrderSQL(order))

	rows, err := r.db.QueryContext(ctx, query, entityID.String(), limit)
	if err != nil {
		return nil, &service.StoreError{Op: "list history", Err: err}
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		var (
			entry               models.HistoryEntry
			entityIDRaw         string
			accuracy            sql.NullFloat64
			capturedAt, admitAt int64
		)
		if err := rows.Scan(&entry.ID, &entityIDRaw, &entry.Latitude, &entry.Longitude,
			&accuracy, &capturedAt, &admitAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if entry.EntityID, err = uuid.Parse(entityIDRaw); err != nil {
			return nil, fmt.Errorf("failed to parse history entity id: %w", err)
		}
		entry.Accuracy = floatPtr(accuracy)
		entry.CapturedAt = time.UnixMicro(capturedAt).UTC()
		entry.AdmittedAt = time.UnixMicro(admitAt).UTC()
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error history iteration: %w", err)
	}
	return entries, nil
}

type sqliteScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntity(row sqliteScanner) (*models.TrackedEntity, error) {
	var (
		id, caretakerID string
		label           string
		createdAt       int64
	)
	if err := row.Scan(&id, &caretakerID, &label, &createdAt); err != nil {
		return nil, err
	}
	entity := &models.TrackedEntity{Label: label, CreatedAt: time.UnixMicro(createdAt).UTC()}
	var err error
	if entity.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse entity id: %w", err)
	}
	if entity.CaretakerID, err = uuid.Parse(caretakerID); err != nil {
		return nil, fmt.Errorf("failed to parse caretaker id: %w", err)
	}
	return entity, nil
}

// scanSQLiteLiveState читает строку live_state; отсутствие строки - nil без ошибки
func scanSQLiteLiveState(row sqliteScanner) (*models.LiveState, error) {
	var (
		entityID              string
		state                 models.LiveState
		accuracy              sql.NullFloat64
		capturedAt, updatedAt int64
	)
	err := row.Scan(&entityID, &state.Latitude, &state.Longitude, &accuracy, &capturedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if state.EntityID, err = uuid.Parse(entityID); err != nil {
		return nil, fmt.Errorf("failed to parse live state entity id: %w", err)
	}
	state.Accuracy = floatPtr(accuracy)
	state.CapturedAt = time.UnixMicro(capturedAt).UTC()
	state.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return &state, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
