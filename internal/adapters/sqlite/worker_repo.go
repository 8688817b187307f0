package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// WorkerRepository implements secondary.WorkerRepository with SQLite.
type WorkerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new SQLite worker repository.
func NewWorkerRepository(db *sql.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerSelectCols = "id, name, role, active, created_at, updated_at"

// scanWorker scans a worker row into a WorkerRecord.
func scanWorker(scanner interface {
	Scan(dest ...any) error
}) (*secondary.WorkerRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.WorkerRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &record.Role, &record.Active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new worker.
func (r *WorkerRepository) Create(ctx context.Context, worker *secondary.WorkerRecord) (*secondary.WorkerRecord, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO workers (name, role, active) VALUES (?, ?, 1)",
		worker.Name, worker.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get worker id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a worker by its ID.
func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*secondary.WorkerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workerSelectCols+" FROM workers WHERE id = ?", id)

	record, err := scanWorker(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return record, nil
}

// List retrieves workers matching the given filters.
func (r *WorkerRepository) List(ctx context.Context, filters secondary.WorkerFilters) ([]*secondary.WorkerRecord, error) {
	query := "SELECT " + workerSelectCols + " FROM workers WHERE 1=1"
	args := []any{}

	if filters.Role != "" {
		query += " AND role = ?"
		args = append(args, filters.Role)
	}
	if filters.ActiveOnly {
		query += " AND active = 1"
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []*secondary.WorkerRecord
	for rows.Next() {
		record, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, record)
	}
	return workers, rows.Err()
}

// FirstActiveByRole returns the first active worker of a role in creation
// order. Hand-off targets must be reproducible, so the order is id ASC, not
// load-based.
func (r *WorkerRepository) FirstActiveByRole(ctx context.Context, role string) (*secondary.WorkerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workerSelectCols+" FROM workers WHERE role = ? AND active = 1 ORDER BY id ASC LIMIT 1",
		role,
	)

	record, err := scanWorker(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s worker: %w", role, err)
	}
	return record, nil
}

// SetActive updates the active flag.
func (r *WorkerRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE workers SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return secondary.ErrNotFound
	}
	return nil
}

// Ensure WorkerRepository implements the interface
var _ secondary.WorkerRepository = (*WorkerRepository)(nil)
