// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// LeadRepository implements secondary.LeadRepository with SQLite.
//
// Every mutating method is one transaction: the lead write and its audit
// entries commit together or roll back together. The claim path never reads
// before writing - the conditional UPDATE is the arbiter of the race.
type LeadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new SQLite lead repository.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadSelectCols = "id, name, phone, email, address, source, position, notes, expected_salary, interview_at, status, owner_id, active, created_at, updated_at"

// scanLead scans a lead row into a LeadRecord.
func scanLead(scanner interface {
	Scan(dest ...any) error
}) (*secondary.LeadRecord, error) {
	var (
		phone       sql.NullString
		email       sql.NullString
		address     sql.NullString
		source      sql.NullString
		position    sql.NullString
		notes       sql.NullString
		salary      sql.NullInt64
		interviewAt sql.NullString
		ownerID     sql.NullInt64
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.LeadRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &phone, &email, &address, &source, &position,
		&notes, &salary, &interviewAt, &record.Status, &ownerID, &record.Active,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Phone = phone.String
	record.Email = email.String
	record.Address = address.String
	record.Source = source.String
	record.Position = position.String
	record.Notes = notes.String
	record.ExpectedSalary = salary.Int64
	record.InterviewAt = interviewAt.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	if ownerID.Valid {
		record.OwnerID = &ownerID.Int64
	}

	return record, nil
}

// updatableColumns is the set of columns ApplyUpdate may touch. Plans are
// built from the field catalog, but the adapter never interpolates an
// unknown column name into SQL.
var updatableColumns = map[string]bool{
	"name": true, "phone": true, "email": true, "address": true,
	"source": true, "position": true, "notes": true,
	"expected_salary": true, "interview_at": true, "status": true,
}

// Create persists a new lead together with its create audit entry.
func (r *LeadRepository) Create(ctx context.Context, lead *secondary.LeadRecord, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO leads (name, phone, email, address, source, position, notes, expected_salary, status, active) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)",
		lead.Name, nullString(lead.Phone), nullString(lead.Email), nullString(lead.Address),
		nullString(lead.Source), nullString(lead.Position), nullString(lead.Notes),
		nullInt(lead.ExpectedSalary), lead.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get lead id: %w", err)
	}

	entry.LeadID = id
	entry.PreviousStatus = lead.Status
	entry.NewStatus = lead.Status
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	created, err := getLeadTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return created, nil
}

// GetByID retrieves a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*secondary.LeadRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+leadSelectCols+" FROM leads WHERE id = ?", id)

	record, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return record, nil
}

// List retrieves leads matching the given filters.
func (r *LeadRepository) List(ctx context.Context, filters secondary.LeadFilters) ([]*secondary.LeadRecord, error) {
	query := "SELECT " + leadSelectCols + " FROM leads WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.OwnerID != 0 {
		query += " AND owner_id = ?"
		args = append(args, filters.OwnerID)
	}
	if filters.Unclaimed {
		query += " AND owner_id IS NULL"
	}

	query += " ORDER BY created_at ASC, id ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*secondary.LeadRecord
	for rows.Next() {
		record, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, record)
	}
	return leads, rows.Err()
}

// Claim atomically sets the owner of an unowned lead. The single conditional
// UPDATE decides the race; concurrent claimers that match no row lost to an
// earlier winner and no audit entry is written for them.
func (r *LeadRepository) Claim(ctx context.Context, leadID, workerID int64, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE leads SET owner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id IS NULL",
		workerID, leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim lead: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		exists, err := leadExistsTx(ctx, tx, leadID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, secondary.ErrNotFound
		}
		return nil, secondary.ErrOwnerConflict
	}

	record, err := getLeadTx(ctx, tx, leadID)
	if err != nil {
		return nil, err
	}

	entry.LeadID = leadID
	entry.FromOwnerID = nil
	entry.ToOwnerID = &workerID
	entry.PreviousStatus = record.Status
	entry.NewStatus = record.Status
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// Reassign overwrites the owner unconditionally.
func (r *LeadRepository) Reassign(ctx context.Context, leadID, toWorkerID int64, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	before, err := getLeadTx(ctx, tx, leadID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE leads SET owner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		toWorkerID, leadID,
	); err != nil {
		return nil, fmt.Errorf("failed to reassign lead: %w", err)
	}

	entry.LeadID = leadID
	entry.FromOwnerID = before.OwnerID
	entry.ToOwnerID = &toWorkerID
	entry.PreviousStatus = before.Status
	entry.NewStatus = before.Status
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	record, err := getLeadTx(ctx, tx, leadID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// Release clears the owner and resets the status.
func (r *LeadRepository) Release(ctx context.Context, leadID int64, resetStatus string, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	before, err := getLeadTx(ctx, tx, leadID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE leads SET owner_id = NULL, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		resetStatus, leadID,
	); err != nil {
		return nil, fmt.Errorf("failed to release lead: %w", err)
	}

	entry.LeadID = leadID
	entry.FromOwnerID = before.OwnerID
	entry.ToOwnerID = nil
	entry.PreviousStatus = before.Status
	entry.NewStatus = resetStatus
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	record, err := getLeadTx(ctx, tx, leadID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// ApplyUpdate executes an update plan: the field changes, the update audit
// entry, and the optional hand-off step with its own entry.
func (r *LeadRepository) ApplyUpdate(ctx context.Context, plan *secondary.UpdatePlan) (*secondary.LeadRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE leads SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	columns := make([]string, 0, len(plan.Columns))
	for column := range plan.Columns {
		if !updatableColumns[column] {
			return nil, fmt.Errorf("unknown lead column %q", column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		query += ", " + column + " = ?"
		args = append(args, plan.Columns[column])
	}

	query += " WHERE id = ?"
	args = append(args, plan.LeadID)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, secondary.ErrNotFound
	}

	plan.Entry.LeadID = plan.LeadID
	if err := insertAuditTx(ctx, tx, plan.Entry); err != nil {
		return nil, err
	}

	if plan.Handoff != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE leads SET owner_id = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			plan.Handoff.ToWorkerID, plan.Handoff.Status, plan.LeadID,
		); err != nil {
			return nil, fmt.Errorf("failed to apply hand-off: %w", err)
		}

		plan.Handoff.Entry.LeadID = plan.LeadID
		if err := insertAuditTx(ctx, tx, plan.Handoff.Entry); err != nil {
			return nil, err
		}
	}

	record, err := getLeadTx(ctx, tx, plan.LeadID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return record, nil
}

// Destroy writes the terminal audit entry, deletes the lead's prior history,
// and deletes the lead itself in one transaction. The terminal entry's
// lead_id becomes NULL via the schema's ON DELETE SET NULL; its change_data
// snapshot keeps the destroyed lead documented.
func (r *LeadRepository) Destroy(ctx context.Context, leadID int64, entry *secondary.AuditRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := leadExistsTx(ctx, tx, leadID)
	if err != nil {
		return err
	}
	if !exists {
		return secondary.ErrNotFound
	}

	entry.LeadID = leadID
	if err := insertAuditTx(ctx, tx, entry); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE lead_id = ? AND seq <> ?",
		leadID, entry.Seq,
	); err != nil {
		return fmt.Errorf("failed to delete lead history: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM leads WHERE id = ?", leadID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// getLeadTx reads a lead inside an open transaction.
func getLeadTx(ctx context.Context, tx *sql.Tx, id int64) (*secondary.LeadRecord, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+leadSelectCols+" FROM leads WHERE id = ?", id)

	record, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return record, nil
}

// leadExistsTx checks lead existence inside an open transaction.
func leadExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE id = ?", id,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check lead existence: %w", err)
	}
	return count > 0, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(n int64) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// Ensure LeadRepository implements the interface
var _ secondary.LeadRepository = (*LeadRepository)(nil)
