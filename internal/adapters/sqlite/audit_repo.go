package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
// The trail is read-only from here: entries are inserted exclusively by
// LeadRepository transactions via insertAuditTx.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditSelectCols = "seq, lead_id, action, from_owner_id, to_owner_id, previous_status, new_status, reason, change_data, actor_id, created_at"

// scanAudit scans an audit row into an AuditRecord.
func scanAudit(scanner interface {
	Scan(dest ...any) error
}) (*secondary.AuditRecord, error) {
	var (
		leadID     sql.NullInt64
		fromOwner  sql.NullInt64
		toOwner    sql.NullInt64
		prevStatus sql.NullString
		newStatus  sql.NullString
		reason     sql.NullString
		changeData sql.NullString
		createdAt  time.Time
	)

	record := &secondary.AuditRecord{}
	err := scanner.Scan(
		&record.Seq, &leadID, &record.Action, &fromOwner, &toOwner,
		&prevStatus, &newStatus, &reason, &changeData, &record.ActorID, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.LeadID = leadID.Int64
	record.PreviousStatus = prevStatus.String
	record.NewStatus = newStatus.String
	record.Reason = reason.String
	record.ChangeData = changeData.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	if fromOwner.Valid {
		record.FromOwnerID = &fromOwner.Int64
	}
	if toOwner.Valid {
		record.ToOwnerID = &toOwner.Int64
	}

	return record, nil
}

// HistoryByLead returns all entries for a lead, newest first. The seq column
// orders entries written in the same transaction, where timestamps tie.
func (r *AuditRepository) HistoryByLead(ctx context.Context, leadID int64) ([]*secondary.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+auditSelectCols+" FROM audit_entries WHERE lead_id = ? ORDER BY seq DESC",
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead history: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		record, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, record)
	}
	return entries, rows.Err()
}

// EntriesAfter returns all entries across leads with seq greater than
// afterSeq, oldest first.
func (r *AuditRepository) EntriesAfter(ctx context.Context, afterSeq int64) ([]*secondary.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+auditSelectCols+" FROM audit_entries WHERE seq > ? ORDER BY seq ASC",
		afterSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tail audit trail: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		record, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, record)
	}
	return entries, rows.Err()
}

// insertAuditTx appends one audit entry inside an open transaction and fills
// in the assigned sequence number. This is the only write path into the
// trail; entries are immutable once committed.
func insertAuditTx(ctx context.Context, tx *sql.Tx, entry *secondary.AuditRecord) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO audit_entries (lead_id, action, from_owner_id, to_owner_id, previous_status, new_status, reason, change_data, actor_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.LeadID, entry.Action, nullIntPtr(entry.FromOwnerID), nullIntPtr(entry.ToOwnerID),
		nullString(entry.PreviousStatus), nullString(entry.NewStatus),
		nullString(entry.Reason), nullString(entry.ChangeData), entry.ActorID,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get audit sequence: %w", err)
	}
	entry.Seq = seq
	return nil
}

func nullIntPtr(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

// Ensure AuditRepository implements the interface
var _ secondary.AuditRepository = (*AuditRepository)(nil)
