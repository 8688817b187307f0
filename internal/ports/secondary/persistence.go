// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// Sentinel errors returned by repository adapters. The application layer
// translates these into the typed errors of the primary port.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOwnerConflict indicates a conditional claim write matched no row
	// because the lead is already owned.
	ErrOwnerConflict = errors.New("owner conflict")
)

// LeadRepository defines the secondary port for lead persistence.
//
// Every mutating method runs as one storage transaction: the lead mutation
// and the audit entries documenting it commit together or not at all. Audit
// entries are never written through any other path.
type LeadRepository interface {
	// Create persists a new lead together with its create audit entry and
	// returns the stored record.
	Create(ctx context.Context, lead *LeadRecord, entry *AuditRecord) (*LeadRecord, error)

	// GetByID retrieves a lead by its ID.
	GetByID(ctx context.Context, id int64) (*LeadRecord, error)

	// List retrieves leads matching the given filters.
	List(ctx context.Context, filters LeadFilters) ([]*LeadRecord, error)

	// Claim sets the owner with a single conditional write that succeeds
	// only while the lead is unowned. Returns ErrOwnerConflict if the lead
	// is already owned, ErrNotFound if it does not exist. The entry's
	// status fields are filled from the row inside the transaction.
	Claim(ctx context.Context, leadID, workerID int64, entry *AuditRecord) (*LeadRecord, error)

	// Reassign overwrites the owner unconditionally. The entry's from-owner
	// and status fields are filled from the row inside the transaction.
	Reassign(ctx context.Context, leadID, toWorkerID int64, entry *AuditRecord) (*LeadRecord, error)

	// Release clears the owner and resets status. The entry's from-owner
	// and previous status are filled from the row inside the transaction.
	Release(ctx context.Context, leadID int64, resetStatus string, entry *AuditRecord) (*LeadRecord, error)

	// ApplyUpdate executes an update plan: field changes, the primary audit
	// entry, and the optional hand-off step with its own entry.
	ApplyUpdate(ctx context.Context, plan *UpdatePlan) (*LeadRecord, error)

	// Destroy writes the terminal audit entry, deletes the lead's prior
	// history, and deletes the lead, all in one transaction.
	Destroy(ctx context.Context, leadID int64, entry *AuditRecord) error
}

// WorkerRepository defines the secondary port for worker persistence.
type WorkerRepository interface {
	// Create persists a new worker and returns the stored record.
	Create(ctx context.Context, worker *WorkerRecord) (*WorkerRecord, error)

	// GetByID retrieves a worker by its ID.
	GetByID(ctx context.Context, id int64) (*WorkerRecord, error)

	// List retrieves workers matching the given filters.
	List(ctx context.Context, filters WorkerFilters) ([]*WorkerRecord, error)

	// FirstActiveByRole returns the first active worker of a role in
	// creation order. Hand-off target resolution depends on this order
	// being stable. Returns ErrNotFound if the pool has no active worker.
	FirstActiveByRole(ctx context.Context, role string) (*WorkerRecord, error)

	// SetActive updates the active flag.
	SetActive(ctx context.Context, id int64, active bool) error
}

// AuditRepository defines the secondary port for reading the audit trail.
// There is deliberately no standalone append: entries are written only
// inside LeadRepository transactions.
type AuditRepository interface {
	// HistoryByLead returns all entries for a lead ordered newest first.
	HistoryByLead(ctx context.Context, leadID int64) ([]*AuditRecord, error)

	// EntriesAfter returns all entries across leads with Seq greater than
	// afterSeq, oldest first. Used to tail the trail for live watching.
	EntriesAfter(ctx context.Context, afterSeq int64) ([]*AuditRecord, error)
}

// LeadRecord represents a lead as stored in persistence.
// OwnerID is nil while the lead is unclaimed.
type LeadRecord struct {
	ID             int64
	Name           string
	Phone          string
	Email          string
	Address        string
	Source         string
	Position       string
	Notes          string
	ExpectedSalary int64
	InterviewAt    string
	Status         string
	OwnerID        *int64
	Active         bool
	CreatedAt      string
	UpdatedAt      string
}

// WorkerRecord represents a worker as stored in persistence.
type WorkerRecord struct {
	ID        int64
	Name      string
	Role      string
	Active    bool
	CreatedAt string
	UpdatedAt string
}

// AuditRecord represents an audit entry as stored in persistence.
// ChangeData is a JSON document.
type AuditRecord struct {
	Seq            int64
	LeadID         int64
	Action         string
	FromOwnerID    *int64
	ToOwnerID      *int64
	PreviousStatus string
	NewStatus      string
	Reason         string
	ChangeData     string
	ActorID        int64
	CreatedAt      string
}

// UpdatePlan describes one atomic lead update: the column changes, the audit
// entry documenting them, and the optional automatic hand-off step.
type UpdatePlan struct {
	LeadID  int64
	Columns map[string]any // column name -> new value
	Entry   *AuditRecord
	Handoff *HandoffStep
}

// HandoffStep describes the automatic reassignment applied inside the same
// transaction as the triggering status change.
type HandoffStep struct {
	ToWorkerID int64
	Status     string // status forced by the hand-off rule
	Entry      *AuditRecord
}

// LeadFilters contains filter options for querying leads.
type LeadFilters struct {
	Status    string
	OwnerID   int64
	Unclaimed bool
	Limit     int
}

// WorkerFilters contains filter options for querying workers.
type WorkerFilters struct {
	Role       string
	ActiveOnly bool
}
