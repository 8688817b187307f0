package primary

import "context"

// LeadService defines the primary port for lead field and status operations.
type LeadService interface {
	// CreateLead creates a new unclaimed lead with the initial status.
	CreateLead(ctx context.Context, req CreateLeadRequest) (*CreateLeadResponse, error)

	// GetLead retrieves a lead by ID.
	GetLead(ctx context.Context, leadID int64) (*Lead, error)

	// ListLeads lists leads with optional filters.
	ListLeads(ctx context.Context, filters LeadFilters) ([]*Lead, error)

	// UpdateLead applies a partial field update, performing the status
	// transition and any automatic hand-off when status is among the
	// submitted fields. A no-op update returns the unchanged lead.
	UpdateLead(ctx context.Context, req UpdateLeadRequest) (*Lead, error)

	// History returns the audit entries for a lead, newest first.
	History(ctx context.Context, leadID int64) ([]*AuditEntry, error)

	// Trail returns audit entries across all leads with Seq greater than
	// afterSeq, oldest first. Used to follow the trail live.
	Trail(ctx context.Context, afterSeq int64) ([]*AuditEntry, error)
}

// OwnershipService defines the primary port for lead ownership operations.
type OwnershipService interface {
	// ClaimLead atomically claims an unowned lead for a worker.
	// Returns an OwnerConflict error if another worker won the race.
	ClaimLead(ctx context.Context, req ClaimLeadRequest) (*Lead, error)

	// ReassignLead overwrites the owner unconditionally. Manager only.
	ReassignLead(ctx context.Context, req ReassignLeadRequest) (*Lead, error)

	// ReleaseLead clears the owner and resets status to the initial state.
	ReleaseLead(ctx context.Context, req ReleaseLeadRequest) (*Lead, error)

	// DestroyLead permanently removes a lead, writing a terminal audit
	// entry and deleting prior history in the same transaction.
	DestroyLead(ctx context.Context, req DestroyLeadRequest) error
}

// CreateLeadRequest contains parameters for creating a lead.
type CreateLeadRequest struct {
	Name           string
	Phone          string
	Email          string
	Address        string
	Source         string
	Position       string
	Notes          string
	ExpectedSalary int64
	Reason         string
}

// CreateLeadResponse contains the result of creating a lead.
type CreateLeadResponse struct {
	LeadID int64
	Lead   *Lead
}

// UpdateLeadRequest contains a partial field update.
// Fields maps submitted field names to raw string values; numeric and
// datetime fields are parsed and validated by the service.
type UpdateLeadRequest struct {
	LeadID int64
	Fields map[string]string
	Reason string
}

// ClaimLeadRequest contains parameters for claiming a lead.
type ClaimLeadRequest struct {
	LeadID   int64
	WorkerID int64
	Reason   string
}

// ReassignLeadRequest contains parameters for reassigning a lead.
type ReassignLeadRequest struct {
	LeadID     int64
	ToWorkerID int64
	Reason     string
}

// ReleaseLeadRequest contains parameters for releasing a lead.
type ReleaseLeadRequest struct {
	LeadID int64
	Reason string
}

// DestroyLeadRequest contains parameters for destroying a lead.
type DestroyLeadRequest struct {
	LeadID int64
	Reason string
}

// LeadFilters contains filter options for querying leads.
type LeadFilters struct {
	Status    string
	OwnerID   int64 // 0 means no owner filter
	Unclaimed bool  // only leads with no owner
	Limit     int
}

// Lead represents a lead entity at the port boundary.
// OwnerID is nil while the lead is unclaimed.
type Lead struct {
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

// AuditEntry represents one immutable mutation record at the port boundary.
// Entries for a lead form a total order by Seq.
type AuditEntry struct {
	Seq            int64
	LeadID         int64
	Action         string
	FromOwnerID    *int64
	ToOwnerID      *int64
	PreviousStatus string
	NewStatus      string
	Reason         string
	ChangeData     map[string]any
	ActorID        int64
	CreatedAt      string
}
