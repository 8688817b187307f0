// Package lead contains the pure business logic for lead operations.
// This is part of the Functional Core - no I/O, only pure functions.
package lead

// Status represents the workflow state of a lead.
//
// The set below is what the workflow special-cases; any other non-empty
// value is accepted as-is. Only the two hand-off rules constrain what a
// status change means.
type Status string

const (
	StatusNew       Status = "new"
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// InitialStatus returns the status for a new or released lead.
func InitialStatus() Status {
	return StatusNew
}

// Audit entry actions. One entry is written per mutation, inside the same
// transaction as the mutation it documents.
const (
	ActionCreate       = "create"
	ActionClaim        = "claim"
	ActionReassignment = "reassignment"
	ActionRelease      = "release"
	ActionUpdate       = "update"
	ActionHandoff      = "handoff"
	ActionDestroy      = "destroy"
)

// HandoffRule describes one automatic pool-to-pool reassignment: when a
// worker of TriggerRole moves a lead to "completed", ownership passes to the
// first active worker of TargetRole and status is forced to ForcedStatus.
type HandoffRule struct {
	TriggerRole  string
	TargetRole   string
	ForcedStatus Status
	Type         string // recorded as change_data.handoff_type
}

// handoffRules is keyed by the role of the lead's current owner.
// Rules never chain: a forced status does not re-trigger evaluation.
var handoffRules = map[string]HandoffRule{
	"telecaller": {
		TriggerRole:  "telecaller",
		TargetRole:   "hr",
		ForcedStatus: StatusPending,
		Type:         "telecaller_to_hr",
	},
	"hr": {
		TriggerRole:  "hr",
		TargetRole:   "manager",
		ForcedStatus: StatusCompleted,
		Type:         "hr_to_manager",
	},
}

// HandoffFor returns the hand-off rule triggered by the given owner role
// setting the given new status, or nil if no rule applies. Leads without an
// owner never trigger hand-offs.
func HandoffFor(ownerRole string, newStatus Status) *HandoffRule {
	if newStatus != StatusCompleted {
		return nil
	}
	rule, ok := handoffRules[ownerRole]
	if !ok {
		return nil
	}
	return &rule
}
