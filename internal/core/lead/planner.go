package lead

// This file contains the pure planner for lead updates. The planner turns a
// computed diff into the set of writes one transaction must apply; the
// application layer resolves the hand-off target and the sqlite adapter
// executes the plan.

// AuditEntrySpec is the planner's description of one audit entry.
// The application layer maps it onto the persistence record.
type AuditEntrySpec struct {
	Action         string
	FromOwnerID    *int64
	ToOwnerID      *int64
	PreviousStatus Status
	NewStatus      Status
	Reason         string
	ChangeData     string
	ActorID        int64
}

// HandoffDirective names the hand-off a plan requires. The target worker is
// resolved by the caller (first active worker of TargetRole).
type HandoffDirective struct {
	TargetRole   string
	ForcedStatus Status
	Type         string
}

// UpdatePlanInput contains the pre-fetched inputs for planning an update.
// All values are read by the caller - no I/O in the planner.
type UpdatePlanInput struct {
	LeadID        int64
	CurrentStatus Status
	OwnerID       *int64
	OwnerRole     string // "" when the lead is unclaimed
	ActorID       int64
	Reason        string
	Diff          *Diff
}

// UpdatePlan represents the planned writes for one update call.
// Entry is nil exactly when the diff is empty (no-op updates write nothing).
type UpdatePlan struct {
	LeadID  int64
	Columns map[string]any
	Entry   *AuditEntrySpec
	Handoff *HandoffDirective
}

// BuildUpdatePlan creates the plan for an update. Ownership is unchanged by
// the primary entry (from and to owner are both the current owner); a
// hand-off directive is attached when the owner's pool rule fires on the new
// status. Directives never chain.
func BuildUpdatePlan(input UpdatePlanInput) *UpdatePlan {
	plan := &UpdatePlan{
		LeadID:  input.LeadID,
		Columns: input.Diff.Columns,
	}

	if input.Diff.Empty() {
		return plan
	}

	newStatus := input.CurrentStatus
	if input.Diff.StatusChange != nil {
		newStatus = input.Diff.StatusChange.To
	}

	plan.Entry = &AuditEntrySpec{
		Action:         ActionUpdate,
		FromOwnerID:    input.OwnerID,
		ToOwnerID:      input.OwnerID,
		PreviousStatus: input.CurrentStatus,
		NewStatus:      newStatus,
		Reason:         input.Reason,
		ChangeData:     ChangedFieldsData(input.Diff.Changes),
		ActorID:        input.ActorID,
	}

	if input.Diff.StatusChange != nil {
		if rule := HandoffFor(input.OwnerRole, newStatus); rule != nil {
			plan.Handoff = &HandoffDirective{
				TargetRole:   rule.TargetRole,
				ForcedStatus: rule.ForcedStatus,
				Type:         rule.Type,
			}
		}
	}

	return plan
}

// HandoffEntry creates the audit entry for a resolved hand-off directive.
// The entry's previous status is the status that triggered the rule; the new
// status is the forced one (they are equal for rules that keep the status).
func HandoffEntry(input UpdatePlanInput, directive *HandoffDirective, toWorkerID int64) *AuditEntrySpec {
	triggered := input.CurrentStatus
	if input.Diff.StatusChange != nil {
		triggered = input.Diff.StatusChange.To
	}

	return &AuditEntrySpec{
		Action:         ActionHandoff,
		FromOwnerID:    input.OwnerID,
		ToOwnerID:      &toWorkerID,
		PreviousStatus: triggered,
		NewStatus:      directive.ForcedStatus,
		Reason:         input.Reason,
		ChangeData:     HandoffChangeData(directive.Type, input.OwnerID, &toWorkerID),
		ActorID:        input.ActorID,
	}
}
