package lead

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
// Guards are pure functions that evaluate preconditions without side effects.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// allowed is the shared success result.
var allowed = GuardResult{Allowed: true}

func denied(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// OwnershipContext provides context for ownership-sensitive guards.
type OwnershipContext struct {
	LeadID       int64
	OwnerID      *int64 // nil when unclaimed
	ActorID      int64
	ActorRole    string
	RoleElevated bool
}

func (c OwnershipContext) actorOwns() bool {
	return c.OwnerID != nil && *c.OwnerID == c.ActorID
}

// CanClaimLead evaluates whether a claim may be attempted.
// Rules:
// - The claiming worker must be active
// - A worker claims for themselves unless the actor is elevated
// The unowned check itself is NOT a guard: it is enforced by the store's
// conditional write, never by a read-then-write check.
func CanClaimLead(actorID, workerID int64, workerActive, elevated bool) GuardResult {
	if !workerActive {
		return denied("worker %d is not active", workerID)
	}
	if workerID != actorID && !elevated {
		return denied("cannot claim a lead for another worker")
	}
	return allowed
}

// CanUpdateLead evaluates whether the actor may edit a lead.
// Rules:
// - Elevated actors may edit any lead
// - Other actors must own the lead
func CanUpdateLead(ctx OwnershipContext) GuardResult {
	if ctx.RoleElevated || ctx.actorOwns() {
		return allowed
	}
	if ctx.OwnerID == nil {
		return denied("lead %d is unclaimed, claim it first", ctx.LeadID)
	}
	return denied("lead %d is owned by worker %d", ctx.LeadID, *ctx.OwnerID)
}

// CanReassignLead evaluates whether the actor may reassign a lead.
// Rules:
// - Only elevated actors may reassign
func CanReassignLead(ctx OwnershipContext) GuardResult {
	if ctx.RoleElevated {
		return allowed
	}
	return denied("reassigning leads requires the manager role")
}

// CanReleaseLead evaluates whether the actor may release a lead.
// Rules:
// - The owner may release their own lead; elevated actors may release any
func CanReleaseLead(ctx OwnershipContext) GuardResult {
	if ctx.RoleElevated || ctx.actorOwns() {
		return allowed
	}
	return denied("lead %d is not owned by worker %d", ctx.LeadID, ctx.ActorID)
}

// CanDestroyLead evaluates whether the actor may destroy a lead.
// Rules:
// - The owner may destroy their own lead; elevated actors may destroy any
func CanDestroyLead(ctx OwnershipContext) GuardResult {
	if ctx.RoleElevated || ctx.actorOwns() {
		return allowed
	}
	return denied("destroying lead %d requires ownership or the manager role", ctx.LeadID)
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}
