package app

import (
	"context"
	"errors"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/core/lead"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ctxutil"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/hub"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// OwnershipServiceImpl implements the primary.OwnershipService interface.
type OwnershipServiceImpl struct {
	leadRepo   secondary.LeadRepository
	workerRepo secondary.WorkerRepository
	events     *hub.Hub
}

// NewOwnershipService creates a new ownership service.
func NewOwnershipService(leadRepo secondary.LeadRepository, workerRepo secondary.WorkerRepository, events *hub.Hub) *OwnershipServiceImpl {
	return &OwnershipServiceImpl{
		leadRepo:   leadRepo,
		workerRepo: workerRepo,
		events:     events,
	}
}

// ClaimLead atomically claims an unowned lead for a worker. The store decides
// the race with a single conditional write; this layer never checks ownership
// by reading first.
func (s *OwnershipServiceImpl) ClaimLead(ctx context.Context, req primary.ClaimLeadRequest) (*primary.Lead, error) {
	actor := ctxutil.ActorFromContext(ctx)

	worker, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, primary.NotFoundError("worker %d not found", req.WorkerID)
		}
		return nil, primary.StoreFailureError(err, "worker %d", req.WorkerID)
	}

	guard := lead.CanClaimLead(actor.ID, req.WorkerID, worker.Active, config.IsElevated(actor.Role))
	if !guard.Allowed {
		return nil, primary.PermissionDeniedError("%s", guard.Reason)
	}

	workerID := req.WorkerID
	entry := &secondary.AuditRecord{
		Action:     lead.ActionClaim,
		ToOwnerID:  &workerID,
		Reason:     req.Reason,
		ChangeData: lead.AssignmentChangeData(nil, &workerID),
		ActorID:    actor.ID,
	}

	record, err := s.leadRepo.Claim(ctx, req.LeadID, req.WorkerID, entry)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	result := recordToLead(record)
	s.events.Publish(hub.EventLeadClaimed, result, hub.Filter{})
	return result, nil
}

// ReassignLead overwrites the owner unconditionally. Manager only.
func (s *OwnershipServiceImpl) ReassignLead(ctx context.Context, req primary.ReassignLeadRequest) (*primary.Lead, error) {
	actor := ctxutil.ActorFromContext(ctx)

	guard := lead.CanReassignLead(lead.OwnershipContext{
		LeadID:       req.LeadID,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		RoleElevated: config.IsElevated(actor.Role),
	})
	if !guard.Allowed {
		return nil, primary.PermissionDeniedError("%s", guard.Reason)
	}

	current, err := s.leadRepo.GetByID(ctx, req.LeadID)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	target, err := s.workerRepo.GetByID(ctx, req.ToWorkerID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, primary.NotFoundError("worker %d not found", req.ToWorkerID)
		}
		return nil, primary.StoreFailureError(err, "worker %d", req.ToWorkerID)
	}
	if !target.Active {
		return nil, primary.ValidationErr("worker %d is not active", target.ID)
	}

	toWorkerID := target.ID
	entry := &secondary.AuditRecord{
		Action:     lead.ActionReassignment,
		ToOwnerID:  &toWorkerID,
		Reason:     req.Reason,
		ChangeData: lead.AssignmentChangeData(current.OwnerID, &toWorkerID),
		ActorID:    actor.ID,
	}

	record, err := s.leadRepo.Reassign(ctx, req.LeadID, toWorkerID, entry)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	result := recordToLead(record)
	s.events.Publish(hub.EventLeadUpdated, result, hub.Filter{})
	return result, nil
}

// ReleaseLead clears the owner and resets the status to the initial state so
// the lead rejoins the unclaimed pool.
func (s *OwnershipServiceImpl) ReleaseLead(ctx context.Context, req primary.ReleaseLeadRequest) (*primary.Lead, error) {
	actor := ctxutil.ActorFromContext(ctx)

	current, err := s.leadRepo.GetByID(ctx, req.LeadID)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	guard := lead.CanReleaseLead(lead.OwnershipContext{
		LeadID:       current.ID,
		OwnerID:      current.OwnerID,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		RoleElevated: config.IsElevated(actor.Role),
	})
	if !guard.Allowed {
		return nil, primary.PermissionDeniedError("%s", guard.Reason)
	}

	entry := &secondary.AuditRecord{
		Action:     lead.ActionRelease,
		Reason:     req.Reason,
		ChangeData: lead.AssignmentChangeData(current.OwnerID, nil),
		ActorID:    actor.ID,
	}

	record, err := s.leadRepo.Release(ctx, req.LeadID, string(lead.InitialStatus()), entry)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	result := recordToLead(record)
	s.events.Publish(hub.EventLeadReleased, result, hub.Filter{})
	return result, nil
}

// DestroyLead permanently removes a lead. The terminal audit entry carries a
// snapshot of the lead; prior history is deleted in the same transaction.
func (s *OwnershipServiceImpl) DestroyLead(ctx context.Context, req primary.DestroyLeadRequest) error {
	actor := ctxutil.ActorFromContext(ctx)

	current, err := s.leadRepo.GetByID(ctx, req.LeadID)
	if err != nil {
		return translateLeadErr(err, req.LeadID)
	}

	guard := lead.CanDestroyLead(lead.OwnershipContext{
		LeadID:       current.ID,
		OwnerID:      current.OwnerID,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		RoleElevated: config.IsElevated(actor.Role),
	})
	if !guard.Allowed {
		return primary.PermissionDeniedError("%s", guard.Reason)
	}

	entry := &secondary.AuditRecord{
		Action:         lead.ActionDestroy,
		FromOwnerID:    current.OwnerID,
		PreviousStatus: current.Status,
		NewStatus:      current.Status,
		Reason:         req.Reason,
		ChangeData:     lead.DestroyChangeData(leadSnapshot(current)),
		ActorID:        actor.ID,
	}

	if err := s.leadRepo.Destroy(ctx, req.LeadID, entry); err != nil {
		return translateLeadErr(err, req.LeadID)
	}

	s.events.Publish(hub.EventLeadDeleted, map[string]any{"lead_id": req.LeadID}, hub.Filter{})
	return nil
}

// Ensure OwnershipServiceImpl implements the interface
var _ primary.OwnershipService = (*OwnershipServiceImpl)(nil)
