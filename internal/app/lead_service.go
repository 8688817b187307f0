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

// LeadServiceImpl implements the primary.LeadService interface.
type LeadServiceImpl struct {
	leadRepo   secondary.LeadRepository
	workerRepo secondary.WorkerRepository
	auditRepo  secondary.AuditRepository
	events     *hub.Hub
}

// NewLeadService creates a new lead service.
func NewLeadService(leadRepo secondary.LeadRepository, workerRepo secondary.WorkerRepository, auditRepo secondary.AuditRepository, events *hub.Hub) *LeadServiceImpl {
	return &LeadServiceImpl{
		leadRepo:   leadRepo,
		workerRepo: workerRepo,
		auditRepo:  auditRepo,
		events:     events,
	}
}

// CreateLead creates a new unclaimed lead with the initial status and its
// create audit entry in one transaction.
func (s *LeadServiceImpl) CreateLead(ctx context.Context, req primary.CreateLeadRequest) (*primary.CreateLeadResponse, error) {
	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID == 0 {
		return nil, primary.PermissionDeniedError("no authenticated actor")
	}
	if req.Name == "" {
		return nil, primary.ValidationErr("lead name must not be empty")
	}

	record := &secondary.LeadRecord{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Source:         req.Source,
		Position:       req.Position,
		Notes:          req.Notes,
		ExpectedSalary: req.ExpectedSalary,
		Status:         string(lead.InitialStatus()),
		Active:         true,
	}

	entry := &secondary.AuditRecord{
		Action:     lead.ActionCreate,
		Reason:     req.Reason,
		ChangeData: lead.ChangedFieldsData(createChanges(req)),
		ActorID:    actor.ID,
	}

	created, err := s.leadRepo.Create(ctx, record, entry)
	if err != nil {
		return nil, primary.StoreFailureError(err, "create lead")
	}

	result := recordToLead(created)
	s.events.Publish(hub.EventLeadCreated, result, hub.Filter{})

	return &primary.CreateLeadResponse{LeadID: created.ID, Lead: result}, nil
}

// createChanges renders the initial field values of a new lead as a diff
// against the empty lead, so the create entry documents what was set.
func createChanges(req primary.CreateLeadRequest) []lead.FieldChange {
	submitted := map[string]string{"name": req.Name}
	for field, value := range map[string]string{
		"phone":    req.Phone,
		"email":    req.Email,
		"address":  req.Address,
		"source":   req.Source,
		"position": req.Position,
		"notes":    req.Notes,
	} {
		if value != "" {
			submitted[field] = value
		}
	}

	diff, err := lead.DiffFields(map[string]string{}, submitted, true)
	if err != nil {
		return nil
	}
	return diff.Changes
}

// GetLead retrieves a lead by ID.
func (s *LeadServiceImpl) GetLead(ctx context.Context, leadID int64) (*primary.Lead, error) {
	record, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, translateLeadErr(err, leadID)
	}
	return recordToLead(record), nil
}

// ListLeads lists leads with optional filters.
func (s *LeadServiceImpl) ListLeads(ctx context.Context, filters primary.LeadFilters) ([]*primary.Lead, error) {
	records, err := s.leadRepo.List(ctx, secondary.LeadFilters{
		Status:    filters.Status,
		OwnerID:   filters.OwnerID,
		Unclaimed: filters.Unclaimed,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, primary.StoreFailureError(err, "list leads")
	}

	leads := make([]*primary.Lead, 0, len(records))
	for _, record := range records {
		leads = append(leads, recordToLead(record))
	}
	return leads, nil
}

// UpdateLead applies a partial field update. The flow is read, guard, diff,
// plan, resolve, execute: everything between the read and the execute is pure,
// and the execute is one transaction covering the field changes, the audit
// entry, and the hand-off step when the owner's pool rule fires.
func (s *LeadServiceImpl) UpdateLead(ctx context.Context, req primary.UpdateLeadRequest) (*primary.Lead, error) {
	actor := ctxutil.ActorFromContext(ctx)
	elevated := config.IsElevated(actor.Role)

	record, err := s.leadRepo.GetByID(ctx, req.LeadID)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	guard := lead.CanUpdateLead(lead.OwnershipContext{
		LeadID:       record.ID,
		OwnerID:      record.OwnerID,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		RoleElevated: elevated,
	})
	if !guard.Allowed {
		return nil, primary.PermissionDeniedError("%s", guard.Reason)
	}

	diff, err := lead.DiffFields(leadFieldValues(record), req.Fields, elevated)
	if err != nil {
		var ve *lead.ValidationError
		if errors.As(err, &ve) {
			return nil, primary.ValidationErr("%s", ve.Error())
		}
		return nil, primary.StoreFailureError(err, "diff lead %d", req.LeadID)
	}

	// No-op updates return the unchanged lead and write nothing.
	if diff.Empty() {
		return recordToLead(record), nil
	}

	ownerRole := ""
	if record.OwnerID != nil {
		owner, err := s.workerRepo.GetByID(ctx, *record.OwnerID)
		if err != nil {
			return nil, primary.StoreFailureError(err, "resolve owner of lead %d", req.LeadID)
		}
		ownerRole = owner.Role
	}

	input := lead.UpdatePlanInput{
		LeadID:        record.ID,
		CurrentStatus: lead.Status(record.Status),
		OwnerID:       record.OwnerID,
		OwnerRole:     ownerRole,
		ActorID:       actor.ID,
		Reason:        req.Reason,
		Diff:          diff,
	}
	plan := lead.BuildUpdatePlan(input)

	storePlan := &secondary.UpdatePlan{
		LeadID:  plan.LeadID,
		Columns: plan.Columns,
		Entry:   specToRecord(record.ID, plan.Entry),
	}

	if plan.Handoff != nil {
		target, err := s.workerRepo.FirstActiveByRole(ctx, plan.Handoff.TargetRole)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return nil, primary.NotFoundError("no active %s worker available for hand-off", plan.Handoff.TargetRole)
			}
			return nil, primary.StoreFailureError(err, "resolve hand-off target")
		}
		storePlan.Handoff = &secondary.HandoffStep{
			ToWorkerID: target.ID,
			Status:     string(plan.Handoff.ForcedStatus),
			Entry:      specToRecord(record.ID, lead.HandoffEntry(input, plan.Handoff, target.ID)),
		}
	}

	updated, err := s.leadRepo.ApplyUpdate(ctx, storePlan)
	if err != nil {
		return nil, translateLeadErr(err, req.LeadID)
	}

	result := recordToLead(updated)
	s.events.Publish(hub.EventLeadUpdated, result, hub.Filter{})
	return result, nil
}

// History returns the audit entries for a lead, newest first.
func (s *LeadServiceImpl) History(ctx context.Context, leadID int64) ([]*primary.AuditEntry, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		return nil, translateLeadErr(err, leadID)
	}

	records, err := s.auditRepo.HistoryByLead(ctx, leadID)
	if err != nil {
		return nil, primary.StoreFailureError(err, "history of lead %d", leadID)
	}

	entries := make([]*primary.AuditEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, recordToAuditEntry(record))
	}
	return entries, nil
}

// Trail returns audit entries across all leads after the given sequence
// number, oldest first.
func (s *LeadServiceImpl) Trail(ctx context.Context, afterSeq int64) ([]*primary.AuditEntry, error) {
	records, err := s.auditRepo.EntriesAfter(ctx, afterSeq)
	if err != nil {
		return nil, primary.StoreFailureError(err, "tail audit trail")
	}

	entries := make([]*primary.AuditEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, recordToAuditEntry(record))
	}
	return entries, nil
}

// specToRecord maps a planner audit entry onto the persistence record.
func specToRecord(leadID int64, spec *lead.AuditEntrySpec) *secondary.AuditRecord {
	if spec == nil {
		return nil
	}
	return &secondary.AuditRecord{
		LeadID:         leadID,
		Action:         spec.Action,
		FromOwnerID:    spec.FromOwnerID,
		ToOwnerID:      spec.ToOwnerID,
		PreviousStatus: string(spec.PreviousStatus),
		NewStatus:      string(spec.NewStatus),
		Reason:         spec.Reason,
		ChangeData:     spec.ChangeData,
		ActorID:        spec.ActorID,
	}
}

// Ensure LeadServiceImpl implements the interface
var _ primary.LeadService = (*LeadServiceImpl)(nil)
