package app

import (
	"strings"
	"testing"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/core/lead"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// ============================================================================
// ClaimLead Tests
// ============================================================================

func TestClaimLead(t *testing.T) {
	fix := newTestServices()
	worker := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	claimed, err := fix.ownership.ClaimLead(actorCtx(worker.ID, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: worker.ID,
		Reason:   "picking up",
	})
	if err != nil {
		t.Fatalf("ClaimLead failed: %v", err)
	}
	if claimed.OwnerID == nil || *claimed.OwnerID != worker.ID {
		t.Errorf("expected owner %d, got %v", worker.ID, claimed.OwnerID)
	}

	entries := fix.leads.entriesFor(rec.ID)
	if len(entries) != 1 || entries[0].Action != lead.ActionClaim {
		t.Fatalf("expected one claim entry, got %+v", entries)
	}
	if entries[0].ToOwnerID == nil || *entries[0].ToOwnerID != worker.ID {
		t.Error("claim entry should record the new owner")
	}
	if !strings.Contains(entries[0].ChangeData, "assignment") {
		t.Errorf("claim entry should carry the assignment descriptor, got %s", entries[0].ChangeData)
	}
}

func TestClaimLeadAlreadyOwned(t *testing.T) {
	fix := newTestServices()
	worker := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})
	other := int64(99)
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new", OwnerID: &other})

	_, err := fix.ownership.ClaimLead(actorCtx(worker.ID, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: worker.ID,
	})
	if !primary.IsOwnerConflict(err) {
		t.Errorf("expected OwnerConflict, got %v", err)
	}
	if len(fix.leads.entriesFor(rec.ID)) != 0 {
		t.Error("failed claim must write no audit entries")
	}
}

func TestClaimLeadForAnotherWorker(t *testing.T) {
	fix := newTestServices()
	worker := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	// A peer cannot claim on someone else's behalf.
	_, err := fix.ownership.ClaimLead(actorCtx(worker.ID+1, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: worker.ID,
	})
	if !primary.IsPermissionDenied(err) {
		t.Errorf("expected PermissionDenied, got %v", err)
	}

	// A manager can.
	_, err = fix.ownership.ClaimLead(actorCtx(50, config.RoleManager), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: worker.ID,
	})
	if err != nil {
		t.Errorf("manager claim on behalf failed: %v", err)
	}
}

func TestClaimLeadInactiveWorker(t *testing.T) {
	fix := newTestServices()
	worker := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: false})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	_, err := fix.ownership.ClaimLead(actorCtx(worker.ID, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: worker.ID,
	})
	if !primary.IsPermissionDenied(err) {
		t.Errorf("expected PermissionDenied for inactive worker, got %v", err)
	}
}

func TestClaimLeadNotFound(t *testing.T) {
	fix := newTestServices()
	worker := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})

	_, err := fix.ownership.ClaimLead(actorCtx(worker.ID, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   404,
		WorkerID: worker.ID,
	})
	if !primary.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestClaimLeadUnknownWorker(t *testing.T) {
	fix := newTestServices()
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	_, err := fix.ownership.ClaimLead(actorCtx(7, config.RoleTelecaller), primary.ClaimLeadRequest{
		LeadID:   rec.ID,
		WorkerID: 7,
	})
	if !primary.IsNotFound(err) {
		t.Errorf("expected NotFound for unknown worker, got %v", err)
	}
}

// ============================================================================
// ReassignLead Tests
// ============================================================================

func TestReassignLead(t *testing.T) {
	fix := newTestServices()
	from := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})
	to := fix.workers.seed(&secondary.WorkerRecord{Name: "Ravi", Role: config.RoleTelecaller, Active: true})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "active", OwnerID: &from.ID})

	moved, err := fix.ownership.ReassignLead(actorCtx(9, config.RoleManager), primary.ReassignLeadRequest{
		LeadID:     rec.ID,
		ToWorkerID: to.ID,
		Reason:     "load balancing",
	})
	if err != nil {
		t.Fatalf("ReassignLead failed: %v", err)
	}
	if moved.OwnerID == nil || *moved.OwnerID != to.ID {
		t.Errorf("expected owner %d, got %v", to.ID, moved.OwnerID)
	}

	entries := fix.leads.entriesFor(rec.ID)
	if len(entries) != 1 || entries[0].Action != lead.ActionReassignment {
		t.Fatalf("expected one reassignment entry, got %+v", entries)
	}
	if entries[0].FromOwnerID == nil || *entries[0].FromOwnerID != from.ID {
		t.Error("reassignment entry should record the previous owner")
	}
}

func TestReassignLeadRequiresManager(t *testing.T) {
	fix := newTestServices()
	to := fix.workers.seed(&secondary.WorkerRecord{Name: "Ravi", Role: config.RoleTelecaller, Active: true})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	_, err := fix.ownership.ReassignLead(actorCtx(to.ID, config.RoleTelecaller), primary.ReassignLeadRequest{
		LeadID:     rec.ID,
		ToWorkerID: to.ID,
	})
	if !primary.IsPermissionDenied(err) {
		t.Errorf("expected PermissionDenied, got %v", err)
	}
}

func TestReassignLeadInactiveTarget(t *testing.T) {
	fix := newTestServices()
	to := fix.workers.seed(&secondary.WorkerRecord{Name: "Ravi", Role: config.RoleTelecaller, Active: false})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "new"})

	_, err := fix.ownership.ReassignLead(actorCtx(9, config.RoleManager), primary.ReassignLeadRequest{
		LeadID:     rec.ID,
		ToWorkerID: to.ID,
	})
	if !primary.IsValidation(err) {
		t.Errorf("expected ValidationError for inactive target, got %v", err)
	}
}

// ============================================================================
// ReleaseLead Tests
// ============================================================================

func TestReleaseLead(t *testing.T) {
	fix := newTestServices()
	owner := fix.workers.seed(&secondary.WorkerRecord{Name: "Asha", Role: config.RoleTelecaller, Active: true})
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "active", OwnerID: &owner.ID})

	released, err := fix.ownership.ReleaseLead(actorCtx(owner.ID, config.RoleTelecaller), primary.ReleaseLeadRequest{
		LeadID: rec.ID,
		Reason: "going on leave",
	})
	if err != nil {
		t.Fatalf("ReleaseLead failed: %v", err)
	}
	if released.OwnerID != nil {
		t.Error("released lead should be unclaimed")
	}
	if released.Status != string(lead.StatusNew) {
		t.Errorf("release must reset status to new, got %q", released.Status)
	}

	entries := fix.leads.entriesFor(rec.ID)
	if len(entries) != 1 || entries[0].Action != lead.ActionRelease {
		t.Fatalf("expected one release entry, got %+v", entries)
	}
	if entries[0].PreviousStatus != "active" || entries[0].NewStatus != string(lead.StatusNew) {
		t.Errorf("release entry should record the status reset, got %s→%s",
			entries[0].PreviousStatus, entries[0].NewStatus)
	}
}

func TestReleaseLeadNotOwner(t *testing.T) {
	fix := newTestServices()
	owner := int64(1)
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "active", OwnerID: &owner})

	_, err := fix.ownership.ReleaseLead(actorCtx(2, config.RoleTelecaller), primary.ReleaseLeadRequest{LeadID: rec.ID})
	if !primary.IsPermissionDenied(err) {
		t.Errorf("expected PermissionDenied, got %v", err)
	}

	// A manager may release any lead.
	if _, err := fix.ownership.ReleaseLead(actorCtx(9, config.RoleManager), primary.ReleaseLeadRequest{LeadID: rec.ID}); err != nil {
		t.Errorf("manager release failed: %v", err)
	}
}

// ============================================================================
// DestroyLead Tests
// ============================================================================

func TestDestroyLead(t *testing.T) {
	fix := newTestServices()
	ctx := actorCtx(1, config.RoleTelecaller)
	fix.workers.seed(&secondary.WorkerRecord{ID: 1, Name: "Asha", Role: config.RoleTelecaller, Active: true})

	resp, err := fix.lead.CreateLead(ctx, primary.CreateLeadRequest{Name: "Arjun Bhat", Position: "Sales Executive"})
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if _, err := fix.ownership.ClaimLead(ctx, primary.ClaimLeadRequest{LeadID: resp.LeadID, WorkerID: 1}); err != nil {
		t.Fatalf("ClaimLead failed: %v", err)
	}

	if err := fix.ownership.DestroyLead(ctx, primary.DestroyLeadRequest{
		LeadID: resp.LeadID,
		Reason: "duplicate record",
	}); err != nil {
		t.Fatalf("DestroyLead failed: %v", err)
	}

	// The lead is gone.
	if _, err := fix.lead.GetLead(ctx, resp.LeadID); !primary.IsNotFound(err) {
		t.Errorf("expected NotFound after destroy, got %v", err)
	}

	// Exactly one terminal entry survives, carrying the snapshot.
	entries := fix.leads.entriesFor(resp.LeadID)
	if len(entries) != 1 {
		t.Fatalf("expected only the terminal entry, got %d", len(entries))
	}
	if entries[0].Action != lead.ActionDestroy {
		t.Errorf("expected destroy action, got %q", entries[0].Action)
	}
	if !strings.Contains(entries[0].ChangeData, "destroyed") ||
		!strings.Contains(entries[0].ChangeData, "Arjun Bhat") {
		t.Errorf("terminal entry should snapshot the lead, got %s", entries[0].ChangeData)
	}
}

func TestDestroyLeadNotOwner(t *testing.T) {
	fix := newTestServices()
	owner := int64(1)
	rec := fix.leads.seed(&secondary.LeadRecord{Name: "Kiran", Status: "active", OwnerID: &owner})

	err := fix.ownership.DestroyLead(actorCtx(2, config.RoleTelecaller), primary.DestroyLeadRequest{LeadID: rec.ID})
	if !primary.IsPermissionDenied(err) {
		t.Errorf("expected PermissionDenied, got %v", err)
	}

	if err := fix.ownership.DestroyLead(actorCtx(9, config.RoleManager), primary.DestroyLeadRequest{LeadID: rec.ID}); err != nil {
		t.Errorf("manager destroy failed: %v", err)
	}
}
