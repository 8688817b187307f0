// Package app contains the application layer - the service implementations
// that orchestrate the pure core, the repositories, and the notification hub.
package app

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// recordToLead maps a persistence record to the primary port entity.
func recordToLead(r *secondary.LeadRecord) *primary.Lead {
	return &primary.Lead{
		ID:             r.ID,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
		Source:         r.Source,
		Position:       r.Position,
		Notes:          r.Notes,
		ExpectedSalary: r.ExpectedSalary,
		InterviewAt:    r.InterviewAt,
		Status:         r.Status,
		OwnerID:        r.OwnerID,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// recordToWorker maps a persistence record to the primary port entity.
func recordToWorker(r *secondary.WorkerRecord) *primary.Worker {
	return &primary.Worker{
		ID:        r.ID,
		Name:      r.Name,
		Role:      r.Role,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// recordToAuditEntry maps a persistence record to the primary port entity,
// decoding the change data JSON.
func recordToAuditEntry(r *secondary.AuditRecord) *primary.AuditEntry {
	entry := &primary.AuditEntry{
		Seq:            r.Seq,
		LeadID:         r.LeadID,
		Action:         r.Action,
		FromOwnerID:    r.FromOwnerID,
		ToOwnerID:      r.ToOwnerID,
		PreviousStatus: r.PreviousStatus,
		NewStatus:      r.NewStatus,
		Reason:         r.Reason,
		ActorID:        r.ActorID,
		CreatedAt:      r.CreatedAt,
	}
	if r.ChangeData != "" {
		_ = json.Unmarshal([]byte(r.ChangeData), &entry.ChangeData)
	}
	return entry
}

// leadFieldValues renders a lead's updatable fields as the string map the
// field diff compares submitted values against.
func leadFieldValues(r *secondary.LeadRecord) map[string]string {
	salary := ""
	if r.ExpectedSalary != 0 {
		salary = strconv.FormatInt(r.ExpectedSalary, 10)
	}
	return map[string]string{
		"name":            r.Name,
		"phone":           r.Phone,
		"email":           r.Email,
		"address":         r.Address,
		"source":          r.Source,
		"position":        r.Position,
		"notes":           r.Notes,
		"expected_salary": salary,
		"interview_at":    r.InterviewAt,
		"status":          r.Status,
	}
}

// leadSnapshot renders a lead for the terminal destroy entry's change data.
func leadSnapshot(r *secondary.LeadRecord) map[string]any {
	snapshot := map[string]any{
		"id":     r.ID,
		"name":   r.Name,
		"status": r.Status,
	}
	if r.Phone != "" {
		snapshot["phone"] = r.Phone
	}
	if r.Email != "" {
		snapshot["email"] = r.Email
	}
	if r.Position != "" {
		snapshot["position"] = r.Position
	}
	if r.OwnerID != nil {
		snapshot["owner_id"] = *r.OwnerID
	}
	return snapshot
}

// translateLeadErr maps repository sentinels onto the typed primary errors.
// Anything unexpected is a StoreFailure; its transaction has rolled back.
func translateLeadErr(err error, leadID int64) error {
	switch {
	case errors.Is(err, secondary.ErrNotFound):
		return primary.NotFoundError("lead %d not found", leadID)
	case errors.Is(err, secondary.ErrOwnerConflict):
		return primary.OwnerConflictError("lead %d is already claimed", leadID)
	default:
		return primary.StoreFailureError(err, "lead %d", leadID)
	}
}
