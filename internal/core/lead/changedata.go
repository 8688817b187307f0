package lead

import "encoding/json"

// Change data builders. Every audit entry carries a structured JSON payload:
// either an assignment descriptor (ownership operations) or the list of
// changed fields (updates). All builders are pure.

type assignment struct {
	From *int64 `json:"from"`
	To   *int64 `json:"to"`
}

// AssignmentChangeData renders the assignment descriptor for claim,
// reassignment and release entries.
func AssignmentChangeData(from, to *int64) string {
	data, _ := json.Marshal(map[string]any{
		"assignment": assignment{From: from, To: to},
	})
	return string(data)
}

// HandoffChangeData renders the descriptor for an automatic hand-off entry.
func HandoffChangeData(handoffType string, from, to *int64) string {
	data, _ := json.Marshal(map[string]any{
		"handoff_type": handoffType,
		"assignment":   assignment{From: from, To: to},
	})
	return string(data)
}

// ChangedFieldsData renders the field diff for an update entry.
func ChangedFieldsData(changes []FieldChange) string {
	if changes == nil {
		changes = []FieldChange{}
	}
	data, _ := json.Marshal(map[string]any{
		"changed_fields": changes,
	})
	return string(data)
}

// DestroyChangeData renders the terminal entry payload: a snapshot of the
// lead being destroyed, so the record remains documented after deletion.
func DestroyChangeData(snapshot map[string]any) string {
	data, _ := json.Marshal(map[string]any{
		"destroyed": snapshot,
	})
	return string(data)
}
