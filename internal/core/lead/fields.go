package lead

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// fieldKind describes how a submitted string value is parsed.
type fieldKind int

const (
	kindText fieldKind = iota
	kindInteger
	kindDatetime
)

// fieldSpec describes one updatable lead field.
type fieldSpec struct {
	column   string
	kind     fieldKind
	elevated bool // only managers may submit this field
}

// updatableFields is the catalog of fields accepted by UpdateLead.
// Workflow metadata is open to every actor; identity-like fields
// (name, contact, schedule) require the manager role.
var updatableFields = map[string]fieldSpec{
	"status":          {column: "status", kind: kindText},
	"notes":           {column: "notes", kind: kindText},
	"source":          {column: "source", kind: kindText},
	"position":        {column: "position", kind: kindText},
	"expected_salary": {column: "expected_salary", kind: kindInteger},

	"name":         {column: "name", kind: kindText, elevated: true},
	"phone":        {column: "phone", kind: kindText, elevated: true},
	"email":        {column: "email", kind: kindText, elevated: true},
	"address":      {column: "address", kind: kindText, elevated: true},
	"interview_at": {column: "interview_at", kind: kindDatetime, elevated: true},
}

// ValidationError describes a malformed or disallowed submitted field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// FieldChange records one non-status field changing value.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// StatusChange records the status transition part of an update.
type StatusChange struct {
	From Status
	To   Status
}

// Diff is the result of comparing submitted fields against stored values.
// Empty() means the update is a no-op and must produce no audit entry.
type Diff struct {
	Changes      []FieldChange  // changed non-status fields, sorted by name
	Columns      map[string]any // column name -> parsed new value
	StatusChange *StatusChange
}

// Empty reports whether nothing actually changed.
func (d *Diff) Empty() bool {
	return len(d.Changes) == 0 && d.StatusChange == nil
}

// DiffFields validates submitted fields against the catalog and computes the
// field-level diff. current maps field names to their stored string
// rendering. Submitting a restricted field without the manager role is an
// error, not silently ignored.
func DiffFields(current, submitted map[string]string, elevated bool) (*Diff, error) {
	diff := &Diff{Columns: map[string]any{}}

	names := make([]string, 0, len(submitted))
	for name := range submitted {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := submitted[name]

		spec, ok := updatableFields[name]
		if !ok {
			return nil, &ValidationError{Field: name, Message: "unknown field"}
		}
		if spec.elevated && !elevated {
			return nil, &ValidationError{Field: name, Message: "requires the manager role"}
		}

		value, err := parseField(name, spec, raw)
		if err != nil {
			return nil, err
		}

		if raw == current[name] {
			continue
		}

		if name == "status" {
			if raw == "" {
				return nil, &ValidationError{Field: name, Message: "must not be empty"}
			}
			diff.StatusChange = &StatusChange{
				From: Status(current[name]),
				To:   Status(raw),
			}
		} else {
			diff.Changes = append(diff.Changes, FieldChange{
				Field: name,
				Old:   current[name],
				New:   raw,
			})
		}
		diff.Columns[spec.column] = value
	}

	return diff, nil
}

func parseField(name string, spec fieldSpec, raw string) (any, error) {
	switch spec.kind {
	case kindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: name, Message: fmt.Sprintf("%q is not a number", raw)}
		}
		return n, nil
	case kindDatetime:
		if raw == "" {
			return nil, nil
		}
		if _, err := time.Parse(time.RFC3339, raw); err != nil {
			return nil, &ValidationError{Field: name, Message: fmt.Sprintf("%q is not an RFC3339 timestamp", raw)}
		}
		return raw, nil
	default:
		return raw, nil
	}
}
