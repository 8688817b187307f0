package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh HRM installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). If repository code references a column that
// doesn't exist here, tests fail immediately with "no such column" instead of
// drifting until production.
//
// Note on audit_entries.lead_id: the column is nullable with ON DELETE SET
// NULL. Destroying a lead removes its prior history inside the destroy
// transaction; the terminal destroy entry survives with the lead snapshot in
// change_data.
const SchemaSQL = `
-- Workers (staff accounts grouped into role pools)
CREATE TABLE IF NOT EXISTS workers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('telecaller', 'hr', 'sales', 'manager')),
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Leads (the workflow entity; owner_id NULL means unclaimed)
CREATE TABLE IF NOT EXISTS leads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	phone TEXT,
	email TEXT,
	address TEXT,
	source TEXT,
	position TEXT,
	notes TEXT,
	expected_salary INTEGER,
	interview_at TEXT,
	status TEXT NOT NULL DEFAULT 'new',
	owner_id INTEGER REFERENCES workers(id),
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit entries (append-only; seq gives a stable total order per lead even
-- for two entries written in the same transaction)
CREATE TABLE IF NOT EXISTS audit_entries (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	lead_id INTEGER REFERENCES leads(id) ON DELETE SET NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'claim', 'reassignment', 'release', 'update', 'handoff', 'destroy')),
	from_owner_id INTEGER,
	to_owner_id INTEGER,
	previous_status TEXT,
	new_status TEXT,
	reason TEXT,
	change_data TEXT,
	actor_id INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_workers_role ON workers(role, active, id);
CREATE INDEX IF NOT EXISTS idx_leads_owner ON leads(owner_id);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_audit_lead ON audit_entries(lead_id, seq);
`

// GetSchemaSQL returns the canonical schema for tests and tooling.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables and indexes if they don't exist.
// This function is idempotent.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
