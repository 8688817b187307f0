package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/db"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// openTestDB opens a fresh file-backed database for one test. File-backed,
// not :memory:, because the claim race test needs real WAL locking across
// goroutines.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func seedWorker(t *testing.T, database *sql.DB, name, role string, active bool) int64 {
	t.Helper()
	repo := NewWorkerRepository(database)
	record, err := repo.Create(context.Background(), &secondary.WorkerRecord{Name: name, Role: role})
	require.NoError(t, err)
	if !active {
		require.NoError(t, repo.SetActive(context.Background(), record.ID, false))
	}
	return record.ID
}

func seedLead(t *testing.T, database *sql.DB, name, status string) int64 {
	t.Helper()
	repo := NewLeadRepository(database)
	record, err := repo.Create(context.Background(), &secondary.LeadRecord{
		Name:   name,
		Status: status,
	}, &secondary.AuditRecord{Action: "create", ActorID: 1})
	require.NoError(t, err)
	return record.ID
}
