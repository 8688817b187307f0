package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

func TestAuditHistoryNewestFirst(t *testing.T) {
	database := openTestDB(t)
	leadRepo := NewLeadRepository(database)
	auditRepo := NewAuditRepository(database)
	ctx := context.Background()

	workerID := seedWorker(t, database, "Asha", "telecaller", true)
	leadID := seedLead(t, database, "Kiran", "new")

	_, err := leadRepo.Claim(ctx, leadID, workerID, &secondary.AuditRecord{
		Action: "claim", Reason: "picking up", ActorID: workerID,
	})
	require.NoError(t, err)

	entries, err := auditRepo.HistoryByLead(ctx, leadID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "claim", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
	assert.Greater(t, entries[0].Seq, entries[1].Seq)
	assert.Equal(t, "picking up", entries[0].Reason)
}

func TestAuditEntriesAfter(t *testing.T) {
	database := openTestDB(t)
	auditRepo := NewAuditRepository(database)
	ctx := context.Background()

	first := seedLead(t, database, "A", "new")
	second := seedLead(t, database, "B", "new")

	all, err := auditRepo.EntriesAfter(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].LeadID)
	assert.Equal(t, second, all[1].LeadID)

	tail, err := auditRepo.EntriesAfter(ctx, all[0].Seq)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, second, tail[0].LeadID)
}

func TestAuditHistoryEmpty(t *testing.T) {
	auditRepo := NewAuditRepository(openTestDB(t))

	entries, err := auditRepo.HistoryByLead(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
