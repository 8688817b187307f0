package app

import (
	"context"
	"sort"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ctxutil"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/hub"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.LeadRepository   = (*mockLeadRepository)(nil)
	_ secondary.WorkerRepository = (*mockWorkerRepository)(nil)
	_ secondary.AuditRepository  = (*mockAuditRepository)(nil)
)

// mockLeadRepository implements secondary.LeadRepository for testing. It
// mirrors the transactional contracts of the sqlite adapter: the conditional
// claim write, entry back-filling, and the destroy history rewrite.
type mockLeadRepository struct {
	leads   map[int64]*secondary.LeadRecord
	entries []*secondary.AuditRecord
	nextID  int64
	nextSeq int64

	createErr  error
	getErr     error
	listErr    error
	claimErr   error
	applyErr   error
	destroyErr error
}

func newMockLeadRepository() *mockLeadRepository {
	return &mockLeadRepository{
		leads:   make(map[int64]*secondary.LeadRecord),
		nextID:  1,
		nextSeq: 1,
	}
}

func (m *mockLeadRepository) append(entry *secondary.AuditRecord) {
	entry.Seq = m.nextSeq
	m.nextSeq++
	m.entries = append(m.entries, entry)
}

// seed stores a lead directly, bypassing the audit trail.
func (m *mockLeadRepository) seed(lead *secondary.LeadRecord) *secondary.LeadRecord {
	if lead.ID == 0 {
		lead.ID = m.nextID
	}
	if lead.ID >= m.nextID {
		m.nextID = lead.ID + 1
	}
	m.leads[lead.ID] = lead
	return lead
}

func (m *mockLeadRepository) entriesFor(leadID int64) []*secondary.AuditRecord {
	var result []*secondary.AuditRecord
	for _, e := range m.entries {
		if e.LeadID == leadID {
			result = append(result, e)
		}
	}
	return result
}

func (m *mockLeadRepository) Create(ctx context.Context, lead *secondary.LeadRecord, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	lead.ID = m.nextID
	m.nextID++
	m.leads[lead.ID] = lead

	entry.LeadID = lead.ID
	entry.NewStatus = lead.Status
	m.append(entry)
	return lead, nil
}

func (m *mockLeadRepository) GetByID(ctx context.Context, id int64) (*secondary.LeadRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if lead, ok := m.leads[id]; ok {
		copied := *lead
		return &copied, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockLeadRepository) List(ctx context.Context, filters secondary.LeadFilters) ([]*secondary.LeadRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]int64, 0, len(m.leads))
	for id := range m.leads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []*secondary.LeadRecord
	for _, id := range ids {
		lead := m.leads[id]
		if filters.Status != "" && lead.Status != filters.Status {
			continue
		}
		if filters.OwnerID != 0 && (lead.OwnerID == nil || *lead.OwnerID != filters.OwnerID) {
			continue
		}
		if filters.Unclaimed && lead.OwnerID != nil {
			continue
		}
		result = append(result, lead)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockLeadRepository) Claim(ctx context.Context, leadID, workerID int64, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	lead, ok := m.leads[leadID]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	if lead.OwnerID != nil {
		return nil, secondary.ErrOwnerConflict
	}
	lead.OwnerID = &workerID

	entry.LeadID = leadID
	entry.PreviousStatus = lead.Status
	entry.NewStatus = lead.Status
	m.append(entry)
	return lead, nil
}

func (m *mockLeadRepository) Reassign(ctx context.Context, leadID, toWorkerID int64, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	lead, ok := m.leads[leadID]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	entry.LeadID = leadID
	entry.FromOwnerID = lead.OwnerID
	entry.PreviousStatus = lead.Status
	entry.NewStatus = lead.Status
	m.append(entry)

	lead.OwnerID = &toWorkerID
	return lead, nil
}

func (m *mockLeadRepository) Release(ctx context.Context, leadID int64, resetStatus string, entry *secondary.AuditRecord) (*secondary.LeadRecord, error) {
	lead, ok := m.leads[leadID]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	entry.LeadID = leadID
	entry.FromOwnerID = lead.OwnerID
	entry.PreviousStatus = lead.Status
	entry.NewStatus = resetStatus
	m.append(entry)

	lead.OwnerID = nil
	lead.Status = resetStatus
	return lead, nil
}

func (m *mockLeadRepository) ApplyUpdate(ctx context.Context, plan *secondary.UpdatePlan) (*secondary.LeadRecord, error) {
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	lead, ok := m.leads[plan.LeadID]
	if !ok {
		return nil, secondary.ErrNotFound
	}

	applyColumns(lead, plan.Columns)
	if plan.Entry != nil {
		m.append(plan.Entry)
	}

	if plan.Handoff != nil {
		lead.OwnerID = &plan.Handoff.ToWorkerID
		lead.Status = plan.Handoff.Status
		if plan.Handoff.Entry != nil {
			m.append(plan.Handoff.Entry)
		}
	}
	return lead, nil
}

func (m *mockLeadRepository) Destroy(ctx context.Context, leadID int64, entry *secondary.AuditRecord) error {
	if m.destroyErr != nil {
		return m.destroyErr
	}
	if _, ok := m.leads[leadID]; !ok {
		return secondary.ErrNotFound
	}

	entry.LeadID = leadID
	m.append(entry)

	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.LeadID != leadID || e.Seq == entry.Seq {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	delete(m.leads, leadID)
	return nil
}

func applyColumns(lead *secondary.LeadRecord, columns map[string]any) {
	for column, value := range columns {
		switch column {
		case "status":
			lead.Status = value.(string)
		case "notes":
			lead.Notes = value.(string)
		case "source":
			lead.Source = value.(string)
		case "position":
			lead.Position = value.(string)
		case "name":
			lead.Name = value.(string)
		case "phone":
			lead.Phone = value.(string)
		case "email":
			lead.Email = value.(string)
		case "address":
			lead.Address = value.(string)
		case "expected_salary":
			lead.ExpectedSalary = value.(int64)
		case "interview_at":
			if value != nil {
				lead.InterviewAt = value.(string)
			} else {
				lead.InterviewAt = ""
			}
		}
	}
}

// mockWorkerRepository implements secondary.WorkerRepository for testing.
type mockWorkerRepository struct {
	workers map[int64]*secondary.WorkerRecord
	nextID  int64

	getErr  error
	listErr error
}

func newMockWorkerRepository() *mockWorkerRepository {
	return &mockWorkerRepository{
		workers: make(map[int64]*secondary.WorkerRecord),
		nextID:  1,
	}
}

func (m *mockWorkerRepository) seed(worker *secondary.WorkerRecord) *secondary.WorkerRecord {
	if worker.ID == 0 {
		worker.ID = m.nextID
	}
	if worker.ID >= m.nextID {
		m.nextID = worker.ID + 1
	}
	m.workers[worker.ID] = worker
	return worker
}

func (m *mockWorkerRepository) Create(ctx context.Context, worker *secondary.WorkerRecord) (*secondary.WorkerRecord, error) {
	worker.ID = m.nextID
	m.nextID++
	m.workers[worker.ID] = worker
	return worker, nil
}

func (m *mockWorkerRepository) GetByID(ctx context.Context, id int64) (*secondary.WorkerRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if worker, ok := m.workers[id]; ok {
		return worker, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockWorkerRepository) List(ctx context.Context, filters secondary.WorkerFilters) ([]*secondary.WorkerRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]int64, 0, len(m.workers))
	for id := range m.workers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []*secondary.WorkerRecord
	for _, id := range ids {
		worker := m.workers[id]
		if filters.Role != "" && worker.Role != filters.Role {
			continue
		}
		if filters.ActiveOnly && !worker.Active {
			continue
		}
		result = append(result, worker)
	}
	return result, nil
}

func (m *mockWorkerRepository) FirstActiveByRole(ctx context.Context, role string) (*secondary.WorkerRecord, error) {
	workers, err := m.List(ctx, secondary.WorkerFilters{Role: role, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, secondary.ErrNotFound
	}
	return workers[0], nil
}

func (m *mockWorkerRepository) SetActive(ctx context.Context, id int64, active bool) error {
	worker, ok := m.workers[id]
	if !ok {
		return secondary.ErrNotFound
	}
	worker.Active = active
	return nil
}

// mockAuditRepository reads the trail held by a mockLeadRepository, the same
// way the sqlite audit repository reads entries written by lead transactions.
type mockAuditRepository struct {
	store   *mockLeadRepository
	histErr error
}

func newMockAuditRepository(store *mockLeadRepository) *mockAuditRepository {
	return &mockAuditRepository{store: store}
}

func (m *mockAuditRepository) HistoryByLead(ctx context.Context, leadID int64) ([]*secondary.AuditRecord, error) {
	if m.histErr != nil {
		return nil, m.histErr
	}
	entries := m.store.entriesFor(leadID)
	// newest first
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq > entries[j].Seq })
	return entries, nil
}

func (m *mockAuditRepository) EntriesAfter(ctx context.Context, afterSeq int64) ([]*secondary.AuditRecord, error) {
	var result []*secondary.AuditRecord
	for _, e := range m.store.entries {
		if e.Seq > afterSeq {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}

// actorCtx returns a context carrying the given actor identity.
func actorCtx(id int64, role string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: id, Role: role})
}

// newTestServices wires services over fresh mocks for one test.
type testFixture struct {
	leads     *mockLeadRepository
	workers   *mockWorkerRepository
	audits    *mockAuditRepository
	events    *hub.Hub
	lead      *LeadServiceImpl
	ownership *OwnershipServiceImpl
	worker    *WorkerServiceImpl
}

func newTestServices() *testFixture {
	leads := newMockLeadRepository()
	workers := newMockWorkerRepository()
	audits := newMockAuditRepository(leads)
	events := hub.New()
	return &testFixture{
		leads:     leads,
		workers:   workers,
		audits:    audits,
		events:    events,
		lead:      NewLeadService(leads, workers, audits, events),
		ownership: NewOwnershipService(leads, workers, events),
		worker:    NewWorkerService(workers),
	}
}
