package app

import (
	"context"
	"errors"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ctxutil"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/secondary"
)

// WorkerServiceImpl implements the primary.WorkerService interface.
type WorkerServiceImpl struct {
	workerRepo secondary.WorkerRepository
}

// NewWorkerService creates a new worker service.
func NewWorkerService(workerRepo secondary.WorkerRepository) *WorkerServiceImpl {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

// CreateWorker registers a new worker in a role pool. Manager only.
func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req primary.CreateWorkerRequest) (*primary.CreateWorkerResponse, error) {
	actor := ctxutil.ActorFromContext(ctx)
	if !config.IsElevated(actor.Role) {
		return nil, primary.PermissionDeniedError("managing workers requires the manager role")
	}

	if req.Name == "" {
		return nil, primary.ValidationErr("worker name must not be empty")
	}
	if !config.ValidRole(req.Role) {
		return nil, primary.ValidationErr("unknown role %q", req.Role)
	}

	record, err := s.workerRepo.Create(ctx, &secondary.WorkerRecord{
		Name:   req.Name,
		Role:   req.Role,
		Active: true,
	})
	if err != nil {
		return nil, primary.StoreFailureError(err, "create worker")
	}

	return &primary.CreateWorkerResponse{WorkerID: record.ID, Worker: recordToWorker(record)}, nil
}

// GetWorker retrieves a worker by ID.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, workerID int64) (*primary.Worker, error) {
	record, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, primary.NotFoundError("worker %d not found", workerID)
		}
		return nil, primary.StoreFailureError(err, "worker %d", workerID)
	}
	return recordToWorker(record), nil
}

// ListWorkers lists workers with optional filters.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, filters primary.WorkerFilters) ([]*primary.Worker, error) {
	records, err := s.workerRepo.List(ctx, secondary.WorkerFilters{
		Role:       filters.Role,
		ActiveOnly: filters.ActiveOnly,
	})
	if err != nil {
		return nil, primary.StoreFailureError(err, "list workers")
	}

	workers := make([]*primary.Worker, 0, len(records))
	for _, record := range records {
		workers = append(workers, recordToWorker(record))
	}
	return workers, nil
}

// SetWorkerActive activates or deactivates a worker. Manager only.
// Deactivation does not touch the worker's current leads; it only removes the
// worker from hand-off target resolution.
func (s *WorkerServiceImpl) SetWorkerActive(ctx context.Context, workerID int64, active bool) error {
	actor := ctxutil.ActorFromContext(ctx)
	if !config.IsElevated(actor.Role) {
		return primary.PermissionDeniedError("managing workers requires the manager role")
	}

	err := s.workerRepo.SetActive(ctx, workerID, active)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return primary.NotFoundError("worker %d not found", workerID)
		}
		return primary.StoreFailureError(err, "worker %d", workerID)
	}
	return nil
}

// Ensure WorkerServiceImpl implements the interface
var _ primary.WorkerService = (*WorkerServiceImpl)(nil)
