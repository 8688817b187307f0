package primary

import "context"

// WorkerService defines the primary port for worker pool management.
type WorkerService interface {
	// CreateWorker registers a new worker in a role pool.
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (*CreateWorkerResponse, error)

	// GetWorker retrieves a worker by ID.
	GetWorker(ctx context.Context, workerID int64) (*Worker, error)

	// ListWorkers lists workers with optional filters.
	ListWorkers(ctx context.Context, filters WorkerFilters) ([]*Worker, error)

	// SetWorkerActive activates or deactivates a worker. Inactive workers
	// are skipped by hand-off target resolution.
	SetWorkerActive(ctx context.Context, workerID int64, active bool) error
}

// CreateWorkerRequest contains parameters for creating a worker.
type CreateWorkerRequest struct {
	Name string
	Role string
}

// CreateWorkerResponse contains the result of creating a worker.
type CreateWorkerResponse struct {
	WorkerID int64
	Worker   *Worker
}

// WorkerFilters contains filter options for querying workers.
type WorkerFilters struct {
	Role       string
	ActiveOnly bool
}

// Worker represents a worker entity at the port boundary.
type Worker struct {
	ID        int64
	Name      string
	Role      string
	Active    bool
	CreatedAt string
	UpdatedAt string
}
