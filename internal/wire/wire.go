// Package wire provides dependency injection for the HRM application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/adapters/sqlite"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/app"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/db"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/hub"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ports/primary"
)

var (
	leadService      primary.LeadService
	ownershipService primary.OwnershipService
	workerService    primary.WorkerService
	eventHub         *hub.Hub
	once             sync.Once
)

// LeadService returns the singleton LeadService instance.
func LeadService() primary.LeadService {
	once.Do(initServices)
	return leadService
}

// OwnershipService returns the singleton OwnershipService instance.
func OwnershipService() primary.OwnershipService {
	once.Do(initServices)
	return ownershipService
}

// WorkerService returns the singleton WorkerService instance.
func WorkerService() primary.WorkerService {
	once.Do(initServices)
	return workerService
}

// EventHub returns the singleton notification hub. Subscribers and publishers
// must share the one instance.
func EventHub() *hub.Hub {
	once.Do(initServices)
	return eventHub
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.Open(databasePath())
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	leadRepo := sqlite.NewLeadRepository(database)
	workerRepo := sqlite.NewWorkerRepository(database)
	auditRepo := sqlite.NewAuditRepository(database)

	eventHub = hub.New()

	// Create services (primary ports implementation)
	leadService = app.NewLeadService(leadRepo, workerRepo, auditRepo, eventHub)
	ownershipService = app.NewOwnershipService(leadRepo, workerRepo, eventHub)
	workerService = app.NewWorkerService(workerRepo)
}

// databasePath resolves the database location: config db_path when set,
// otherwise the default under the user's home.
func databasePath() string {
	cwd, err := os.Getwd()
	if err == nil {
		if cfg, err := config.LoadConfig(cwd); err == nil && cfg.DBPath != "" {
			return cfg.DBPath
		}
	}

	path, err := db.DefaultPath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}
	return path
}
