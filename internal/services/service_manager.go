package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SR-Exam/scheduler-service/internal/events"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
	"github.com/SR-Exam/scheduler-service/internal/session"
	"github.com/SR-Exam/scheduler-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	remote    repositories.RemoteCatalog
	sess      *session.Session
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator

	authService    AuthService
	syncService    SyncService
	bookingService BookingService
	catalogService CatalogService
	reportService  ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewDefaultServiceManager wires every service over the shared dependencies.
func NewDefaultServiceManager(
	repo repositories.Repository,
	remote repositories.RemoteCatalog,
	sess *session.Session,
	publisher events.EventPublisher,
	logger *slog.Logger,
	bv *validator.BusinessValidator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		remote:    remote,
		sess:      sess,
		publisher: publisher,
		logger:    logger,
		validator: bv,
	}
}

// Initialize builds the service instances and verifies the store answers.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.remote, sm.sess, sm.validator, sm.logger)
	sm.syncService = NewSyncService(sm.repo, sm.remote, sm.publisher, sm.logger)
	sm.bookingService = NewBookingService(sm.repo, sm.publisher, sm.validator, sm.logger)
	sm.catalogService = NewCatalogService(sm.repo, sm.logger)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Sync() SyncService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.syncService
}

func (sm *serviceManager) Booking() BookingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.bookingService
}

func (sm *serviceManager) Catalog() CatalogService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.catalogService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

// Shutdown closes the event publisher. The repository is owned by its manager
// and closed there.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	return nil
}
