package services

import (
	"context"
	"log/slog"

	"github.com/SR-Exam/scheduler-service/internal/events"
	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

type syncService struct {
	repo      repositories.Repository
	remote    repositories.RemoteCatalog
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewSyncService(repo repositories.Repository, remote repositories.RemoteCatalog, publisher events.EventPublisher, logger *slog.Logger) SyncService {
	return &syncService{
		repo:      repo,
		remote:    remote,
		publisher: publisher,
		logger:    logger,
	}
}

// SyncUsers reconciles the user table. Existing rows get their remote-owned
// fields (name, role, initial) refreshed; the local password column is never
// touched so credentials survive every sync.
func (s *syncService) SyncUsers(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("Syncing users from remote catalog")

	records, err := s.remote.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Table: "users", Fetched: len(records)}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, record := range records {
			existing, err := tx.User().GetByBNNumber(ctx, record.BNNumber)
			if err != nil {
				return err
			}

			if existing == nil {
				user := &models.User{
					BNNumber: record.BNNumber,
					NIM:      nullableNIM(record.NIM),
					Name:     record.Name,
					Major:    record.Major,
					Role:     record.Role,
					Initial:  record.Initial,
				}
				if err := tx.User().Create(ctx, user); err != nil {
					return err
				}
				result.Inserted++
				continue
			}

			if userCatalogFieldsEqual(existing, record) {
				result.Skipped++
				continue
			}

			existing.Name = record.Name
			existing.Role = record.Role
			existing.Initial = record.Initial
			if err := tx.User().UpdateCatalogFields(ctx, existing); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("User sync completed",
		"fetched", result.Fetched, "inserted", result.Inserted,
		"updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

// SyncRooms is insert-only: a room number seen once is never modified again,
// even when the remote changes its capacity or campus.
func (s *syncService) SyncRooms(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("Syncing rooms from remote catalog")

	records, err := s.remote.FetchRooms(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Table: "room", Fetched: len(records)}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, record := range records {
			existing, err := tx.Room().GetByNumber(ctx, record.RoomNumber)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			room := &models.Room{
				RoomNumber:   record.RoomNumber,
				RoomCapacity: record.RoomCapacity,
				Campus:       record.Campus,
			}
			if err := tx.Room().Create(ctx, room); err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Room sync completed",
		"fetched", result.Fetched, "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

func (s *syncService) SyncSubjects(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("Syncing subjects from remote catalog")

	records, err := s.remote.FetchSubjects(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Table: "subject", Fetched: len(records)}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, record := range records {
			existing, err := tx.Subject().GetByCode(ctx, record.SubjectCode)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			subject := &models.Subject{
				SubjectCode: record.SubjectCode,
				SubjectName: record.SubjectName,
			}
			if err := tx.Subject().Create(ctx, subject); err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Subject sync completed",
		"fetched", result.Fetched, "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// SyncEnrollments must run after users and subjects: the store enforces both
// references and a dangling one fails the whole pass.
func (s *syncService) SyncEnrollments(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("Syncing enrollments from remote catalog")

	records, err := s.remote.FetchEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Table: "enrollment", Fetched: len(records)}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, record := range records {
			existing, err := tx.Enrollment().GetByClassCode(ctx, record.ClassCode)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			enrollment := &models.Enrollment{
				ClassCode:   record.ClassCode,
				NIM:         record.NIM,
				SubjectCode: record.SubjectCode,
			}
			if err := tx.Enrollment().Create(ctx, enrollment); err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Enrollment sync completed",
		"fetched", result.Fetched, "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// SyncAll runs the tables in dependency order. The first failing table stops
// the pass; tables already synced keep their rows.
func (s *syncService) SyncAll(ctx context.Context) ([]*SyncResult, error) {
	steps := []func(context.Context) (*SyncResult, error){
		s.SyncUsers,
		s.SyncRooms,
		s.SyncSubjects,
		s.SyncEnrollments,
	}

	var results []*SyncResult
	for _, step := range steps {
		result, err := step(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	s.publishSyncCompleted(ctx, results)
	return results, nil
}

func (s *syncService) publishSyncCompleted(ctx context.Context, results []*SyncResult) {
	if s.publisher == nil {
		return
	}

	event := events.NewEvent(events.EventCatalogSynced, map[string]interface{}{
		"results": results,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish sync event", "error", err)
	}
}

// nullableNIM stores an absent student number as NULL. Staff roles carry no
// nim; storing them all as empty strings would collide under the unique
// index.
func nullableNIM(nim string) *string {
	if nim == "" {
		return nil
	}
	return &nim
}

func userCatalogFieldsEqual(existing *models.User, record models.CatalogUser) bool {
	if existing.Name != record.Name || existing.Role != record.Role {
		return false
	}
	switch {
	case existing.Initial == nil && record.Initial == nil:
		return true
	case existing.Initial == nil || record.Initial == nil:
		return false
	default:
		return *existing.Initial == *record.Initial
	}
}
