package services

import (
	"context"
	"log/slog"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

// catalogService reads the locally cached catalog tables. It never reaches
// out to the remote; that is the sync engine's job.
type catalogService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) Users(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (s *catalogService) Rooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.repo.Room().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return rooms, nil
}

func (s *catalogService) Subjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.repo.Subject().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return subjects, nil
}

func (s *catalogService) Shifts(ctx context.Context) ([]*models.Shift, error) {
	shifts, err := s.repo.Shift().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return shifts, nil
}

func (s *catalogService) Enrollments(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollment().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return enrollments, nil
}
