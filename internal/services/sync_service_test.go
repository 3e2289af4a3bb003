package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SR-Exam/scheduler-service/internal/events"
	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

func strPtr(s string) *string { return &s }

func testRemote() *fakeRemote {
	return &fakeRemote{
		users: []models.CatalogUser{
			{BNNumber: "BN001", NIM: "2440011111", Name: "Alice", Major: "CS", Role: models.RoleAssistant, Initial: strPtr("AL24")},
			{BNNumber: "BN002", NIM: "2440022222", Name: "Bob", Major: "IS", Role: models.RoleStudent},
		},
		rooms: []models.CatalogRoom{
			{RoomNumber: "724", RoomCapacity: 40, Campus: "Anggrek"},
		},
		subjects: []models.CatalogSubject{
			{SubjectCode: "COMP6100", SubjectName: "Software Engineering"},
		},
		enrollments: []models.CatalogEnrollment{
			{ClassCode: "BA01", NIM: "2440011111", SubjectCode: "COMP6100"},
		},
	}
}

func TestSyncUsersInsertsAndIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	remote := testRemote()
	svc := NewSyncService(repo, remote, nil, testLogger())
	ctx := context.Background()

	result, err := svc.SyncUsers(ctx)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if result.Fetched != 2 || result.Inserted != 2 || result.Updated != 0 {
		t.Errorf("unexpected first result: %+v", result)
	}

	result, err = svc.SyncUsers(ctx)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if result.Inserted != 0 || result.Updated != 0 || result.Skipped != 2 {
		t.Errorf("expected second sync to skip everything, got %+v", result)
	}
}

func TestSyncUsersAcceptsMultipleUsersWithoutNIM(t *testing.T) {
	repo := newFakeRepository()
	remote := &fakeRemote{
		users: []models.CatalogUser{
			{BNNumber: "BN010", Name: "Carol", Role: models.RoleExamCoordinator, Initial: strPtr("CR21")},
			{BNNumber: "BN011", Name: "Dave", Role: models.RoleSubjectDevelopment, Initial: strPtr("DV22")},
		},
	}
	svc := NewSyncService(repo, remote, nil, testLogger())

	result, err := svc.SyncUsers(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Errorf("expected both staff users inserted, got %+v", result)
	}
	for _, bn := range []string{"BN010", "BN011"} {
		user, ok := repo.users[bn]
		if !ok {
			t.Fatalf("expected %s to be stored", bn)
		}
		if user.NIM != nil {
			t.Errorf("expected %s to store a NULL nim, got %q", bn, *user.NIM)
		}
	}
}

func TestSyncUsersUpdatesCatalogFieldsButKeepsPassword(t *testing.T) {
	repo := newFakeRepository()
	remote := testRemote()
	svc := NewSyncService(repo, remote, nil, testLogger())
	ctx := context.Background()

	if _, err := svc.SyncUsers(ctx); err != nil {
		t.Fatalf("initial sync failed: %v", err)
	}

	// Simulate a locally set password, then a remote role change.
	repo.users["BN001"].Password = "local-hash"
	remote.users[0].Role = models.RoleExamCoordinator

	result, err := svc.SyncUsers(ctx)
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if result.Updated != 1 || result.Skipped != 1 {
		t.Errorf("expected 1 update and 1 skip, got %+v", result)
	}

	user := repo.users["BN001"]
	if user.Role != models.RoleExamCoordinator {
		t.Errorf("expected role update, got %q", user.Role)
	}
	if user.Password != "local-hash" {
		t.Errorf("expected password to survive sync, got %q", user.Password)
	}
}

func TestSyncRoomsIsInsertOnly(t *testing.T) {
	repo := newFakeRepository()
	remote := testRemote()
	svc := NewSyncService(repo, remote, nil, testLogger())
	ctx := context.Background()

	if _, err := svc.SyncRooms(ctx); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	// Remote capacity changes never reach an existing row.
	remote.rooms[0].RoomCapacity = 99

	result, err := svc.SyncRooms(ctx)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if result.Skipped != 1 || result.Inserted != 0 {
		t.Errorf("expected skip, got %+v", result)
	}
	if repo.rooms["724"].RoomCapacity != 40 {
		t.Errorf("expected capacity 40, got %d", repo.rooms["724"].RoomCapacity)
	}
}

func TestSyncEnrollmentsRequiresReferences(t *testing.T) {
	repo := newFakeRepository()
	remote := testRemote()
	svc := NewSyncService(repo, remote, nil, testLogger())
	ctx := context.Background()

	// Without users and subjects the store rejects the reference.
	_, err := svc.SyncEnrollments(ctx)
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}

	if _, err := svc.SyncUsers(ctx); err != nil {
		t.Fatalf("user sync failed: %v", err)
	}
	if _, err := svc.SyncSubjects(ctx); err != nil {
		t.Fatalf("subject sync failed: %v", err)
	}

	result, err := svc.SyncEnrollments(ctx)
	if err != nil {
		t.Fatalf("enrollment sync failed: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("expected 1 insert, got %+v", result)
	}
}

func TestSyncAllStopsAtFirstFailingTable(t *testing.T) {
	repo := newFakeRepository()
	remote := testRemote()
	remote.subjectsErr = repositories.ErrSourceUnavailable
	svc := NewSyncService(repo, remote, nil, testLogger())

	results, err := svc.SyncAll(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected users and rooms to complete, got %d results", len(results))
	}

	// Tables synced before the failure keep their rows.
	if len(repo.users) != 2 || len(repo.rooms) != 1 {
		t.Errorf("expected earlier tables to keep rows: users=%d rooms=%d", len(repo.users), len(repo.rooms))
	}
	if len(repo.enrollments) != 0 {
		t.Errorf("expected no enrollments after abort, got %d", len(repo.enrollments))
	}
}

func TestSyncAllPublishesCompletionEvent(t *testing.T) {
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewSyncService(repo, testRemote(), publisher, testLogger())

	if _, err := svc.SyncAll(context.Background()); err != nil {
		t.Fatalf("sync all failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	event := published[0]
	if event.Type != events.EventCatalogSynced {
		t.Errorf("expected %s, got %s", events.EventCatalogSynced, event.Type)
	}
	if event.Source != events.EventSource || event.Version != events.EventVersion {
		t.Errorf("unexpected envelope: %+v", event)
	}
}
