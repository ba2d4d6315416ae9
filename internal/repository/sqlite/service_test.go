package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
)

// newTestDB opens a fresh in-memory database for one test. ":memory:" lives
// only as long as the connection, so every test starts from empty tables and
// nothing touches disk.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestService(t *testing.T, store *ServiceStore, title string) *model.Service {
	t.Helper()
	svc := &model.Service{Title: title, Description: "a description", Icon: "cloud"}
	if err := store.Create(context.Background(), svc); err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

func strPtr(s string) *string { return &s }

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestServiceCreate(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	svc := &model.Service{
		Title:       "Web Development",
		Description: "We build websites",
		Icon:        "code",
	}
	if err := store.Create(context.Background(), svc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The store must fill in the assigned id (pointer argument).
	if svc.ID == 0 {
		t.Error("Create() did not set svc.ID")
	}
}

func TestServiceCreate_IDsAreUniqueAndStable(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	first := createTestService(t, store, "first")
	second := createTestService(t, store, "second")

	if first.ID == second.ID {
		t.Fatalf("Create() assigned duplicate id %d", first.ID)
	}

	// The id returned at creation must keep resolving to the same record.
	found, err := store.GetByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "first" {
		t.Errorf("GetByID(%d).Title = %q, want %q", first.ID, found.Title, "first")
	}
}

func TestServiceCreate_WithVideoURL(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	svc := &model.Service{
		Title:       "Hosting",
		Description: "desc",
		Icon:        "server",
		VideoURL:    strPtr("https://example.com/v.mp4"),
	}
	if err := store.Create(context.Background(), svc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := store.GetByID(context.Background(), svc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.VideoURL == nil || *found.VideoURL != "https://example.com/v.mp4" {
		t.Errorf("VideoURL = %v, want %q", found.VideoURL, "https://example.com/v.mp4")
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestServiceGetByID_NotFound(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	_, err := store.GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestServiceGetAll(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	// Empty table must return an empty slice, not nil — the handler encodes
	// it to JSON and the frontend expects [] rather than null.
	all, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if all == nil {
		t.Error("GetAll() on empty table returned nil, want empty slice")
	}

	createTestService(t, store, "one")
	createTestService(t, store, "two")

	all, err = store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll() returned %d services, want 2", len(all))
	}

	// No video was set — the NULL column must come back as nil.
	if all[0].VideoURL != nil {
		t.Errorf("VideoURL = %v, want nil for a NULL column", all[0].VideoURL)
	}
}

// =========================================================================
// UPDATE TESTS (coalesce law)
// =========================================================================

func TestServiceUpdate_PartialPatchKeepsOtherFields(t *testing.T) {
	store := NewServiceStore(newTestDB(t))
	svc := createTestService(t, store, "original title")

	// Patch only the title. Description and icon are nil → COALESCE must
	// keep the stored values.
	err := store.Update(context.Background(), svc.ID, model.ServicePatch{
		Title: strPtr("new title"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := store.GetByID(context.Background(), svc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "new title" {
		t.Errorf("Title = %q, want %q", found.Title, "new title")
	}
	if found.Description != svc.Description {
		t.Errorf("Description changed to %q, want unchanged %q", found.Description, svc.Description)
	}
	if found.Icon != svc.Icon {
		t.Errorf("Icon changed to %q, want unchanged %q", found.Icon, svc.Icon)
	}
}

func TestServiceUpdate_AllFields(t *testing.T) {
	store := NewServiceStore(newTestDB(t))
	svc := createTestService(t, store, "before")

	err := store.Update(context.Background(), svc.ID, model.ServicePatch{
		Title:       strPtr("after"),
		Description: strPtr("new description"),
		Icon:        strPtr("rocket"),
		VideoURL:    strPtr("https://example.com/demo.mp4"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, _ := store.GetByID(context.Background(), svc.ID)
	if found.Title != "after" || found.Description != "new description" || found.Icon != "rocket" {
		t.Errorf("Update() did not apply all fields: %+v", found)
	}
	if found.VideoURL == nil || *found.VideoURL != "https://example.com/demo.mp4" {
		t.Errorf("VideoURL = %v, want set", found.VideoURL)
	}
}

func TestServiceUpdate_NotFound(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	err := store.Update(context.Background(), 12345, model.ServicePatch{Title: strPtr("x")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(12345) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestServiceDelete(t *testing.T) {
	store := NewServiceStore(newTestDB(t))
	svc := createTestService(t, store, "doomed")

	if err := store.Delete(context.Background(), svc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Deletion is immediate and irreversible: the id must now be gone.
	_, err := store.GetByID(context.Background(), svc.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestServiceDelete_NotFound(t *testing.T) {
	store := NewServiceStore(newTestDB(t))

	err := store.Delete(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(999) error = %v, want ErrNotFound", err)
	}
}
