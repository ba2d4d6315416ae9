package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
)

func TestClientCRUD(t *testing.T) {
	store := NewClientStore(newTestDB(t))

	c := &model.Client{Name: "Acme Corp", Logo: "/logos/acme.svg"}
	if err := store.Create(context.Background(), c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == 0 {
		t.Fatal("Create() did not set c.ID")
	}

	all, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 || all[0].Name != "Acme Corp" {
		t.Errorf("GetAll() = %+v, want the created client", all)
	}

	err = store.Update(context.Background(), c.ID, model.ClientPatch{Logo: strPtr("/logos/acme-v2.svg")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := store.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Name != "Acme Corp" {
		t.Errorf("Name changed to %q, want unchanged", found.Name)
	}
	if found.Logo != "/logos/acme-v2.svg" {
		t.Errorf("Logo = %q, want updated value", found.Logo)
	}

	if err := store.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(context.Background(), c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestClientUpdate_NotFound(t *testing.T) {
	store := NewClientStore(newTestDB(t))

	err := store.Update(context.Background(), 7, model.ClientPatch{Name: strPtr("nobody")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(7) error = %v, want ErrNotFound", err)
	}
}

func TestClientDelete_NotFound(t *testing.T) {
	store := NewClientStore(newTestDB(t))

	if err := store.Delete(context.Background(), 7); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(7) error = %v, want ErrNotFound", err)
	}
}
