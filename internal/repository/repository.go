// Package repository declares the storage interfaces the rest of the
// application depends on. The sqlite subpackage provides the concrete
// implementation; services receive these interfaces so tests can substitute
// in-memory mocks and the storage engine can be swapped without touching
// business logic.
package repository

import (
	"context"

	"github.com/rusba/rusba-api/internal/model"
)

// ServiceRepository is the typed CRUD contract for service offerings.
//
// Update and Delete return apperror.ErrNotFound (wrapped) when no row matched
// the given id — callers translate that into a 404.
type ServiceRepository interface {
	GetAll(ctx context.Context) ([]model.Service, error)
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	Create(ctx context.Context, svc *model.Service) error
	Update(ctx context.Context, id int64, patch model.ServicePatch) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository is the typed CRUD contract for products.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id int64, patch model.ProductPatch) error
	Delete(ctx context.Context, id int64) error
}

// ClientRepository is the typed CRUD contract for client logos.
type ClientRepository interface {
	GetAll(ctx context.Context) ([]model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, id int64, patch model.ClientPatch) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository covers the two operations users ever need: the login lookup
// and the out-of-band seeding insert. Users are never updated or deleted
// through the API.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}
