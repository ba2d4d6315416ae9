package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/repository"
)

// ContentService is the business layer for the three content entities
// (services, products, clients). The rules here are thin on purpose: presence
// of the required text fields at creation, and nothing else — the content is
// marketing copy, and what counts as "valid" copy is the admin's call.
//
// Updates are partial: only the fields present in the patch change (the
// repository's COALESCE handles the merge), and the updated row is re-read so
// the caller gets the merged result back.
type ContentService struct {
	services repository.ServiceRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	logger   *slog.Logger
}

// NewContentService creates a ContentService over the three repositories.
func NewContentService(
	services repository.ServiceRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		services: services,
		products: products,
		clients:  clients,
		logger:   logger,
	}
}

// ---------------------------------------------------------------------------
// Services
// ---------------------------------------------------------------------------

// ListServices returns all services.
func (s *ContentService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.services.GetAll(ctx)
}

// CreateService validates required fields and inserts, filling in svc.ID.
func (s *ContentService) CreateService(ctx context.Context, svc *model.Service) error {
	svc.Title = strings.TrimSpace(svc.Title)
	svc.Description = strings.TrimSpace(svc.Description)
	svc.Icon = strings.TrimSpace(svc.Icon)

	if svc.Title == "" || svc.Description == "" || svc.Icon == "" {
		return apperror.ValidationFailed("", "Missing required fields")
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	s.logger.Info("service created",
		slog.Int64("id", svc.ID),
		slog.String("title", svc.Title),
	)
	return nil
}

// UpdateService applies a partial update and returns the merged row.
//
// The update and the refetch are two separate statements, not a transaction.
// If another request deletes the row in between, the refetch reports not
// found even though the update succeeded — callers see a 404, which is the
// documented behaviour for this race.
func (s *ContentService) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	if err := s.services.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	updated, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("service updated", slog.Int64("id", id))
	return updated, nil
}

// DeleteService removes a service; apperror.ErrNotFound if it doesn't exist.
func (s *ContentService) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("service deleted", slog.Int64("id", id))
	return nil
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// ListProducts returns all products.
func (s *ContentService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.GetAll(ctx)
}

// CreateProduct validates required fields and inserts, filling in p.ID.
// Features stays the raw comma-joined string the frontend sends.
func (s *ContentService) CreateProduct(ctx context.Context, p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Image = strings.TrimSpace(p.Image)
	p.Features = strings.TrimSpace(p.Features)

	if p.Name == "" || p.Description == "" || p.Image == "" || p.Features == "" {
		return apperror.ValidationFailed("", "Missing required fields")
	}

	if err := s.products.Create(ctx, p); err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	s.logger.Info("product created",
		slog.Int64("id", p.ID),
		slog.String("name", p.Name),
	)
	return nil
}

// UpdateProduct applies a partial update and returns the merged row.
// Same non-atomic refetch caveat as UpdateService.
func (s *ContentService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if err := s.products.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated", slog.Int64("id", id))
	return updated, nil
}

// DeleteProduct removes a product; apperror.ErrNotFound if it doesn't exist.
func (s *ContentService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", slog.Int64("id", id))
	return nil
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

// ListClients returns all clients.
func (s *ContentService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.clients.GetAll(ctx)
}

// CreateClient validates required fields and inserts, filling in c.ID.
func (s *ContentService) CreateClient(ctx context.Context, c *model.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Logo = strings.TrimSpace(c.Logo)

	if c.Name == "" || c.Logo == "" {
		return apperror.ValidationFailed("", "Missing required fields")
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	s.logger.Info("client created",
		slog.Int64("id", c.ID),
		slog.String("name", c.Name),
	)
	return nil
}

// UpdateClient applies a partial update and returns the merged row.
func (s *ContentService) UpdateClient(ctx context.Context, id int64, patch model.ClientPatch) (*model.Client, error) {
	if err := s.clients.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	updated, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("client updated", slog.Int64("id", id))
	return updated, nil
}

// DeleteClient removes a client; apperror.ErrNotFound if it doesn't exist.
func (s *ContentService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", slog.Int64("id", id))
	return nil
}
