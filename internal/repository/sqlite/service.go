package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/repository"
)

// Compile-time check that *ServiceStore implements repository.ServiceRepository.
// `var _ X = (*Y)(nil)` fails the build immediately if a method is missing,
// instead of erroring much later at whatever call site passes the store around.
var _ repository.ServiceRepository = (*ServiceStore)(nil)

// ServiceStore provides the services table CRUD. Each entity gets its own
// store type over the shared connection pool so the repository interfaces can
// use the same method names (GetAll, Create, ...) without colliding.
type ServiceStore struct {
	conn *sql.DB
}

// NewServiceStore creates a ServiceStore backed by db's connection pool.
func NewServiceStore(db *DB) *ServiceStore {
	return &ServiceStore{conn: db.conn}
}

// GetAll returns every service in storage order. The site shows at most a
// handful of services, so there is no pagination.
func (s *ServiceStore) GetAll(ctx context.Context) ([]model.Service, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, title, description, icon, video_url FROM services`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var (
			svc      model.Service
			videoURL sql.NullString
		)
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Icon, &videoURL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning service row: %w", err)
		}
		svc.VideoURL = nullableString(videoURL)
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating services: %w", err)
	}

	return services, nil
}

// GetByID returns the service with the given id, or apperror.ErrNotFound.
func (s *ServiceStore) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	var (
		svc      model.Service
		videoURL sql.NullString
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, title, description, icon, video_url FROM services WHERE id = ?`,
		id,
	).Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Icon, &videoURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Service")
		}
		return nil, fmt.Errorf("sqlite: getting service %d: %w", id, err)
	}
	svc.VideoURL = nullableString(videoURL)

	return &svc, nil
}

// Create inserts a new service and fills in the assigned id.
//
// The id column is INTEGER PRIMARY KEY AUTOINCREMENT, so SQLite assigns it and
// LastInsertId hands it back. Taking a pointer argument means the caller's
// struct carries the new id after this returns.
func (s *ServiceStore) Create(ctx context.Context, svc *model.Service) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO services (title, description, icon, video_url) VALUES (?, ?, ?, ?)`,
		svc.Title, svc.Description, svc.Icon, svc.VideoURL,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating service: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new service id: %w", err)
	}
	svc.ID = id

	return nil
}

// Update applies a partial update: COALESCE(?, column) keeps the stored value
// for every nil patch field (a nil *string binds as SQL NULL). Returns
// apperror.ErrNotFound when the id matched no row.
func (s *ServiceStore) Update(ctx context.Context, id int64, patch model.ServicePatch) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE services
		 SET title       = COALESCE(?, title),
		     description = COALESCE(?, description),
		     icon        = COALESCE(?, icon),
		     video_url   = COALESCE(?, video_url)
		 WHERE id = ?`,
		patch.Title, patch.Description, patch.Icon, patch.VideoURL, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating service %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Service")
	}

	return nil
}

// Delete removes a service. Same RowsAffected pattern as Update — zero rows
// affected means the id didn't exist.
func (s *ServiceStore) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting service %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Service")
	}

	return nil
}
