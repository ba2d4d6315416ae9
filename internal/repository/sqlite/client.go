package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/repository"
)

var _ repository.ClientRepository = (*ClientStore)(nil)

// ClientStore provides the clients table CRUD. Clients are the smallest
// entity — just a name and a logo URL.
type ClientStore struct {
	conn *sql.DB
}

// NewClientStore creates a ClientStore backed by db's connection pool.
func NewClientStore(db *DB) *ClientStore {
	return &ClientStore{conn: db.conn}
}

// GetAll returns every client in storage order.
func (s *ClientStore) GetAll(ctx context.Context) ([]model.Client, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, logo FROM clients`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clients: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Logo); err != nil {
			return nil, fmt.Errorf("sqlite: scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating clients: %w", err)
	}

	return clients, nil
}

// GetByID returns the client with the given id, or apperror.ErrNotFound.
func (s *ClientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, logo FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Logo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Client")
		}
		return nil, fmt.Errorf("sqlite: getting client %d: %w", id, err)
	}

	return &c, nil
}

// Create inserts a new client and fills in the assigned id.
func (s *ClientStore) Create(ctx context.Context, c *model.Client) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO clients (name, logo) VALUES (?, ?)`, c.Name, c.Logo)
	if err != nil {
		return fmt.Errorf("sqlite: creating client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new client id: %w", err)
	}
	c.ID = id

	return nil
}

// Update applies a COALESCE partial update; apperror.ErrNotFound when no row
// matched.
func (s *ClientStore) Update(ctx context.Context, id int64, patch model.ClientPatch) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE clients
		 SET name = COALESCE(?, name),
		     logo = COALESCE(?, logo)
		 WHERE id = ?`,
		patch.Name, patch.Logo, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating client %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Client")
	}

	return nil
}

// Delete removes a client; apperror.ErrNotFound when the id didn't exist.
func (s *ClientStore) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting client %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Client")
	}

	return nil
}
