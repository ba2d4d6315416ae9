package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/repository"
)

var _ repository.ProductRepository = (*ProductStore)(nil)

// ProductStore provides the products table CRUD. Same patterns as
// ServiceStore; the only wrinkle is the extra features column, which is stored
// as the comma-joined string the frontend expects.
type ProductStore struct {
	conn *sql.DB
}

// NewProductStore creates a ProductStore backed by db's connection pool.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{conn: db.conn}
}

// GetAll returns every product in storage order.
func (s *ProductStore) GetAll(ctx context.Context) ([]model.Product, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, description, image, video_url, features FROM products`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p        model.Product
			videoURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &videoURL, &p.Features); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		p.VideoURL = nullableString(videoURL)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// GetByID returns the product with the given id, or apperror.ErrNotFound.
func (s *ProductStore) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var (
		p        model.Product
		videoURL sql.NullString
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, description, image, video_url, features FROM products WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Image, &videoURL, &p.Features)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Product")
		}
		return nil, fmt.Errorf("sqlite: getting product %d: %w", id, err)
	}
	p.VideoURL = nullableString(videoURL)

	return &p, nil
}

// Create inserts a new product and fills in the assigned id.
func (s *ProductStore) Create(ctx context.Context, p *model.Product) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO products (name, description, image, features, video_url)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Image, p.Features, p.VideoURL,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new product id: %w", err)
	}
	p.ID = id

	return nil
}

// Update applies a COALESCE partial update; apperror.ErrNotFound when no row
// matched.
func (s *ProductStore) Update(ctx context.Context, id int64, patch model.ProductPatch) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE products
		 SET name        = COALESCE(?, name),
		     description = COALESCE(?, description),
		     image       = COALESCE(?, image),
		     features    = COALESCE(?, features),
		     video_url   = COALESCE(?, video_url)
		 WHERE id = ?`,
		patch.Name, patch.Description, patch.Image, patch.Features, patch.VideoURL, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating product %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Product")
	}

	return nil
}

// Delete removes a product; apperror.ErrNotFound when the id didn't exist.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting product %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Product")
	}

	return nil
}
