package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore provides the users table operations: the login lookup and the
// seeding insert. There is intentionally no update or delete — admin accounts
// are managed out of band.
type UserStore struct {
	conn *sql.DB
}

// NewUserStore creates a UserStore backed by db's connection pool.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{conn: db.conn}
}

// GetByUsername returns the user with the given username, or
// apperror.ErrNotFound. The login flow translates that into the same
// "Invalid credentials" failure as a wrong password.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, username, password, role FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &u, nil
}

// Create inserts a new user and fills in the assigned id. u.Password must
// already be a bcrypt hash — this layer never sees plaintext passwords.
// The UNIQUE constraint on username makes a duplicate insert fail.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`,
		u.Username, u.Password, u.Role,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %q: %w", u.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	u.ID = id

	return nil
}
