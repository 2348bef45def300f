package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// UserRepository is a PostgreSQL-backed domain.UserRepository.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewUserRepository(db *sql.DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger.With("component", "postgres_user_repository")}
}

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	seq           BIGSERIAL,
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL,
	password_hash TEXT NOT NULL
);`

// Migrate creates the users table if it does not exist yet.
func (r *UserRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

// Ensure inserts the given users unless their ids already exist.
func (r *UserRepository) Ensure(ctx context.Context, users []domain.User) error {
	for _, u := range users {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO users (id, email, role, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Email, string(u.Role), u.PasswordHash,
		)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.ID, err)
		}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, role, password_hash FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, role, password_hash FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, role, password_hash FROM users WHERE LOWER(email) = LOWER($1)`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET role = $2 WHERE id = $1
		RETURNING id, email, role, password_hash`,
		id, string(role),
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &role, &u.PasswordHash); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}
