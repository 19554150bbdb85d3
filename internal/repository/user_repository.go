package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Zachkp/portfolio/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Register stores u, as admin when no account exists yet and as a user
// otherwise. The role is chosen inside the insert so two first sign-ups
// cannot both become admin. u.Role is set to the stored role.
func (r *userRepository) Register(ctx context.Context, u *domain.User) error {
	query := `
	INSERT INTO users (id, email, password_hash, full_name, role, created_at)
	SELECT ?, ?, ?, ?, CASE WHEN EXISTS (SELECT 1 FROM users) THEN ? ELSE ? END, ?
	RETURNING role`

	var role string
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.PasswordHash, nullable(u.FullName),
		string(domain.RoleUser), string(domain.RoleAdmin), u.CreatedAt.UTC()).Scan(&role)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrConflict
		}
		return err
	}
	u.Role = domain.Role(role)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, COALESCE(full_name, ''), role, created_at FROM users WHERE ` + column + ` = ?`

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
