package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nekogravitycat/shareit-backend/internal/db"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

type sqlUserRepository struct {
	db *db.DB
}

// NewRepository creates a new Repository backed by the given database.
func NewRepository(d *db.DB) Repository {
	return &sqlUserRepository{db: d}
}

func (r *sqlUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query, args, err := r.db.Builder().
		Select("id", "name", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	var u User
	if err := r.db.SQL.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *sqlUserRepository) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query, args, err := r.db.Builder().
		Insert("users").
		Columns("id", "name", "email", "created_at").
		Values(u.ID, u.Name, u.Email, u.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create user query failed: %w", err)
	}

	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *sqlUserRepository) List(ctx context.Context) ([]*User, error) {
	query, args, err := r.db.Builder().
		Select("id", "name", "email", "created_at").
		From("users").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *sqlUserRepository) Update(ctx context.Context, u *User) error {
	query, args, err := r.db.Builder().
		Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user query failed: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update user failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlUserRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.db.Builder().
		Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query failed: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrUserInUse
		}
		return fmt.Errorf("delete user failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
