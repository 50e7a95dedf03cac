package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nekogravitycat/shareit-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Item, error)
	// Search matches available items whose name or description contains text.
	Search(ctx context.Context, text string) ([]*Item, error)
}

type sqlRepository struct {
	db *db.DB
}

func NewRepository(d *db.DB) Repository {
	return &sqlRepository{db: d}
}

var itemColumns = []string{"id", "owner_id", "name", "description", "available", "request_id", "created_at"}

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	var requestID sql.NullString
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &requestID, &it.CreatedAt); err != nil {
		return nil, err
	}
	if requestID.Valid {
		it.RequestID = &requestID.String
	}
	return &it, nil
}

func (r *sqlRepository) Create(ctx context.Context, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	query, args, err := r.db.Builder().Insert("items").
		Columns(itemColumns...).
		Values(it.ID, it.OwnerID, it.Name, it.Description, it.Available, it.RequestID, it.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	query, args, err := r.db.Builder().Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *sqlRepository) Update(ctx context.Context, it *Item) error {
	query, args, err := r.db.Builder().Update("items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*Item, error) {
	stmt, args, err := query.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *sqlRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Item, error) {
	return r.list(ctx, r.db.Builder().Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}))
}

func (r *sqlRepository) Search(ctx context.Context, text string) ([]*Item, error) {
	pattern := "%" + db.EscapeLike(text) + "%"
	return r.list(ctx, r.db.Builder().Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			r.db.CaseInsensitiveLike("name", pattern),
			r.db.CaseInsensitiveLike("description", pattern),
		}))
}
