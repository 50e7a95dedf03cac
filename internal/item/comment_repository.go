package item

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nekogravitycat/shareit-backend/internal/db"
)

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// ListByItems returns comments grouped by item id, oldest first.
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error)
}

type sqlCommentRepository struct {
	db *db.DB
}

func NewCommentRepository(d *db.DB) CommentRepository {
	return &sqlCommentRepository{db: d}
}

func (r *sqlCommentRepository) Create(ctx context.Context, c *Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query, args, err := r.db.Builder().Insert("comments").
		Columns("id", "item_id", "author_id", "text", "created_at").
		Values(c.ID, c.ItemID, c.AuthorID, c.Text, c.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *sqlCommentRepository) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error) {
	out := make(map[string][]*Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := r.db.Builder().
		Select("c.id", "c.item_id", "c.author_id", "u.name", "c.text", "c.created_at").
		From("comments c").
		Join("users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemIDs}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		out[c.ItemID] = append(out[c.ItemID], &c)
	}
	return out, rows.Err()
}
