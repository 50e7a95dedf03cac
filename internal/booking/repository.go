package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nekogravitycat/shareit-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, q Query) ([]*Booking, error)

	// UpdateStatus moves a booking from one status to another in a single
	// conditional write. It returns ErrAlreadyDecided if the booking is no
	// longer in status from, and ErrNotFound if it does not exist.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error

	FindLastCompleted(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	FindNextUpcoming(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	HasCompletedRental(ctx context.Context, itemID, userID string, now time.Time) (bool, error)
}

type sqlRepository struct {
	db *db.DB
}

func NewRepository(d *db.DB) Repository {
	return &sqlRepository{db: d}
}

var bookingColumns = []string{
	"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
	"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
}

func (r *sqlRepository) selectBookings() squirrel.SelectBuilder {
	return r.db.Builder().Select(bookingColumns...).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}

func (r *sqlRepository) Create(ctx context.Context, b *Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query, args, err := r.db.Builder().Insert("bookings").
		Columns("id", "item_id", "booker_id", "start_time", "end_time", "status", "created_at", "updated_at").
		Values(b.ID, b.ItemID, b.BookerID, b.Start.UTC(), b.End.UTC(), string(b.Status), b.CreatedAt.UTC(), b.UpdatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

// bucketCondition is the SQL form of Bucket.Matches.
func bucketCondition(bucket Bucket, now time.Time) squirrel.Sqlizer {
	now = now.UTC()
	switch bucket {
	case BucketCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case BucketPast:
		return squirrel.Lt{"b.end_time": now}
	case BucketFuture:
		return squirrel.Gt{"b.start_time": now}
	case BucketWaiting:
		return squirrel.Eq{"b.status": string(StatusWaiting)}
	case BucketRejected:
		return squirrel.Eq{"b.status": string(StatusRejected)}
	}
	return nil
}

func (r *sqlRepository) List(ctx context.Context, q Query) ([]*Booking, error) {
	query := r.selectBookings()

	if q.BookerID != "" {
		query = query.Where(squirrel.Eq{"b.booker_id": q.BookerID})
	}
	if q.OwnerID != "" {
		query = query.Where(squirrel.Eq{"i.owner_id": q.OwnerID})
	}
	if cond := bucketCondition(q.Bucket, q.Now); cond != nil {
		query = query.Where(cond)
	}

	query = query.OrderBy("b.start_time DESC", "b.id DESC")

	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		query = query.Offset(uint64(q.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.SQL.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *sqlRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	query, args, err := r.db.Builder().Update("bookings").
		Set("status", string(to)).
		Set("updated_at", at.UTC()).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing matched: either the booking is gone or someone decided it first.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyDecided
}

func (r *sqlRepository) findOne(ctx context.Context, query squirrel.SelectBuilder) (*Booking, error) {
	stmt, args, err := query.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.SQL.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find booking failed: %w", err)
	}
	return b, nil
}

func (r *sqlRepository) FindLastCompleted(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.findOne(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Lt{"b.end_time": now.UTC()}).
		OrderBy("b.end_time DESC", "b.id DESC"))
}

func (r *sqlRepository) FindNextUpcoming(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.findOne(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Gt{"b.start_time": now.UTC()}).
		OrderBy("b.start_time ASC", "b.id ASC"))
}

func (r *sqlRepository) HasCompletedRental(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	query, args, err := r.db.Builder().Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"item_id":   itemID,
			"booker_id": userID,
			"status":    string(StatusApproved),
		}).
		Where(squirrel.Lt{"end_time": now.UTC()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed rental query failed: %w", err)
	}

	var count int
	if err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check completed rental failed: %w", err)
	}
	return count > 0, nil
}
