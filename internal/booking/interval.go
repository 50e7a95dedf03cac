package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// Interval is the reserved period of a booking.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Validate checks the interval for a booking created at now.
func (iv Interval) Validate(now time.Time) error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return ErrMissingInterval
	}
	if !iv.End.After(iv.Start) {
		return ErrInvalidInterval
	}
	// With start >= now, end > start also puts end strictly in the future.
	if iv.Start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// IsCurrent reports whether now falls inside the interval, bounds included.
func (iv Interval) IsCurrent(now time.Time) bool {
	return !now.Before(iv.Start) && !now.After(iv.End)
}

func (iv Interval) IsPast(now time.Time) bool {
	return iv.End.Before(now)
}

func (iv Interval) IsFuture(now time.Time) bool {
	return iv.Start.After(now)
}

// UTC returns the interval with both bounds in UTC.
func (iv Interval) UTC() Interval {
	return Interval{Start: iv.Start.UTC(), End: iv.End.UTC()}
}

// Bucket classifies bookings for listing.
type Bucket string

const (
	BucketAll      Bucket = "ALL"
	BucketCurrent  Bucket = "CURRENT"
	BucketPast     Bucket = "PAST"
	BucketFuture   Bucket = "FUTURE"
	BucketWaiting  Bucket = "WAITING"
	BucketRejected Bucket = "REJECTED"
)

// ParseBucket matches a bucket name case-insensitively.
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.ToUpper(strings.TrimSpace(s)))
	switch b {
	case BucketAll, BucketCurrent, BucketPast, BucketFuture, BucketWaiting, BucketRejected:
		return b, nil
	}
	return "", apperror.InvalidRequest(fmt.Sprintf("Unknown state: %s", s))
}

// Matches reports whether the booking belongs to the bucket at now.
func (b Bucket) Matches(bk *Booking, now time.Time) bool {
	switch b {
	case BucketAll:
		return true
	case BucketCurrent:
		return bk.Interval().IsCurrent(now)
	case BucketPast:
		return bk.Interval().IsPast(now)
	case BucketFuture:
		return bk.Interval().IsFuture(now)
	case BucketWaiting:
		return bk.Status == StatusWaiting
	case BucketRejected:
		return bk.Status == StatusRejected
	}
	return false
}

// Page is an offset/limit window. The offset is rounded down to a whole page.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) Validate() error {
	if p.Offset < 0 || p.Limit <= 0 {
		return ErrInvalidPage
	}
	return nil
}

// start returns the first row of the page containing Offset.
func (p Page) start() int {
	return (p.Offset / p.Limit) * p.Limit
}
