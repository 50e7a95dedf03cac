package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
)

var epoch = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type stubUsers map[string]UserRef

func (s stubUsers) Resolve(_ context.Context, id string) (UserRef, error) {
	u, ok := s[id]
	if !ok {
		return UserRef{}, apperror.NotFound("user not found")
	}
	return u, nil
}

type stubItems map[string]ItemRef

func (s stubItems) Resolve(_ context.Context, id string) (ItemRef, error) {
	it, ok := s[id]
	if !ok {
		return ItemRef{}, apperror.NotFound("item not found")
	}
	return it, nil
}

type testEnv struct {
	db    *db.DB
	repo  Repository
	users stubUsers
	items stubItems
	clock *clock.Manual
	svc   *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	d, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate(ctx))

	e := &testEnv{
		db:    d,
		repo:  NewRepository(d),
		users: stubUsers{},
		items: stubItems{},
		clock: clock.NewManual(epoch),
	}
	e.svc = NewService(e.repo, e.users, e.items, e.clock, nil)
	return e
}

func (e *testEnv) addUser(t *testing.T, name string) UserRef {
	t.Helper()
	u := UserRef{ID: uuid.NewString(), Name: name}
	_, err := e.db.SQL.Exec(
		"INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Name, u.ID+"@example.com", epoch)
	require.NoError(t, err)
	e.users[u.ID] = u
	return u
}

func (e *testEnv) addItem(t *testing.T, owner UserRef, available bool) ItemRef {
	t.Helper()
	it := ItemRef{ID: uuid.NewString(), OwnerID: owner.ID, Name: "drill", Available: available}
	_, err := e.db.SQL.Exec(
		"INSERT INTO items (id, owner_id, name, description, available, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		it.ID, it.OwnerID, it.Name, "cordless", it.Available, epoch)
	require.NoError(t, err)
	e.items[it.ID] = it
	return it
}

// seed stores a booking directly, bypassing creation rules, so past and
// current intervals can be set up.
func (e *testEnv) seed(t *testing.T, item ItemRef, booker UserRef, start, end time.Time, status Status) *Booking {
	t.Helper()
	b := &Booking{
		ItemID:    item.ID,
		ItemName:  item.Name,
		OwnerID:   item.OwnerID,
		BookerID:  booker.ID,
		Start:     start,
		End:       end,
		Status:    status,
		CreatedAt: epoch,
		UpdatedAt: epoch,
	}
	require.NoError(t, e.repo.Create(context.Background(), b))
	return b
}

func ids(bookings []*Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}
