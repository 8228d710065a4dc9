package ordering_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/aradaa/internal/ordering"
)

type testItem struct {
	ID     string
	Order  int
	Hidden bool
}

func (i *testItem) ItemID() string        { return i.ID }
func (i *testItem) ItemOrder() int        { return i.Order }
func (i *testItem) ItemActive() bool      { return !i.Hidden }
func (i *testItem) SetDisplayOrder(n int) { i.Order = n }

type row struct {
	order  int
	active bool
}

// memBackend is an in-memory collection with all-or-nothing transactions.
type memBackend struct {
	rows     map[string]row
	nextID   int
	saves    int
	failSet  map[string]error
	failMax  error
	failSave error
}

func newMemBackend(orders map[string]int) *memBackend {
	b := &memBackend{rows: map[string]row{}, failSet: map[string]error{}}
	for id, o := range orders {
		b.rows[id] = row{order: o, active: true}
	}
	return b
}

func (b *memBackend) WithTx(ctx context.Context, fn func(ordering.Store[*testItem]) error) error {
	tx := &memStore{b: b, rows: maps.Clone(b.rows)}
	if err := fn(tx); err != nil {
		return err
	}
	b.rows = tx.rows
	b.nextID = tx.nextID(0)
	return nil
}

func (b *memBackend) orders() map[string]int {
	out := map[string]int{}
	for id, r := range b.rows {
		out[id] = r.order
	}
	return out
}

type memStore struct {
	b       *memBackend
	rows    map[string]row
	created int
}

func (s *memStore) nextID(add int) int {
	return s.b.nextID + s.created + add
}

func (s *memStore) ListActive(ctx context.Context) ([]ordering.Entry, error) {
	var out []ordering.Entry
	for id, r := range s.rows {
		if r.active {
			out = append(out, ordering.Entry{ID: id, Order: r.order})
		}
	}
	return out, nil
}

func (s *memStore) MaxOrder(ctx context.Context) (int, bool, error) {
	if s.b.failMax != nil {
		return 0, false, s.b.failMax
	}
	if len(s.rows) == 0 {
		return 0, false, nil
	}
	last := -1
	for _, r := range s.rows {
		last = max(last, r.order)
	}
	return last, true, nil
}

func (s *memStore) SetOrder(ctx context.Context, id string, order int) error {
	if err := s.b.failSet[id]; err != nil {
		return err
	}
	r, ok := s.rows[id]
	if !ok {
		return ordering.ErrNotFound
	}
	r.order = order
	s.rows[id] = r
	return nil
}

func (s *memStore) Save(ctx context.Context, item *testItem) error {
	s.b.saves++
	if s.b.failSave != nil {
		return s.b.failSave
	}
	if item.ID == "" {
		s.created++
		item.ID = fmt.Sprintf("new-%d", s.nextID(0))
		s.rows[item.ID] = row{order: item.Order, active: !item.Hidden}
		return nil
	}
	if _, ok := s.rows[item.ID]; !ok {
		return ordering.ErrNotFound
	}
	s.rows[item.ID] = row{order: item.Order, active: !item.Hidden}
	return nil
}

func ids(entries []ordering.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sortedOrders(b *memBackend) []int {
	var out []int
	for _, r := range b.rows {
		out = append(out, r.order)
	}
	slices.Sort(out)
	return out
}

func intPtr(n int) *int { return &n }

func TestMove_SwapsWithUpperNeighbor(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1, "c": 2})
	m := ordering.NewManager[*testItem](b, nil)

	got, err := m.Move(ctx, "b", ordering.Up)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, ids(got))
	require.Equal(t, map[string]int{"a": 1, "b": 0, "c": 2}, b.orders())
}

func TestMove_Down(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 3, "c": 7})
	m := ordering.NewManager[*testItem](b, nil)

	got, err := m.Move(ctx, "a", ordering.Down)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, ids(got))
	require.Equal(t, map[string]int{"a": 3, "b": 0, "c": 7}, b.orders())
}

func TestMove_BoundaryIsNoop(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1, "c": 2})
	m := ordering.NewManager[*testItem](b, nil)
	before := b.orders()

	got, err := m.Move(ctx, "a", ordering.Up)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids(got))

	_, err = m.Move(ctx, "c", ordering.Down)
	require.NoError(t, err)
	require.Equal(t, before, b.orders())
}

func TestMove_NotFound(t *testing.T) {
	b := newMemBackend(map[string]int{"a": 0})
	b.rows["hidden"] = row{order: 1, active: false}
	m := ordering.NewManager[*testItem](b, nil)

	_, err := m.Move(context.Background(), "missing", ordering.Up)
	require.ErrorIs(t, err, ordering.ErrNotFound)

	// Inactive items are not part of the ordered collection.
	_, err = m.Move(context.Background(), "hidden", ordering.Up)
	require.ErrorIs(t, err, ordering.ErrNotFound)
}

func TestMove_InvalidDirection(t *testing.T) {
	m := ordering.NewManager[*testItem](newMemBackend(nil), nil)
	_, err := m.Move(context.Background(), "a", ordering.Direction("sideways"))
	require.ErrorIs(t, err, ordering.ErrInvalidDirection)
}

func TestMove_PermutationInvariant(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 2, "c": 5, "d": 6, "e": 9})
	m := ordering.NewManager[*testItem](b, nil)
	before := sortedOrders(b)

	r := rand.New(rand.NewPCG(1, 2))
	names := []string{"a", "b", "c", "d", "e"}
	for range 200 {
		dir := ordering.Up
		if r.IntN(2) == 1 {
			dir = ordering.Down
		}
		_, err := m.Move(ctx, names[r.IntN(len(names))], dir)
		require.NoError(t, err)
		require.Equal(t, before, sortedOrders(b))
	}
}

func TestMove_TieBreakByID(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"b": 1, "a": 1, "c": 2})
	m := ordering.NewManager[*testItem](b, nil)

	got, err := m.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids(got))

	// c's upper neighbor is b, the later of the tied pair.
	_, err = m.Move(ctx, "c", ordering.Up)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "b": 2, "c": 1}, b.orders())
}

func TestMove_SecondWriteFailureLeavesNothingApplied(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	b.failSet["a"] = errors.New("disk full")
	m := ordering.NewManager[*testItem](b, nil)

	_, err := m.Move(ctx, "b", ordering.Up)
	require.Error(t, err)
	require.Equal(t, map[string]int{"a": 0, "b": 1}, b.orders())
}

func TestPlace_RelocatesConflictingItem(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 2, "b": 5})
	m := ordering.NewManager[*testItem](b, nil)

	item := &testItem{ID: "b", Order: 5}
	require.NoError(t, m.Place(ctx, item, intPtr(2)))
	require.Equal(t, 2, item.Order)
	require.Equal(t, map[string]int{"a": 6, "b": 2}, b.orders())
}

func TestPlace_NewItemTakesOccupiedSlot(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	m := ordering.NewManager[*testItem](b, nil)

	item := &testItem{}
	require.NoError(t, m.Place(ctx, item, intPtr(0)))
	require.NotEmpty(t, item.ID)

	got := b.orders()
	require.Equal(t, 0, got[item.ID])
	require.Equal(t, 2, got["a"])
	require.Equal(t, 1, got["b"])
}

func TestPlace_RelocationUsesMaxOverInactiveItems(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0})
	b.rows["hidden"] = row{order: 10, active: false}
	m := ordering.NewManager[*testItem](b, nil)

	require.NoError(t, m.Place(ctx, &testItem{}, intPtr(0)))
	require.Equal(t, 11, b.orders()["a"])
	require.Equal(t, 10, b.orders()["hidden"])
}

func TestPlace_InactiveHolderIsNotAConflict(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(nil)
	b.rows["hidden"] = row{order: 3, active: false}
	m := ordering.NewManager[*testItem](b, nil)

	require.NoError(t, m.Place(ctx, &testItem{}, intPtr(3)))
	require.Equal(t, 3, b.orders()["hidden"])
}

func TestPlace_EmptyCollectionAcceptsRequestedOrder(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(nil)
	m := ordering.NewManager[*testItem](b, nil)

	item := &testItem{}
	require.NoError(t, m.Place(ctx, item, intPtr(7)))
	require.Equal(t, 7, item.Order)
	require.Equal(t, map[string]int{item.ID: 7}, b.orders())
}

func TestPlace_DefaultsNewItemToEnd(t *testing.T) {
	ctx := context.Background()
	m := ordering.NewManager[*testItem](newMemBackend(nil), nil)

	first := &testItem{}
	require.NoError(t, m.Place(ctx, first, nil))
	require.Equal(t, 0, first.Order)

	second := &testItem{}
	require.NoError(t, m.Place(ctx, second, nil))
	require.Equal(t, 1, second.Order)
}

func TestPlace_ExistingItemWithoutOrderKeepsIt(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 4, "b": 9})
	m := ordering.NewManager[*testItem](b, nil)

	require.NoError(t, m.Place(ctx, &testItem{ID: "a", Order: 4}, nil))
	require.Equal(t, map[string]int{"a": 4, "b": 9}, b.orders())
}

func TestPlace_ShownItemLeavesReusedSlotAlone(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	m := ordering.NewManager[*testItem](b, nil)

	a := &testItem{ID: "a", Order: 0, Hidden: true}
	require.NoError(t, m.Place(ctx, a, nil))
	c := &testItem{}
	require.NoError(t, m.Place(ctx, c, intPtr(0)))

	a.Hidden = false
	require.NoError(t, m.Place(ctx, a, nil))
	require.Equal(t, 2, a.Order)
	require.Equal(t, map[string]int{"a": 2, "b": 1, c.ID: 0}, b.orders())

	// Showing an item whose slot is still free keeps it in place.
	b.rows["d"] = row{order: 7, active: false}
	require.NoError(t, m.Place(ctx, &testItem{ID: "d", Order: 7}, nil))
	require.Equal(t, 7, b.orders()["d"])
}

func TestPlace_SameSlotIsNotAConflictWithItself(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	m := ordering.NewManager[*testItem](b, nil)

	require.NoError(t, m.Place(ctx, &testItem{ID: "b", Order: 1}, intPtr(1)))
	require.Equal(t, map[string]int{"a": 0, "b": 1}, b.orders())
}

func TestPlace_UniqueAfterAssign(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1, "c": 2, "d": 3})
	m := ordering.NewManager[*testItem](b, nil)

	r := rand.New(rand.NewPCG(3, 4))
	names := []string{"a", "b", "c", "d"}
	for range 100 {
		id := names[r.IntN(len(names))]
		n := r.IntN(6)
		require.NoError(t, m.Place(ctx, &testItem{ID: id}, intPtr(n)))

		holders := 0
		seen := map[int]bool{}
		for _, o := range b.orders() {
			if o == n {
				holders++
			}
			require.False(t, seen[o], "duplicate display order %d", o)
			seen[o] = true
		}
		require.Equal(t, 1, holders)
	}
}

func TestPlace_ResolvesExistingDuplicates(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 1, "b": 1, "c": 2})
	m := ordering.NewManager[*testItem](b, nil)

	require.NoError(t, m.Place(ctx, &testItem{ID: "c"}, intPtr(1)))
	got := b.orders()
	require.Equal(t, 1, got["c"])
	require.Equal(t, 3, got["a"])
	require.Equal(t, 4, got["b"])
}

func TestPlace_RelocationFailureStopsSave(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	cause := errors.New("connection reset")
	b.failSet["a"] = cause
	m := ordering.NewManager[*testItem](b, nil)

	err := m.Place(ctx, &testItem{ID: "b"}, intPtr(0))
	require.ErrorIs(t, err, ordering.ErrConflictResolution)
	require.ErrorIs(t, err, cause)
	require.Zero(t, b.saves)
	require.Equal(t, map[string]int{"a": 0, "b": 1}, b.orders())
}

func TestPlace_SaveFailureRollsBackRelocation(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0, "b": 1})
	b.failSave = errors.New("constraint failed")
	m := ordering.NewManager[*testItem](b, nil)

	err := m.Place(ctx, &testItem{}, intPtr(0))
	require.Error(t, err)
	require.NotErrorIs(t, err, ordering.ErrConflictResolution)
	require.Equal(t, map[string]int{"a": 0, "b": 1}, b.orders())
}

func TestPlace_NegativeOrder(t *testing.T) {
	m := ordering.NewManager[*testItem](newMemBackend(nil), nil)
	err := m.Place(context.Background(), &testItem{}, intPtr(-1))
	require.ErrorIs(t, err, ordering.ErrInvalidOrder)
}

func TestPlace_UnknownItem(t *testing.T) {
	m := ordering.NewManager[*testItem](newMemBackend(map[string]int{"a": 0}), nil)
	err := m.Place(context.Background(), &testItem{ID: "ghost"}, intPtr(3))
	require.ErrorIs(t, err, ordering.ErrNotFound)
}

func TestList_IdempotentRefetch(t *testing.T) {
	ctx := context.Background()
	m := ordering.NewManager[*testItem](newMemBackend(map[string]int{"x": 4, "y": 1, "z": 2}), nil)

	first, err := m.List(ctx)
	require.NoError(t, err)
	second, err := m.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []string{"y", "z", "x"}, ids(first))
}

func TestParseDirection(t *testing.T) {
	d, err := ordering.ParseDirection(" UP ")
	require.NoError(t, err)
	require.Equal(t, ordering.Up, d)

	d, err = ordering.ParseDirection("down")
	require.NoError(t, err)
	require.Equal(t, ordering.Down, d)

	_, err = ordering.ParseDirection("left")
	require.ErrorIs(t, err, ordering.ErrInvalidDirection)
}

func TestPlace_MaxOrderFailureDuringRelocation(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend(map[string]int{"a": 0})
	b.failMax = errors.New("database is locked")
	m := ordering.NewManager[*testItem](b, nil)

	err := m.Place(ctx, &testItem{}, intPtr(0))
	require.ErrorIs(t, err, ordering.ErrConflictResolution)
	require.Zero(t, b.saves)
}
