// Package ordering keeps a content collection in a strict display order.
//
// Items carry a non-negative display_order and an active flag. Among active
// items every display_order value is held by at most one item. The database
// does not enforce this, so every write goes through a Manager, which runs
// each operation inside a single backend transaction.
package ordering

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned when the referenced item is not in the active collection.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidDirection is returned for a move direction other than up or down.
	ErrInvalidDirection = errors.New("direction must be up or down")

	// ErrInvalidOrder is returned for a negative display order.
	ErrInvalidOrder = errors.New("display order must be non-negative")

	// ErrConflictResolution is returned when the item holding a requested
	// slot could not be relocated. Nothing is persisted in that case.
	ErrConflictResolution = errors.New("relocating conflicting item")
)

// Direction is the way an item moves in a Move call.
type Direction string

// Move directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down:
		return d, nil
	}
	return "", ErrInvalidDirection
}

// Item is a content value the manager can place. New items have an empty ID
// until the store saves them.
type Item interface {
	ItemID() string
	ItemOrder() int
	ItemActive() bool
	SetDisplayOrder(int)
}

// Entry is the ordering view of one item.
type Entry struct {
	ID    string `json:"id"`
	Order int    `json:"display_order"`
}

// Store is the persistence side of one collection, bound to a transaction.
type Store[T Item] interface {
	// ListActive returns every active item, in any order.
	ListActive(ctx context.Context) ([]Entry, error)
	// MaxOrder returns the highest display order over all items, active or
	// not. ok is false when the collection is empty.
	MaxOrder(ctx context.Context) (last int, ok bool, err error)
	// SetOrder changes one item's display order. It returns ErrNotFound
	// when no such item exists.
	SetOrder(ctx context.Context, id string, order int) error
	// Save creates the item when its ID is empty and updates it otherwise.
	Save(ctx context.Context, item T) error
}

// Backend runs fn against a Store inside one transaction. If fn returns an
// error, none of its writes are kept.
type Backend[T Item] interface {
	WithTx(ctx context.Context, fn func(Store[T]) error) error
}

// Manager applies move and place operations to one collection.
type Manager[T Item] struct {
	backend Backend[T]
	logger  *slog.Logger
}

// NewManager creates a manager over backend. A nil logger uses slog.Default.
func NewManager[T Item](backend Backend[T], logger *slog.Logger) *Manager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[T]{backend: backend, logger: logger}
}

// Sort orders entries by display order, breaking ties by ID.
func Sort(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// List returns the active items in display order.
func (m *Manager[T]) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := m.backend.WithTx(ctx, func(s Store[T]) error {
		var err error
		entries, err = listSorted(ctx, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Move swaps the display order of item id with its neighbor in direction dir
// and returns the refreshed collection. Moving the first item up or the last
// item down changes nothing and is not an error.
func (m *Manager[T]) Move(ctx context.Context, id string, dir Direction) ([]Entry, error) {
	if dir != Up && dir != Down {
		return nil, ErrInvalidDirection
	}

	var result []Entry
	err := m.backend.WithTx(ctx, func(s Store[T]) error {
		entries, err := listSorted(ctx, s)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
		if i < 0 {
			return ErrNotFound
		}
		j := i - 1
		if dir == Down {
			j = i + 1
		}
		if j < 0 || j >= len(entries) {
			result = entries
			return nil
		}

		a, b := entries[i], entries[j]
		if err := s.SetOrder(ctx, a.ID, b.Order); err != nil {
			return fmt.Errorf("moving item %s: %w", a.ID, err)
		}
		if err := s.SetOrder(ctx, b.ID, a.Order); err != nil {
			return fmt.Errorf("moving item %s: %w", b.ID, err)
		}

		result, err = listSorted(ctx, s)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("item moved", "item", id, "direction", string(dir))
	return result, nil
}

// Place saves item with the requested display order.
//
// A nil requested order keeps an existing item where it is and puts a new
// item after everything else (0 in an empty collection). An existing active
// item whose order is held by another active item, as happens when a hidden
// item is shown again after its slot was reused, moves to one past the
// current maximum instead. Otherwise any other active item already holding
// the requested order is first moved to one past the current maximum, then
// item is saved with the requested order. All writes share a transaction.
func (m *Manager[T]) Place(ctx context.Context, item T, requested *int) error {
	if requested != nil && *requested < 0 {
		return ErrInvalidOrder
	}

	return m.backend.WithTx(ctx, func(s Store[T]) error {
		id := item.ItemID()

		switch {
		case requested != nil:
			if err := m.freeSlot(ctx, s, id, *requested); err != nil {
				return err
			}
			item.SetDisplayOrder(*requested)

		case id == "":
			last, ok, err := s.MaxOrder(ctx)
			if err != nil {
				return fmt.Errorf("finding last display order: %w", err)
			}
			next := 0
			if ok {
				next = last + 1
			}
			item.SetDisplayOrder(next)

		case item.ItemActive():
			if err := m.keepUnique(ctx, s, item); err != nil {
				return err
			}
		}

		if err := s.Save(ctx, item); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
		return nil
	})
}

// keepUnique moves item past the current maximum when another active item
// holds its order.
func (m *Manager[T]) keepUnique(ctx context.Context, s Store[T], item T) error {
	entries, err := listSorted(ctx, s)
	if err != nil {
		return err
	}

	id, order := item.ItemID(), item.ItemOrder()
	taken := slices.ContainsFunc(entries, func(e Entry) bool { return e.ID != id && e.Order == order })
	if !taken {
		return nil
	}

	last, _, err := s.MaxOrder(ctx)
	if err != nil {
		return fmt.Errorf("finding last display order: %w", err)
	}
	item.SetDisplayOrder(last + 1)
	m.logger.Info("display order conflict resolved", "item", id, "from", order, "to", last+1)
	return nil
}

// freeSlot relocates every active item other than id that holds order.
func (m *Manager[T]) freeSlot(ctx context.Context, s Store[T], id string, order int) error {
	entries, err := listSorted(ctx, s)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.ID == id || e.Order != order {
			continue
		}

		last, _, err := s.MaxOrder(ctx)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrConflictResolution, e.ID, err)
		}
		if err := s.SetOrder(ctx, e.ID, last+1); err != nil {
			return fmt.Errorf("%w %s: %w", ErrConflictResolution, e.ID, err)
		}
		m.logger.Info("display order conflict resolved", "item", e.ID, "from", order, "to", last+1)
	}
	return nil
}

func listSorted[T Item](ctx context.Context, s Store[T]) ([]Entry, error) {
	entries, err := s.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	Sort(entries)
	return entries, nil
}
