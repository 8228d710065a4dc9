package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

// sectionPtr constrains S to be *T for a section struct T, so the generic
// readers can allocate a fresh section.
type sectionPtr[T any] interface {
	*T
	model.Section
}

func kindOf[T any, S sectionPtr[T]]() string {
	var zero T
	return S(&zero).Kind()
}

// SectionOrder returns the ordering manager for one section kind. Each kind
// is ordered on its own.
func SectionOrder[T any, S sectionPtr[T]](db *sql.DB) *ordering.Manager[S] {
	kind := kindOf[T, S]()
	return ordering.NewManager[S](&orderedTable[S]{
		db:        db,
		table:     "sections",
		scope:     "kind = ?",
		scopeArgs: []any{kind},
		save: func(ctx context.Context, tx *sql.Tx, s S) error {
			return saveSection(ctx, tx, kind, s)
		},
	}, nil)
}

func saveSection(ctx context.Context, tx *sql.Tx, kind string, s model.Section) error {
	meta := s.Meta()
	content, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding %s section: %w", kind, err)
	}

	if meta.ID == "" {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sections (id, kind, content, display_order, is_active) VALUES (?, ?, ?, ?, ?)`,
			id, kind, string(content), meta.DisplayOrder, meta.IsActive,
		)
		if err != nil {
			return fmt.Errorf("creating %s section: %w", kind, err)
		}
		meta.ID = id
		return nil
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE sections SET content = ?, display_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND kind = ?`,
		string(content), meta.DisplayOrder, meta.IsActive, meta.ID, kind,
	)
	if err != nil {
		return fmt.Errorf("updating %s section: %w", kind, err)
	}
	return requireRow(result)
}

const sectionColumns = `id, content, display_order, is_active, created_at, updated_at`

func scanSection[T any, S sectionPtr[T]](row interface{ Scan(...any) error }) (S, error) {
	var (
		content string
		meta    model.SectionMeta
	)
	if err := row.Scan(&meta.ID, &content, &meta.DisplayOrder, &meta.IsActive, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
		return nil, err
	}

	s := S(new(T))
	if err := json.Unmarshal([]byte(content), s); err != nil {
		return nil, fmt.Errorf("decoding %s section: %w", s.Kind(), err)
	}
	// Columns win over whatever the stored content says.
	*s.Meta() = meta
	return s, nil
}

// GetSection returns a section of type T by ID, active or not.
func GetSection[T any, S sectionPtr[T]](ctx context.Context, db *sql.DB, id string) (S, error) {
	kind := kindOf[T, S]()
	s, err := scanSection[T, S](db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE id = ? AND kind = ?`, id, kind,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s section: %w", kind, err)
	}
	return s, nil
}

// CurrentSection returns the section the site shows for kind T: the first
// active one in display order. It returns nil if there is none.
func CurrentSection[T any, S sectionPtr[T]](ctx context.Context, db *sql.DB) (S, error) {
	kind := kindOf[T, S]()
	s, err := scanSection[T, S](db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE kind = ? AND is_active = 1
		 ORDER BY display_order, id LIMIT 1`, kind,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting current %s section: %w", kind, err)
	}
	return s, nil
}

// ListSections returns every section of kind T in display order.
func ListSections[T any, S sectionPtr[T]](ctx context.Context, db *sql.DB) ([]S, error) {
	kind := kindOf[T, S]()
	rows, err := db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE kind = ? ORDER BY display_order, id`, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s sections: %w", kind, err)
	}
	defer rows.Close()

	var sections []S
	for rows.Next() {
		s, err := scanSection[T, S](rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s section: %w", kind, err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// DeleteSection removes a section of the given kind.
func DeleteSection(ctx context.Context, db *sql.DB, kind, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM sections WHERE id = ? AND kind = ?`, id, kind)
	if err != nil {
		return fmt.Errorf("deleting %s section: %w", kind, err)
	}
	return requireRow(result)
}
