package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

const showreelColumns = `id, media_type, media_url, alt, title, description, display_order, is_active, created_at, updated_at`

// ShowreelOrder returns the ordering manager for showreel entries.
func ShowreelOrder(db *sql.DB) *ordering.Manager[*model.ShowreelEntry] {
	return ordering.NewManager[*model.ShowreelEntry](&orderedTable[*model.ShowreelEntry]{
		db:    db,
		table: "showreel",
		save:  saveShowreelEntry,
	}, nil)
}

func saveShowreelEntry(ctx context.Context, tx *sql.Tx, e *model.ShowreelEntry) error {
	if e.ID == "" {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO showreel (id, media_type, media_url, alt, title, description, display_order, is_active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, e.MediaType, e.MediaURL, nullString(e.Alt), nullString(e.Title), nullString(e.Description), e.DisplayOrder, e.IsActive,
		)
		if err != nil {
			return fmt.Errorf("creating showreel entry: %w", err)
		}
		e.ID = id
		return nil
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE showreel SET media_type = ?, media_url = ?, alt = ?, title = ?, description = ?,
		 display_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		e.MediaType, e.MediaURL, nullString(e.Alt), nullString(e.Title), nullString(e.Description), e.DisplayOrder, e.IsActive, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating showreel entry: %w", err)
	}
	return requireRow(result)
}

func scanShowreelEntry(row interface{ Scan(...any) error }) (*model.ShowreelEntry, error) {
	e := &model.ShowreelEntry{}
	var alt, title, desc sql.NullString
	err := row.Scan(&e.ID, &e.MediaType, &e.MediaURL, &alt, &title, &desc,
		&e.DisplayOrder, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	e.Alt, e.Title, e.Description = alt.String, title.String, desc.String
	return e, err
}

// GetShowreelEntry returns a showreel entry by ID, active or not.
func GetShowreelEntry(ctx context.Context, db *sql.DB, id string) (*model.ShowreelEntry, error) {
	e, err := scanShowreelEntry(db.QueryRowContext(ctx,
		`SELECT `+showreelColumns+` FROM showreel WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting showreel entry: %w", err)
	}
	return e, nil
}

// ListShowreel returns showreel entries in display order.
func ListShowreel(ctx context.Context, db *sql.DB, activeOnly bool) ([]model.ShowreelEntry, error) {
	query := `SELECT ` + showreelColumns + ` FROM showreel`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing showreel: %w", err)
	}
	defer rows.Close()

	var entries []model.ShowreelEntry
	for rows.Next() {
		e, err := scanShowreelEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning showreel entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteShowreelEntry removes a showreel entry.
func DeleteShowreelEntry(ctx context.Context, db *sql.DB, id string) error {
	return deleteRow(ctx, db, "showreel", id)
}
