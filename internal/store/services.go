package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

const serviceColumns = `id, icon, title, description, color, category, display_order, is_active, created_at, updated_at`

// ServiceOrder returns the ordering manager for services. All writes to
// services go through it.
func ServiceOrder(db *sql.DB) *ordering.Manager[*model.Service] {
	return ordering.NewManager[*model.Service](&orderedTable[*model.Service]{
		db:    db,
		table: "services",
		save:  saveService,
	}, nil)
}

func saveService(ctx context.Context, tx *sql.Tx, s *model.Service) error {
	if s.ID == "" {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO services (id, icon, title, description, color, category, display_order, is_active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, s.Icon, s.Title, s.Description, s.Color, s.Category, s.DisplayOrder, s.IsActive,
		)
		if err != nil {
			return fmt.Errorf("creating service: %w", err)
		}
		s.ID = id
		return nil
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE services SET icon = ?, title = ?, description = ?, color = ?, category = ?,
		 display_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		s.Icon, s.Title, s.Description, s.Color, s.Category, s.DisplayOrder, s.IsActive, s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}
	return requireRow(result)
}

func scanService(row interface{ Scan(...any) error }) (*model.Service, error) {
	s := &model.Service{}
	err := row.Scan(&s.ID, &s.Icon, &s.Title, &s.Description, &s.Color, &s.Category,
		&s.DisplayOrder, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetService returns a service by ID, active or not.
func GetService(ctx context.Context, db *sql.DB, id string) (*model.Service, error) {
	s, err := scanService(db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting service: %w", err)
	}
	return s, nil
}

// ListServices returns services in display order. The public site passes
// activeOnly; the admin panel sees everything.
func ListServices(ctx context.Context, db *sql.DB, activeOnly bool) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		services = append(services, *s)
	}
	return services, rows.Err()
}

// DeleteService removes a service. It returns ordering.ErrNotFound if there
// was nothing to delete.
func DeleteService(ctx context.Context, db *sql.DB, id string) error {
	return deleteRow(ctx, db, "services", id)
}

func deleteRow(ctx context.Context, db *sql.DB, table, id string) error {
	result, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return requireRow(result)
}
