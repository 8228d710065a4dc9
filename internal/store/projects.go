package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

const projectColumns = `id, title, description, category, image_url, image_alt, is_featured, display_order, is_active, created_at, updated_at`

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	ActiveOnly   bool
	Category     string
	FeaturedOnly bool
}

// ProjectOrder returns the ordering manager for projects.
func ProjectOrder(db *sql.DB) *ordering.Manager[*model.Project] {
	return ordering.NewManager[*model.Project](&orderedTable[*model.Project]{
		db:    db,
		table: "projects",
		save:  saveProject,
	}, nil)
}

func saveProject(ctx context.Context, tx *sql.Tx, p *model.Project) error {
	if p.ID == "" {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, description, category, image_url, image_alt, is_featured, display_order, is_active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Title, p.Description, p.Category, p.ImageURL, nullString(p.ImageAlt), p.IsFeatured, p.DisplayOrder, p.IsActive,
		)
		if err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		p.ID = id
		return nil
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, category = ?, image_url = ?, image_alt = ?,
		 is_featured = ?, display_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Title, p.Description, p.Category, p.ImageURL, nullString(p.ImageAlt), p.IsFeatured, p.DisplayOrder, p.IsActive, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireRow(result)
}

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	p := &model.Project{}
	var alt sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL, &alt,
		&p.IsFeatured, &p.DisplayOrder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	p.ImageAlt = alt.String
	return p, err
}

// GetProject returns a project by ID, active or not.
func GetProject(ctx context.Context, db *sql.DB, id string) (*model.Project, error) {
	p, err := scanProject(db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// ListProjects returns projects matching f in display order.
func ListProjects(ctx context.Context, db *sql.DB, f ProjectFilter) ([]model.Project, error) {
	var (
		conds []string
		args  []any
	)
	if f.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.FeaturedOnly {
		conds = append(conds, "is_featured = 1")
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY display_order, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project.
func DeleteProject(ctx context.Context, db *sql.DB, id string) error {
	return deleteRow(ctx, db, "projects", id)
}
