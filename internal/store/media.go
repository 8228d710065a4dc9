package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/model"
)

// CreateMedia stores an uploaded object. m.ID and m.CreatedAt are filled in.
func CreateMedia(ctx context.Context, db *sql.DB, m *model.Media, data []byte) error {
	m.ID = uuid.NewString()
	m.Size = int64(len(data))
	_, err := db.ExecContext(ctx,
		`INSERT INTO media (id, bucket, path, mime, size, data) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Bucket, m.Path, m.MIME, m.Size, data,
	)
	if err != nil {
		return fmt.Errorf("storing media: %w", err)
	}

	return db.QueryRowContext(ctx,
		`SELECT created_at FROM media WHERE id = ?`, m.ID,
	).Scan(&m.CreatedAt)
}

// GetMedia returns an object and its bytes by bucket and path.
func GetMedia(ctx context.Context, db *sql.DB, bucket, path string) (*model.Media, []byte, error) {
	m := &model.Media{}
	var data []byte
	err := db.QueryRowContext(ctx,
		`SELECT id, bucket, path, mime, size, data, created_at FROM media WHERE bucket = ? AND path = ?`,
		bucket, path,
	).Scan(&m.ID, &m.Bucket, &m.Path, &m.MIME, &m.Size, &data, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("getting media: %w", err)
	}
	return m, data, nil
}

// ListMedia returns metadata for every object in bucket, newest first.
func ListMedia(ctx context.Context, db *sql.DB, bucket string) ([]model.Media, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, bucket, path, mime, size, created_at FROM media WHERE bucket = ?
		 ORDER BY created_at DESC, path DESC`, bucket,
	)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	defer rows.Close()

	var list []model.Media
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.ID, &m.Bucket, &m.Path, &m.MIME, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// DeleteMedia removes an object.
func DeleteMedia(ctx context.Context, db *sql.DB, bucket, path string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM media WHERE bucket = ? AND path = ?`, bucket, path)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
