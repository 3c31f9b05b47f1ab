// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store is the persistence layer for form entries and queries.
// Every method is a single statement or a short transaction; callers never
// see driver-specific errors other than through wrapping.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/querydesk/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrQueryResolved = errors.New("query is resolved")
)

const queryColumns = `id, title, description, status, created_at, updated_at, form_data_id, created_by`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuery(row rowScanner) (models.Query, error) {
	var (
		q           models.Query
		description sql.NullString
		createdBy   sql.NullString
	)
	err := row.Scan(&q.ID, &q.Title, &description, &q.Status, &q.CreatedAt, &q.UpdatedAt, &q.FormDataID, &createdBy)
	if err != nil {
		return models.Query{}, err
	}
	q.Description = nullableString(description)
	q.CreatedBy = nullableString(createdBy)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	return q, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getQuery(ctx context.Context, q querier, id string) (models.Query, error) {
	row := q.QueryRowContext(ctx, `SELECT `+queryColumns+` FROM queries WHERE id = $1`, id)
	query, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Query{}, ErrNotFound
	}
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to load query: %w", err)
	}
	return query, nil
}

// GetQuery loads a single query by id
func (s *Store) GetQuery(ctx context.Context, id string) (models.Query, error) {
	return getQuery(ctx, s.db, id)
}

// ListFormDataWithQueries returns every form entry with its queries attached,
// using one LEFT JOIN. Entries are ordered by creation, queries likewise.
func (s *Store) ListFormDataWithQueries(ctx context.Context) ([]models.FormData, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.question, f.answer,
		       q.id, q.title, q.description, q.status, q.created_at, q.updated_at, q.form_data_id, q.created_by
		FROM form_data f
		LEFT JOIN queries q ON q.form_data_id = f.id
		ORDER BY f.created_at, f.id, q.created_at, q.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query form data: %w", err)
	}
	defer rows.Close()

	entries := []models.FormData{}
	index := map[string]int{}
	for rows.Next() {
		var (
			fd                                models.FormData
			qID, qTitle, qStatus, qFormDataID sql.NullString
			qDescription, qCreatedBy          sql.NullString
			qCreatedAt, qUpdatedAt            sql.NullTime
		)
		err := rows.Scan(&fd.ID, &fd.Question, &fd.Answer,
			&qID, &qTitle, &qDescription, &qStatus, &qCreatedAt, &qUpdatedAt, &qFormDataID, &qCreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form data: %w", err)
		}

		i, seen := index[fd.ID]
		if !seen {
			fd.Queries = []models.Query{}
			entries = append(entries, fd)
			i = len(entries) - 1
			index[fd.ID] = i
		}

		if !qID.Valid {
			continue
		}
		entries[i].Queries = append(entries[i].Queries, models.Query{
			ID:          qID.String,
			Title:       qTitle.String,
			Description: nullableString(qDescription),
			Status:      models.QueryStatus(qStatus.String),
			CreatedAt:   qCreatedAt.Time.UTC(),
			UpdatedAt:   qUpdatedAt.Time.UTC(),
			FormDataID:  qFormDataID.String,
			CreatedBy:   nullableString(qCreatedBy),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate form data: %w", err)
	}

	return entries, nil
}

// InsertQuery stores q and returns the row as persisted. A missing parent
// form entry surfaces as the driver's foreign key error.
func (s *Store) InsertQuery(ctx context.Context, q models.Query) (models.Query, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO queries (id, title, description, status, created_at, updated_at, form_data_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, q.ID, q.Title, q.Description, string(q.Status), q.CreatedAt, q.UpdatedAt, q.FormDataID, q.CreatedBy)
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to insert query: %w", err)
	}

	created, err := getQuery(ctx, tx, q.ID)
	if err != nil {
		return models.Query{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Query{}, fmt.Errorf("failed to commit query: %w", err)
	}
	return created, nil
}

// ResolveQuery sets status to RESOLVED whatever the current status is
func (s *Store) ResolveQuery(ctx context.Context, id string, at time.Time) (models.Query, error) {
	return s.update(ctx, id, func(tx *sql.Tx) (sql.Result, error) {
		return tx.ExecContext(ctx, `
			UPDATE queries SET status = $1, updated_at = $2 WHERE id = $3
		`, string(models.StatusResolved), at, id)
	})
}

// UpdateQueryDescription changes the description of an OPEN query.
// Resolved queries yield ErrQueryResolved.
func (s *Store) UpdateQueryDescription(ctx context.Context, id string, description *string, at time.Time) (models.Query, error) {
	return s.update(ctx, id, func(tx *sql.Tx) (sql.Result, error) {
		return tx.ExecContext(ctx, `
			UPDATE queries SET description = $1, updated_at = $2 WHERE id = $3 AND status = $4
		`, description, at, id, string(models.StatusOpen))
	})
}

func (s *Store) update(ctx context.Context, id string, exec func(tx *sql.Tx) (sql.Result, error)) (models.Query, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := exec(tx)
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to update query: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Query{}, fmt.Errorf("failed to verify update: %w", err)
	}

	q, err := getQuery(ctx, tx, id)
	if err != nil {
		return models.Query{}, err
	}
	if n == 0 {
		// the row exists, so the status guard rejected the update
		return models.Query{}, ErrQueryResolved
	}

	if err := tx.Commit(); err != nil {
		return models.Query{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return q, nil
}

// DeleteQuery removes the row permanently
func (s *Store) DeleteQuery(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM queries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete query: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to verify delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
