package pending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	pendingColumns = `id, name, email, COALESCE(phone, ''), request_type, COALESCE(property_type, ''),
		COALESCE(location, ''), COALESCE(budget, ''), COALESCE(timeframe, ''), COALESCE(features, ''),
		COALESCE(notes, ''), processed, COALESCE(client_id::text, ''), created_at, processed_at`

	insertPendingQuery = `
		INSERT INTO pending_requests (id, name, email, phone, request_type, property_type, location, budget, timeframe, features, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	getPendingQuery = `
		SELECT ` + pendingColumns + `
		FROM pending_requests
		WHERE id = $1
	`
	// $1 NULL lists everything
	listPendingQuery = `
		SELECT ` + pendingColumns + `
		FROM pending_requests
		WHERE $1::boolean IS NULL OR processed = $1
		ORDER BY created_at DESC
	`
	markProcessedQuery = `
		UPDATE pending_requests
		SET processed = true, client_id = $1, processed_at = $2
		WHERE id = $3 AND processed = false
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPending(s scanner) (Request, error) {
	var (
		r           Request
		processedAt sql.NullTime
	)
	err := s.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.RequestType, &r.PropertyType, &r.Location, &r.Budget,
		&r.Timeframe, &r.Features, &r.Notes, &r.Processed, &r.ClientID, &r.CreatedAt, &processedAt)
	if processedAt.Valid {
		r.ProcessedAt = &processedAt.Time
	}
	return r, err
}

func (p *PostgresRepository) Create(ctx context.Context, r Request) (Request, error) {
	_, err := p.db.ExecContext(ctx, insertPendingQuery, r.ID, r.Name, r.Email, r.Phone, r.RequestType,
		r.PropertyType, r.Location, r.Budget, r.Timeframe, r.Features, r.Notes, r.CreatedAt)
	if err != nil {
		return Request{}, fmt.Errorf("insert pending request: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) Get(ctx context.Context, id string) (Request, error) {
	r, err := scanPending(p.db.QueryRowContext(ctx, getPendingQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("get pending request: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) List(ctx context.Context, processed *bool) ([]Request, error) {
	var arg any
	if processed != nil {
		arg = *processed
	}
	rows, err := p.db.QueryContext(ctx, listPendingQuery, arg)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	out := make([]Request, 0)
	for rows.Next() {
		r, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *PostgresRepository) MarkProcessed(ctx context.Context, id, clientID string, at time.Time) error {
	res, err := p.db.ExecContext(ctx, markProcessedQuery, clientID, at, id)
	if err != nil {
		return fmt.Errorf("mark pending request processed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := p.Get(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyProcessed
	}
	return nil
}
