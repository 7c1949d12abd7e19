package clients

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
	upsertClientQuery = `
		INSERT INTO clients (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	insertRequestQuery = `
		INSERT INTO client_requests (id, client_id, request_type, property_type, location, budget, timeframe, features, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	listClientsQuery = `
		SELECT id, name, email, COALESCE(phone, ''), created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
	`
	requestColumns = `id, client_id, request_type, COALESCE(property_type, ''), COALESCE(location, ''),
		COALESCE(budget, ''), COALESCE(timeframe, ''), COALESCE(features, ''), COALESCE(notes, ''), status,
		COALESCE(processed_by, ''), processed_at, created_at, updated_at`

	// $1 = '' lists every status
	listRequestsQuery = `
		SELECT ` + requestColumns + `
		FROM client_requests
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC
	`
	updateRequestStatusQuery = `
		UPDATE client_requests
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = $3
		WHERE id = $4
		RETURNING ` + requestColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullString maps "" to NULL for optional text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) SaveLead(ctx context.Context, c Client, req Request) (Client, Request, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Client{}, Request{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := tx.QueryRowContext(ctx, upsertClientQuery, c.ID, c.Name, c.Email, nullString(c.Phone), c.CreatedAt, c.UpdatedAt).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return Client{}, Request{}, fmt.Errorf("upsert client: %w", err)
	}
	req.ClientID = c.ID
	if _, err := tx.ExecContext(ctx, insertRequestQuery, req.ID, req.ClientID, string(req.RequestType),
		nullString(req.PropertyType), nullString(req.Location), nullString(req.Budget), nullString(req.Timeframe),
		nullString(req.Features), nullString(req.Notes), string(req.Status), req.CreatedAt, req.UpdatedAt); err != nil {
		return Client{}, Request{}, fmt.Errorf("insert client request: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Client{}, Request{}, err
	}
	return c, req, nil
}

func (r *PostgresRepository) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := r.db.QueryContext(ctx, listClientsQuery)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]Client, 0)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (Request, error) {
	var (
		req         Request
		typ, status string
		processedAt sql.NullTime
	)
	err := s.Scan(&req.ID, &req.ClientID, &typ, &req.PropertyType, &req.Location, &req.Budget, &req.Timeframe,
		&req.Features, &req.Notes, &status, &req.ProcessedBy, &processedAt, &req.CreatedAt, &req.UpdatedAt)
	req.RequestType = ParseRequestType(typ)
	req.Status = Status(status)
	if processedAt.Valid {
		req.ProcessedAt = &processedAt.Time
	}
	return req, err
}

func (r *PostgresRepository) ListRequests(ctx context.Context, status Status) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, listRequestsQuery, string(status))
	if err != nil {
		return nil, fmt.Errorf("list client requests: %w", err)
	}
	defer rows.Close()

	out := make([]Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateRequestStatus(ctx context.Context, id string, status Status, by string, at time.Time) (Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, updateRequestStatusQuery, string(status), by, at, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("update client request: %w", err)
	}
	return req, nil
}
