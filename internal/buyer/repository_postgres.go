package buyer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	buyerColumns = `id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''), birthday, type,
		COALESCE(property_type, ''), COALESCE(features, ''), COALESCE(budget, ''), COALESCE(zona, ''),
		COALESCE(notes, ''), created_at, updated_at`

	listBuyersQuery = `
		SELECT ` + buyerColumns + `
		FROM buyers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	getBuyerQuery = `
		SELECT ` + buyerColumns + `
		FROM buyers
		WHERE id = $1 AND user_id = $2
	`
	insertBuyerQuery = `
		INSERT INTO buyers (id, user_id, name, email, phone, birthday, type, property_type, features, budget, zona, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	updateBuyerQuery = `
		UPDATE buyers
		SET name = $1,
			email = $2,
			phone = $3,
			birthday = $4,
			type = $5,
			property_type = $6,
			features = $7,
			budget = $8,
			zona = $9,
			notes = $10,
			updated_at = $11
		WHERE id = $12 AND user_id = $13
	`
	deleteBuyerQuery = `DELETE FROM buyers WHERE id = $1 AND user_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuyer(s scanner) (Buyer, error) {
	var (
		b        Buyer
		birthday sql.NullTime
		typ      string
	)
	err := s.Scan(&b.ID, &b.UserID, &b.Name, &b.Email, &b.Phone, &birthday, &typ,
		&b.PropertyType, &b.Features, &b.Budget, &b.Zone, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if birthday.Valid {
		b.Birthday = birthday.Time.Format(dateLayout)
	}
	b.Type = ParseRequestType(typ)
	return b, err
}

// nullDate maps an empty birthday to NULL.
func nullDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Buyer, error) {
	rows, err := r.db.QueryContext(ctx, listBuyersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list buyers: %w", err)
	}
	defer rows.Close()

	out := make([]Buyer, 0)
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan buyer: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (Buyer, error) {
	b, err := scanBuyer(r.db.QueryRowContext(ctx, getBuyerQuery, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Buyer{}, ErrNotFound
		}
		return Buyer{}, fmt.Errorf("get buyer: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, b Buyer) (Buyer, error) {
	_, err := r.db.ExecContext(ctx, insertBuyerQuery,
		b.ID, b.UserID, b.Name, b.Email, b.Phone, nullDate(b.Birthday), string(b.Type),
		b.PropertyType, b.Features, b.Budget, b.Zone, b.Notes, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return Buyer{}, fmt.Errorf("insert buyer: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b Buyer) (Buyer, error) {
	res, err := r.db.ExecContext(ctx, updateBuyerQuery,
		b.Name, b.Email, b.Phone, nullDate(b.Birthday), string(b.Type), b.PropertyType,
		b.Features, b.Budget, b.Zone, b.Notes, b.UpdatedAt, b.ID, b.UserID)
	if err != nil {
		return Buyer{}, fmt.Errorf("update buyer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Buyer{}, ErrNotFound
	}
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBuyerQuery, id, userID)
	if err != nil {
		return fmt.Errorf("delete buyer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
