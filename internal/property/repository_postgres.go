package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	propertyColumns = `id, seller_id, COALESCE(codice_identificativo, ''), property_type, COALESCE(location, ''),
		COALESCE(price, ''), operation_type, COALESCE(features, ''), COALESCE(notes, ''), created_at, updated_at`

	listBySellersQuery = `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE seller_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`
	getPropertyByIDQuery = `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1
	`
	insertPropertyQuery = `
		INSERT INTO properties (id, seller_id, codice_identificativo, property_type, location, price, operation_type, features, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	updatePropertyQuery = `
		UPDATE properties
		SET codice_identificativo = $1,
			property_type = $2,
			location = $3,
			price = $4,
			operation_type = $5,
			features = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $9
	`
	deletePropertyQuery = `DELETE FROM properties WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(s scanner) (Property, error) {
	var p Property
	var op string
	err := s.Scan(&p.ID, &p.SellerID, &p.Code, &p.PropertyType, &p.Location, &p.Price, &op, &p.Features, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	p.OperationType = ParseOperationType(op)
	return p, err
}

func (r *PostgresRepository) ListBySellers(ctx context.Context, sellerIDs []string) ([]Property, error) {
	if len(sellerIDs) == 0 {
		return []Property{}, nil
	}
	rows, err := r.db.QueryContext(ctx, listBySellersQuery, pq.Array(sellerIDs))
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertyByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Property) (Property, error) {
	_, err := r.db.ExecContext(ctx, insertPropertyQuery,
		p.ID, p.SellerID, p.Code, p.PropertyType, p.Location, p.Price, string(p.OperationType), p.Features, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Property{}, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Property) (Property, error) {
	res, err := r.db.ExecContext(ctx, updatePropertyQuery,
		p.Code, p.PropertyType, p.Location, p.Price, string(p.OperationType), p.Features, p.Notes, p.UpdatedAt, p.ID)
	if err != nil {
		return Property{}, fmt.Errorf("update property: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Property{}, ErrNotFound
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePropertyQuery, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
