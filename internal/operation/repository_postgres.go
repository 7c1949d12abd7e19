package operation

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listOperationsQuery = `
		SELECT id, user_id, type, seller_name, COALESCE(seller_phone, ''), COALESCE(seller_email, ''),
			buyer_name, COALESCE(buyer_phone, ''), COALESCE(buyer_email, ''), COALESCE(property_type, ''),
			COALESCE(location, ''), COALESCE(price, ''), COALESCE(commission, ''), COALESCE(notes, ''),
			completed_at, created_at, updated_at
		FROM completed_operations
		WHERE user_id = $1
		ORDER BY completed_at DESC
	`
	insertOperationQuery = `
		INSERT INTO completed_operations (id, user_id, type, seller_name, seller_phone, seller_email,
			buyer_name, buyer_phone, buyer_email, property_type, location, price, commission, notes,
			completed_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	deleteOperationQuery = `DELETE FROM completed_operations WHERE id = $1 AND user_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Operation, error) {
	rows, err := r.db.QueryContext(ctx, listOperationsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	out := make([]Operation, 0)
	for rows.Next() {
		var (
			op  Operation
			typ string
		)
		if err := rows.Scan(&op.ID, &op.UserID, &typ, &op.SellerName, &op.SellerPhone, &op.SellerEmail,
			&op.BuyerName, &op.BuyerPhone, &op.BuyerEmail, &op.PropertyType, &op.Location, &op.Price,
			&op.Commission, &op.Notes, &op.CompletedAt, &op.CreatedAt, &op.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Type = ParseKind(typ)
		out = append(out, op)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, op Operation) (Operation, error) {
	_, err := r.db.ExecContext(ctx, insertOperationQuery,
		op.ID, op.UserID, string(op.Type), op.SellerName, op.SellerPhone, op.SellerEmail,
		op.BuyerName, op.BuyerPhone, op.BuyerEmail, op.PropertyType, op.Location, op.Price,
		op.Commission, op.Notes, op.CompletedAt, op.CreatedAt, op.UpdatedAt)
	if err != nil {
		return Operation{}, fmt.Errorf("insert operation: %w", err)
	}
	return op, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteOperationQuery, id, userID)
	if err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
