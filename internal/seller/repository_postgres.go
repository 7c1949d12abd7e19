package seller

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
	sellerColumns = `id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''), birthday, status,
		COALESCE(notes, ''), created_at, updated_at`

	listSellersQuery = `
		SELECT ` + sellerColumns + `
		FROM sellers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	getSellerQuery = `
		SELECT ` + sellerColumns + `
		FROM sellers
		WHERE id = $1 AND user_id = $2
	`
	insertSellerQuery = `
		INSERT INTO sellers (id, user_id, name, email, phone, birthday, status, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	updateSellerQuery = `
		UPDATE sellers
		SET name = $1,
			email = $2,
			phone = $3,
			birthday = $4,
			status = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $8 AND user_id = $9
	`
	deleteSellerQuery = `DELETE FROM sellers WHERE id = $1 AND user_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeller(sc scanner) (Seller, error) {
	var (
		s        Seller
		birthday sql.NullTime
		status   string
	)
	err := sc.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.Phone, &birthday, &status, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if birthday.Valid {
		s.Birthday = birthday.Time.Format(dateLayout)
	}
	s.Status = ParseStatus(status)
	return s, err
}

func nullDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Seller, error) {
	rows, err := r.db.QueryContext(ctx, listSellersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	out := make([]Seller, 0)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (Seller, error) {
	s, err := scanSeller(r.db.QueryRowContext(ctx, getSellerQuery, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Seller{}, ErrNotFound
		}
		return Seller{}, fmt.Errorf("get seller: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s Seller) (Seller, error) {
	_, err := r.db.ExecContext(ctx, insertSellerQuery,
		s.ID, s.UserID, s.Name, s.Email, s.Phone, nullDate(s.Birthday), string(s.Status), s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return Seller{}, fmt.Errorf("insert seller: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s Seller) (Seller, error) {
	res, err := r.db.ExecContext(ctx, updateSellerQuery,
		s.Name, s.Email, s.Phone, nullDate(s.Birthday), string(s.Status), s.Notes, s.UpdatedAt, s.ID, s.UserID)
	if err != nil {
		return Seller{}, fmt.Errorf("update seller: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Seller{}, ErrNotFound
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteSellerQuery, id, userID)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
