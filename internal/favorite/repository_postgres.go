package favorite

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addFavoriteQuery = `
		INSERT INTO client_favorites (id, user_id, client_id, client_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, client_id, client_type) DO NOTHING
	`
	removeFavoriteQuery = `
		DELETE FROM client_favorites
		WHERE user_id = $1 AND client_id = $2 AND client_type = $3
	`
	listFavoritesQuery = `
		SELECT id, user_id, client_id, client_type, created_at
		FROM client_favorites
		WHERE user_id = $1 AND ($2 = '' OR client_type = $2)
		ORDER BY created_at DESC
	`
	existsFavoriteQuery = `
		SELECT EXISTS (
			SELECT 1 FROM client_favorites
			WHERE user_id = $1 AND client_id = $2 AND client_type = $3
		)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, f Favorite) (Favorite, error) {
	res, err := r.db.ExecContext(ctx, addFavoriteQuery, f.ID, f.UserID, f.ClientID, string(f.ClientType), f.CreatedAt)
	if err != nil {
		return Favorite{}, fmt.Errorf("add favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Favorite{}, ErrAlreadyFavorite
	}
	return f, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, clientID string, typ ClientType) error {
	res, err := r.db.ExecContext(ctx, removeFavoriteQuery, userID, clientID, string(typ))
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, typ ClientType) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx, listFavoritesQuery, userID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		var (
			f    Favorite
			kind string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.ClientID, &kind, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.ClientType = ClientType(kind)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, clientID string, typ ClientType) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, existsFavoriteQuery, userID, clientID, string(typ)).Scan(&ok); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}
