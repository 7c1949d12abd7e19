package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	profileColumns = `id, user_id, COALESCE(full_name, ''), COALESCE(nickname, ''), COALESCE(email, ''),
		COALESCE(phone, ''), COALESCE(company, ''), avatar_url, role, created_at, updated_at`

	getProfileQuery = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	// a concurrent first access may already have created the row
	insertProfileQuery = `
		INSERT INTO profiles (id, user_id, full_name, nickname, email, phone, company, avatar_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING
	`
	updateProfileQuery = `
		UPDATE profiles
		SET full_name = $1,
			nickname = $2,
			email = $3,
			phone = $4,
			company = $5,
			avatar_url = $6,
			updated_at = $7
		WHERE user_id = $8
	`
	listUserIDsQuery = `SELECT user_id FROM profiles ORDER BY created_at`

	listApprovedQuery = `
		SELECT id, email, COALESCE(approved_by::text, ''), created_at
		FROM approved_emails
		ORDER BY created_at DESC
	`
	insertApprovedQuery = `
		INSERT INTO approved_emails (id, email, approved_by, created_at)
		VALUES ($1, $2, $3, $4)
	`
	deleteApprovedQuery = `DELETE FROM approved_emails WHERE id = $1`
	isApprovedQuery     = `SELECT EXISTS (SELECT 1 FROM approved_emails WHERE email = $1)`
)

// pgUniqueViolation is the SQLSTATE of a unique constraint violation.
const pgUniqueViolation = "23505"

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p      Profile
		avatar sql.NullString
		role   string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Nickname, &p.Email, &p.Phone, &p.Company,
		&avatar, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	if avatar.Valid {
		p.AvatarURL = &avatar.String
	}
	p.Role = Role(role)
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, getProfileQuery, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	if _, err := r.db.ExecContext(ctx, insertProfileQuery, p.ID, p.UserID, p.FullName, p.Nickname, p.Email,
		p.Phone, p.Company, p.AvatarURL, string(p.Role), p.CreatedAt, p.UpdatedAt); err != nil {
		return Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *PostgresRepository) Update(ctx context.Context, p Profile) (Profile, error) {
	res, err := r.db.ExecContext(ctx, updateProfileQuery, p.FullName, p.Nickname, p.Email, p.Phone, p.Company,
		p.AvatarURL, p.UpdatedAt, p.UserID)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *PostgresRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listUserIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("list profile users: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListApproved(ctx context.Context) ([]ApprovedEmail, error) {
	rows, err := r.db.QueryContext(ctx, listApprovedQuery)
	if err != nil {
		return nil, fmt.Errorf("list approved emails: %w", err)
	}
	defer rows.Close()

	out := make([]ApprovedEmail, 0)
	for rows.Next() {
		var e ApprovedEmail
		if err := rows.Scan(&e.ID, &e.Email, &e.ApprovedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) AddApproved(ctx context.Context, e ApprovedEmail) (ApprovedEmail, error) {
	var approvedBy any
	if e.ApprovedBy != "" {
		approvedBy = e.ApprovedBy
	}
	if _, err := r.db.ExecContext(ctx, insertApprovedQuery, e.ID, e.Email, approvedBy, e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ApprovedEmail{}, ErrEmailExists
		}
		return ApprovedEmail{}, fmt.Errorf("insert approved email: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) DeleteApproved(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteApprovedQuery, id)
	if err != nil {
		return fmt.Errorf("delete approved email: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEmailNotFound
	}
	return nil
}

func (r *PostgresRepository) IsApproved(ctx context.Context, email string) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, isApprovedQuery, email).Scan(&ok); err != nil {
		return false, fmt.Errorf("check approved email: %w", err)
	}
	return ok, nil
}
