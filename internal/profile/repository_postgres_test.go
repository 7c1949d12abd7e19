package profile

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var profileRowColumns = []string{"id", "user_id", "full_name", "nickname", "email", "phone", "company", "avatar_url", "role", "created_at", "updated_at"}

func TestPostgresGetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM profiles").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow("p1", "u1", "Filippo", "", "f@example.com", "", "", nil, "admin", now, now))

	p, err := NewPostgresRepository(db).GetByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if p.Role != RoleAdmin || p.AvatarURL != nil {
		t.Fatalf("unexpected profile: %+v", p)
	}

	mock.ExpectQuery("FROM profiles").WithArgs("u2").WillReturnRows(sqlmock.NewRows(profileRowColumns))
	if _, err := NewPostgresRepository(db).GetByUserID(context.Background(), "u2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresAddApproved_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO approved_emails").
		WithArgs("e1", "a@b.it", nil, now).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err = NewPostgresRepository(db).AddApproved(context.Background(), ApprovedEmail{ID: "e1", Email: "a@b.it", CreatedAt: now})
	if err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListUserIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2"))

	ids, err := NewPostgresRepository(db).ListUserIDs(context.Background())
	if err != nil || len(ids) != 2 {
		t.Fatalf("unexpected ids %v: %v", ids, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
