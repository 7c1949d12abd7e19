package buyer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var buyerRowColumns = []string{"id", "user_id", "name", "email", "phone", "birthday", "type", "property_type", "features", "budget", "zona", "notes", "created_at", "updated_at"}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(buyerRowColumns).
		AddRow("b1", "u1", "Mario", "mario@example.com", "333", time.Date(1980, 3, 14, 0, 0, 0, 0, time.UTC), "Acquisto", "Appartamento", "", "250000", "Udine", "", now, now).
		AddRow("b2", "u1", "Anna", "", "", nil, "rental", "", "", "", "", "", now, now)
	mock.ExpectQuery("FROM buyers").WithArgs("u1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 buyers, got %d", len(got))
	}
	if got[0].Birthday != "1980-03-14" || got[0].Type != RequestPurchase {
		t.Fatalf("unexpected first buyer: %+v", got[0])
	}
	if got[1].Birthday != "" || got[1].Type != RequestRental {
		t.Fatalf("unexpected second buyer: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_NullBirthday(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	b := Buyer{ID: "b1", UserID: "u1", Name: "Mario", Type: RequestPurchase, CreatedAt: now, UpdatedAt: now}
	mock.ExpectExec("INSERT INTO buyers").
		WithArgs("b1", "u1", "Mario", "", "", nil, "purchase", "", "", "", "", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := NewPostgresRepository(db).Create(context.Background(), b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM buyers").WithArgs("b9", "u1").WillReturnRows(sqlmock.NewRows(buyerRowColumns))
	if _, err := NewPostgresRepository(db).Get(context.Background(), "u1", "b9"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
