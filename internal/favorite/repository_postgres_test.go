package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresAdd_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO client_favorites").
		WithArgs("f1", "u1", "b1", "buyer", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = NewPostgresRepository(db).Add(context.Background(), Favorite{ID: "f1", UserID: "u1", ClientID: "b1", ClientType: ClientBuyer, CreatedAt: now})
	if err != ErrAlreadyFavorite {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM client_favorites").WithArgs("u1", "seller").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "client_id", "client_type", "created_at"}).
			AddRow("f2", "u1", "s1", "seller", now))

	got, err := NewPostgresRepository(db).List(context.Background(), "u1", ClientSeller)
	if err != nil || len(got) != 1 || got[0].ClientType != ClientSeller {
		t.Fatalf("unexpected favorites %+v: %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
