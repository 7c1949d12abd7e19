package pending

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList_Filter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	cols := []string{"id", "name", "email", "phone", "request_type", "property_type", "location", "budget",
		"timeframe", "features", "notes", "processed", "client_id", "created_at", "processed_at"}
	mock.ExpectQuery("FROM pending_requests").WithArgs(false).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "Giulia", "g@example.com", "", "vendita", "", "Trieste", "", "", "", "", false, "", now, nil))
	mock.ExpectQuery("FROM pending_requests").WithArgs(nil).
		WillReturnRows(sqlmock.NewRows(cols))

	repo := NewPostgresRepository(db)
	unprocessed := false
	got, err := repo.List(context.Background(), &unprocessed)
	if err != nil || len(got) != 1 || got[0].ProcessedAt != nil {
		t.Fatalf("unexpected list %+v: %v", got, err)
	}
	if _, err := repo.List(context.Background(), nil); err != nil {
		t.Fatalf("List all: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresMarkProcessed_Already(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("UPDATE pending_requests").WithArgs("c1", now, "p1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM pending_requests").WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "request_type", "property_type", "location", "budget",
			"timeframe", "features", "notes", "processed", "client_id", "created_at", "processed_at"}).
			AddRow("p1", "Giulia", "g@example.com", "", "vendita", "", "", "", "", "", "", true, "c0", now, now))

	if err := NewPostgresRepository(db).MarkProcessed(context.Background(), "p1", "c1", now); err != ErrAlreadyProcessed {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
