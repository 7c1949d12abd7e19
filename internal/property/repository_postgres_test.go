package property

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var propertyRowColumns = []string{"id", "seller_id", "codice_identificativo", "property_type", "location", "price", "operation_type", "features", "notes", "created_at", "updated_at"}

func TestPostgresListBySellers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(propertyRowColumns).
		AddRow("p1", "s1", "UD-01", "Appartamento", "Udine", "200000", "vendita", "terrazzo", "", now, now).
		AddRow("p2", "s2", "", "Villa", "Trieste", "", "rent", "", "", now, now)
	mock.ExpectQuery("FROM properties").WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)

	got, err := repo.ListBySellers(context.Background(), []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("ListBySellers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(got))
	}
	if got[0].OperationType != OperationSale || got[1].OperationType != OperationRent {
		t.Fatalf("operation types not normalized: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListBySellers_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	got, err := NewPostgresRepository(db).ListBySellers(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result without query, got %v %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM properties").WithArgs("missing").WillReturnRows(sqlmock.NewRows(propertyRowColumns))

	if _, err := NewPostgresRepository(db).GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	p := Property{ID: "p1", PropertyType: "Casa", OperationType: OperationRent, UpdatedAt: time.Now()}
	mock.ExpectExec("UPDATE properties").
		WithArgs("", "Casa", "", "", "rent", "", "", p.UpdatedAt, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM properties").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(context.Background(), p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := repo.Delete(context.Background(), "p1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound when no row deleted, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
