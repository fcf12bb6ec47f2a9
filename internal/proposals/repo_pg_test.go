package proposals

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	p := Proposal{
		ID:           "prop-1",
		UserID:       "user-1",
		SearchString: "todo app",
		Location:     "Anywhere",
		Budget:       1000,
		Payload:      map[string]any{"_id": "prop-1", "project_title": "Todo App"},
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO proposals").
		WithArgs(
			p.ID,
			p.UserID,
			p.SearchString,
			p.Location,
			p.Budget,
			sqlmock.AnyArg(), // payload json
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDUnmarshalsPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "search_string", "location", "budget", "payload", "created_at"}).
		AddRow("prop-1", "user-1", "todo app", "Anywhere", 1000.0, []byte(`{"project_title":"Todo App"}`), created)
	mock.ExpectQuery("SELECT id, user_id, search_string, location, budget, payload, created_at").
		WithArgs("prop-1").
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Payload["project_title"] != "Todo App" {
		t.Fatalf("payload not decoded: %v", p.Payload)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM proposals").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
