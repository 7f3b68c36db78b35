package repository

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"cryosure/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConfigAppend_FillsDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertConfigSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Meat", models.SavedConfigActive, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewConfigSQLite(db).Append(testCtx(t), models.SavedConfig{
		Draft: models.ConfigDraft{StorageType: " Meat ", MinTemp: "-2", MaxTemp: "2"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestConfigAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertConfigSQL)).WillReturnError(errors.New("locked"))

	if err := NewConfigSQLite(db).Append(testCtx(t), models.SavedConfig{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfigList_BuildsFilters(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name  string
		from  time.Time
		to    time.Time
		typ   string
		query string
		args  []driver.Value
	}{
		{
			name:  "no filters",
			query: `SELECT id, created_at, status, draft FROM saved_configs ORDER BY created_at DESC`,
		},
		{
			name:  "all filters",
			from:  from,
			to:    to,
			typ:   "  DAIRY ",
			query: `SELECT id, created_at, status, draft FROM saved_configs WHERE created_at >= ? AND created_at <= ? AND lower(storage_type) = ? ORDER BY created_at DESC`,
			args:  []driver.Value{from, to, "dairy"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			defer db.Close()

			rows := sqlmock.NewRows([]string{"id", "created_at", "status", "draft"}).
				AddRow("c-1", from, "active", `{"storageType":"Dairy","minTemp":"1","maxTemp":"4","maxHumidity":"75"}`)
			q := mock.ExpectQuery(regexp.QuoteMeta(tc.query))
			if len(tc.args) > 0 {
				q = q.WithArgs(tc.args...)
			}
			q.WillReturnRows(rows)

			got, err := NewConfigSQLite(db).List(testCtx(t), tc.from, tc.to, tc.typ)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 1 || got[0].Draft.StorageType != "Dairy" || got[0].Draft.MaxHumidity != "75" {
				t.Fatalf("unexpected result %+v", got)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("mock expectations: %v", err)
			}
		})
	}
}

func TestConfigList_BadDraftJSON(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at", "status", "draft"}).
		AddRow("c-1", time.Now(), "active", `{not json`)
	mock.ExpectQuery(`SELECT id, created_at, status, draft FROM saved_configs`).WillReturnRows(rows)

	if _, err := NewConfigSQLite(db).List(testCtx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatal("expected decode error")
	}
}
