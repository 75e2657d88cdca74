package database

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetBranchStatsIncludesTopPercentage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"branch", "count", "avg", "max"}).
		AddRow("CSE", 4, 71.25, 93.5).
		AddRow("ECE", 2, 60.00, 68.0)
	mock.ExpectQuery(regexp.QuoteMeta("MAX(percentage)")).WillReturnRows(rows)

	stats, err := GetBranchStats(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d branch stats, want 2", len(stats))
	}
	if stats[0].Branch != "CSE" || stats[0].Count != 4 {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
	if stats[0].AvgPercentage != 71.25 || stats[0].TopPercentage != 93.5 {
		t.Errorf("got avg=%v top=%v, want avg=71.25 top=93.5",
			stats[0].AvgPercentage, stats[0].TopPercentage)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// The deletion counts and the truncate must run in one transaction so the
// reported numbers cannot drift from what was deleted.
func TestClearAllDataRunsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM subjects")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE students, subjects RESTART IDENTITY CASCADE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	studentsDeleted, subjectsDeleted, err := ClearAllData(db)
	if err != nil {
		t.Fatal(err)
	}
	if studentsDeleted != 3 || subjectsDeleted != 9 {
		t.Errorf("got counts %d/%d, want 3/9", studentsDeleted, subjectsDeleted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestClearAllDataRollsBackOnCountFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnError(errors.New("connection closed"))
	mock.ExpectRollback()

	if _, _, err := ClearAllData(db); err == nil {
		t.Fatal("expected error when count fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
