package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"autofine/internal/models"
)

func TestDeductCreatesLicenseOnFirstViolation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &LicenseService{DB: db}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "dl_number"}).
			AddRow(9, "9999900000", "UK0720260001234"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "driver_licenses" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "driver_licenses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`UPDATE "driver_licenses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Deduct(9, models.ViolationSpeeding)
	if err != nil {
		t.Fatalf("Deduct returned error: %v", err)
	}
	if result.PointsDeducted != 2 {
		t.Errorf("deducted = %d, want 2 for speeding", result.PointsDeducted)
	}
	// first violation reduces from the opening balance of 12
	if result.License.Points != models.StartingPoints-2 {
		t.Errorf("points = %d, want %d", result.License.Points, models.StartingPoints-2)
	}
	if result.Suspended {
		t.Error("one violation must not suspend a fresh licence")
	}
	if result.License.DLNumber != "UK0720260001234" {
		t.Errorf("dl_number = %q, want the user's registered number", result.License.DLNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeductExistingLicenseSuspension(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := &LicenseService{DB: db, Notifier: notifier}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "dl_number"}).
			AddRow(9, "9999900000", "UK0720260001234"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "driver_licenses" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dl_number", "user_id", "points", "status"}).
			AddRow(5, "UK0720260001234", 9, 2, string(models.LicenseActive)))
	mock.ExpectExec(`UPDATE "driver_licenses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Deduct(9, models.ViolationDrunkDriving)
	if err != nil {
		t.Fatalf("Deduct returned error: %v", err)
	}
	if !result.Suspended {
		t.Fatal("dropping to zero points must suspend the licence")
	}
	if result.License.Status != models.LicenseSuspended {
		t.Errorf("status = %q, want Suspended", result.License.Status)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one suspension notification, got %d", len(notifier.messages))
	}
	if notifier.recipients[0] != "9999900000" {
		t.Errorf("notification went to %q, want the owner's phone", notifier.recipients[0])
	}
}

func TestDeductUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &LicenseService{DB: db}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Deduct(404, models.ViolationSpeeding)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
