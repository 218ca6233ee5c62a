package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"autofine/internal/models"
)

func TestCreatePlanSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PlanService{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "challans" .*FOR UPDATE`).
		WillReturnRows(challanRows(1, models.ViolationSignalJumping, models.StatusUnpaid, 6000))
	mock.ExpectQuery(`SELECT \* FROM "payment_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "payment_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	plan, err := svc.CreatePlan(1, 0, 3)
	if err != nil {
		t.Fatalf("CreatePlan returned error: %v", err)
	}
	if plan.TotalAmount != 6000 || plan.RemainingAmount != 6000 {
		t.Errorf("amounts = %v/%v, want 6000/6000", plan.TotalAmount, plan.RemainingAmount)
	}
	if plan.InstallmentAmount() != 2000 {
		t.Errorf("installment amount = %v, want 2000", plan.InstallmentAmount())
	}
	if plan.Status != models.PlanActive {
		t.Errorf("status = %q, want Active", plan.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreatePlanBelowThreshold(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PlanService{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "challans" .*FOR UPDATE`).
		WillReturnRows(challanRows(1, models.ViolationNoHelmet, models.StatusUnpaid, 1000))
	mock.ExpectRollback()

	_, err := svc.CreatePlan(1, 0, 3)
	if !errors.Is(err, models.ErrPolicyViolation) {
		t.Fatalf("expected ErrPolicyViolation, got %v", err)
	}
}

func TestCreatePlanDuplicateRejected(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PlanService{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "challans" .*FOR UPDATE`).
		WillReturnRows(challanRows(1, models.ViolationSignalJumping, models.StatusUnpaid, 6000))
	mock.ExpectQuery(`SELECT \* FROM "payment_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "challan_id"}).AddRow(7, 1))
	mock.ExpectRollback()

	_, err := svc.CreatePlan(1, 0, 3)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCreatePlanBadCount(t *testing.T) {
	svc := &PlanService{}
	_, err := svc.CreatePlan(1, 0, 0)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPayInstallmentCompletesPlanAndChallan(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PlanService{DB: db}

	planRow := sqlmock.NewRows([]string{"id", "challan_id", "total_amount", "remaining_amount", "installment_count", "current_installment", "status", "next_due_date"}).
		AddRow(7, 1, 6000, 2000, 3, 2, string(models.PlanActive), time.Now())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payment_plans" .*FOR UPDATE`).WillReturnRows(planRow)
	mock.ExpectExec(`UPDATE "payment_plans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "challans" .*FOR UPDATE`).
		WillReturnRows(challanRows(1, models.ViolationSignalJumping, models.StatusUnpaid, 6000))
	mock.ExpectExec(`UPDATE "challans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan, err := svc.PayInstallment(7)
	if err != nil {
		t.Fatalf("PayInstallment returned error: %v", err)
	}
	if plan.Status != models.PlanCompleted {
		t.Errorf("status = %q, want Completed", plan.Status)
	}
	if plan.RemainingAmount > 0 {
		t.Errorf("remaining = %v, want <= 0", plan.RemainingAmount)
	}
	if plan.CurrentInstallment != 3 {
		t.Errorf("current installment = %d, want 3", plan.CurrentInstallment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPayInstallmentInactivePlan(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PlanService{DB: db}

	planRow := sqlmock.NewRows([]string{"id", "challan_id", "total_amount", "remaining_amount", "installment_count", "status"}).
		AddRow(7, 1, 6000, 0, 3, string(models.PlanCompleted))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payment_plans" .*FOR UPDATE`).WillReturnRows(planRow)
	mock.ExpectRollback()

	_, err := svc.PayInstallment(7)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
