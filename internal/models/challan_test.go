package models

import (
	"errors"
	"testing"
	"time"
)

func TestMarkPaidFromUnpaid(t *testing.T) {
	now := time.Now()
	c := Challan{Status: StatusUnpaid, ViolationType: ViolationSignalJumping}

	if err := c.MarkPaid("UKPAY-1", now); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if c.Status != StatusPaid {
		t.Errorf("status = %q, want %q", c.Status, StatusPaid)
	}
	if c.PaidAt == nil || !c.PaidAt.Equal(now) {
		t.Errorf("paid_at = %v, want %v", c.PaidAt, now)
	}
	if c.PaymentRef != "UKPAY-1" {
		t.Errorf("payment_ref = %q, want UKPAY-1", c.PaymentRef)
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	firstPayment := time.Now().Add(-time.Hour)
	c := Challan{Status: StatusPaid, PaidAt: &firstPayment, PaymentRef: "UKPAY-1"}

	if err := c.MarkPaid("UKPAY-2", time.Now()); err != nil {
		t.Fatalf("re-paying a paid challan must be a no-op success, got %v", err)
	}
	if !c.PaidAt.Equal(firstPayment) {
		t.Error("paid_at must not change on a repeated payment")
	}
	if c.PaymentRef != "UKPAY-1" {
		t.Error("payment_ref must not change on a repeated payment")
	}
}

func TestMarkPaidCourtChallanRejected(t *testing.T) {
	c := Challan{Status: StatusCourt, ViolationType: ViolationSignalJumping}
	err := c.MarkPaid("UKPAY-1", time.Now())
	if !errors.Is(err, ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got %v", err)
	}
}

func TestMarkPaidDrunkDrivingRejectedEvenWhenUnpaid(t *testing.T) {
	// court-only violations can never be paid online, regardless of a
	// stale stored status
	c := Challan{Status: StatusUnpaid, ViolationType: ViolationDrunkDriving}
	err := c.MarkPaid("UKPAY-1", time.Now())
	if !errors.Is(err, ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got %v", err)
	}
	if c.Status != StatusUnpaid {
		t.Error("rejected payment must not alter status")
	}
}

func TestMarkPaidDisputedRejected(t *testing.T) {
	c := Challan{Status: StatusDisputed, ViolationType: ViolationNoHelmet}
	err := c.MarkPaid("UKPAY-1", time.Now())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBeginDisputeOnlyFromUnpaid(t *testing.T) {
	c := Challan{Status: StatusUnpaid}
	if err := c.BeginDispute(); err != nil {
		t.Fatalf("BeginDispute from Unpaid returned error: %v", err)
	}
	if c.Status != StatusDisputed {
		t.Errorf("status = %q, want %q", c.Status, StatusDisputed)
	}

	for _, status := range []ChallanStatus{StatusCourt, StatusPaid, StatusDisputed} {
		c := Challan{Status: status}
		if err := c.BeginDispute(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("BeginDispute from %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestWaiveAndReopen(t *testing.T) {
	now := time.Now()

	c := Challan{Status: StatusDisputed}
	if err := c.Waive(now); err != nil {
		t.Fatalf("Waive returned error: %v", err)
	}
	if c.Status != StatusPaid || c.PaidAt == nil {
		t.Error("waived challan must be Paid with paid_at set")
	}
	if c.Notes == "" {
		t.Error("waived challan must carry a waived note")
	}

	c = Challan{Status: StatusDisputed}
	if err := c.ReopenFromDispute(); err != nil {
		t.Fatalf("ReopenFromDispute returned error: %v", err)
	}
	if c.Status != StatusUnpaid {
		t.Errorf("status = %q, want %q", c.Status, StatusUnpaid)
	}

	c = Challan{Status: StatusUnpaid}
	if err := c.Waive(now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Waive from Unpaid: expected ErrInvalidTransition, got %v", err)
	}
}

func TestIsOverdue(t *testing.T) {
	due := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	c := Challan{Status: StatusUnpaid, DueDate: due}
	if c.IsOverdue(due.AddDate(0, 0, -1)) {
		t.Error("challan must not be overdue before its due date")
	}
	if !c.IsOverdue(due.AddDate(0, 0, 1)) {
		t.Error("unpaid challan past its due date must be overdue")
	}

	paid := Challan{Status: StatusPaid, DueDate: due}
	if paid.IsOverdue(due.AddDate(0, 0, 100)) {
		t.Error("paid challan can never be overdue")
	}

	court := Challan{Status: StatusCourt, DueDate: due}
	if !court.IsOverdue(due.AddDate(0, 0, 1)) {
		t.Error("court challan past its due date is overdue")
	}
}
