package models

import "testing"

func TestPointsFor(t *testing.T) {
	if got := PointsFor(ViolationDrunkDriving); got != 2 {
		t.Errorf("PointsFor(Drunk Driving) = %d, want 2", got)
	}
	if got := PointsFor(ViolationSpeeding); got != 2 {
		t.Errorf("PointsFor(Speeding) = %d, want 2", got)
	}
	if got := PointsFor(ViolationNoHelmet); got != 1 {
		t.Errorf("PointsFor(No Helmet) = %d, want 1", got)
	}
}

func TestDeductSuspendsAtZero(t *testing.T) {
	// 6 consecutive speeding violations on a fresh licence: 12 - 6*2 = 0
	l := DriverLicense{Points: StartingPoints, Status: LicenseActive}

	for i := 1; i <= 5; i++ {
		_, suspended := l.Deduct(ViolationSpeeding)
		if suspended {
			t.Fatalf("licence suspended early after %d deductions (points=%d)", i, l.Points)
		}
	}
	if l.Points != 2 {
		t.Fatalf("points after 5 deductions = %d, want 2", l.Points)
	}

	deducted, suspended := l.Deduct(ViolationSpeeding)
	if deducted != 2 {
		t.Errorf("deducted = %d, want 2", deducted)
	}
	if !suspended {
		t.Fatal("6th speeding violation must suspend the licence")
	}
	if l.Points != 0 {
		t.Errorf("points = %d, want 0", l.Points)
	}
	if l.Status != LicenseSuspended {
		t.Errorf("status = %q, want %q", l.Status, LicenseSuspended)
	}
}

func TestDeductFloorsAtZero(t *testing.T) {
	l := DriverLicense{Points: 1, Status: LicenseActive}
	l.Deduct(ViolationDrunkDriving)
	if l.Points != 0 {
		t.Errorf("points = %d, want 0 (never negative)", l.Points)
	}
	if l.Status != LicenseSuspended {
		t.Errorf("status = %q, want %q", l.Status, LicenseSuspended)
	}
}

func TestDeductOnSuspendedLicenseDoesNotRetrigger(t *testing.T) {
	l := DriverLicense{Points: 0, Status: LicenseSuspended}
	_, suspended := l.Deduct(ViolationNoHelmet)
	if suspended {
		t.Error("an already suspended licence must not report a fresh suspension")
	}
	if l.Points != 0 {
		t.Errorf("points = %d, want 0", l.Points)
	}
}
