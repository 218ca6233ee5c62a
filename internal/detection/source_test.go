package detection

import (
	"errors"
	"testing"
)

func TestStaticSource(t *testing.T) {
	src := StaticSource{Plate: "UK-07-AB-1234", Violation: "No Helmet"}
	got, err := src.Detect("frames/cam001/42.jpg")
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if got.LicensePlate != "UK-07-AB-1234" || got.ViolationType != "No Helmet" {
		t.Errorf("unexpected result: %+v", got)
	}
	if got.EvidenceRef != "frames/cam001/42.jpg" {
		t.Errorf("evidence ref = %q, want the input reference", got.EvidenceRef)
	}
}

func TestStaticSourceUnconfigured(t *testing.T) {
	var src StaticSource
	if _, err := src.Detect("x"); !errors.Is(err, ErrNoDetection) {
		t.Fatalf("expected ErrNoDetection, got %v", err)
	}
}
