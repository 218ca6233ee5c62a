package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "challan_generation.csv")
	log := NewChallanLog(path)

	entries := []Entry{
		{LicenseNumber: "UK-07-AB-1234", ChallanType: "Signal Jumping", Amount: 1000, ChallanID: 1, UIN: "UIN-A"},
		{LicenseNumber: "UK-07-AB-1234", ChallanType: "Signal Jumping", Amount: 5000, ChallanID: 2, UIN: "UIN-B"},
	}
	for _, e := range entries {
		if err := log.Append(e); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2 entries", len(records))
	}
	if records[0][0] != "timestamp" {
		t.Errorf("first row = %v, want header", records[0])
	}
	if records[2][8] != "UIN-B" {
		t.Errorf("last uin = %q, want UIN-B", records[2][8])
	}
}
