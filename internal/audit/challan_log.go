// Package audit keeps an append-only CSV trail of generated challans.
// Writes are best-effort; a failed append is logged and never blocks
// challan creation.
package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	logrus "github.com/sirupsen/logrus"
)

var header = []string{"timestamp", "license_number", "owner_name", "vehicle_type", "challan_type", "location", "amount", "challan_id", "uin"}

// Entry is one generated-challan row.
type Entry struct {
	LicenseNumber string
	OwnerName     string
	VehicleType   string
	ChallanType   string
	Location      string
	Amount        float64
	ChallanID     uint
	UIN           string
}

// ChallanLog appends entries to a CSV file, writing the header on
// first use.
type ChallanLog struct {
	mu   sync.Mutex
	path string
}

func NewChallanLog(path string) *ChallanLog {
	return &ChallanLog{path: path}
}

// Append writes one entry. Safe for concurrent use.
func (l *ChallanLog) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	record := []string{
		time.Now().Format(time.RFC3339),
		e.LicenseNumber,
		e.OwnerName,
		e.VehicleType,
		e.ChallanType,
		e.Location,
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		strconv.FormatUint(uint64(e.ChallanID), 10),
		e.UIN,
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// AppendBestEffort logs failures instead of returning them.
func (l *ChallanLog) AppendBestEffort(e Entry) {
	if err := l.Append(e); err != nil {
		logrus.WithError(err).Warn("challan audit log append failed")
	}
}
