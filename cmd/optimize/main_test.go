package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEvalLog(t *testing.T) {
	pv := NewParamVector()
	path := filepath.Join(t.TempDir(), "optimize_log.csv")

	l, err := openEvalLog(path, pv)
	if err != nil {
		t.Fatalf("openEvalLog: %v", err)
	}
	l.write(1, -0.5, 0.5, pv.DefaultVector())
	l.write(2, -0.75, 0.75, pv.DefaultVector())
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if len(rows[0]) != 3+pv.Dim() {
		t.Errorf("header has %d columns, want %d", len(rows[0]), 3+pv.Dim())
	}
	if rows[0][3] != pv.Specs[0].Name {
		t.Errorf("first parameter column = %q, want %q", rows[0][3], pv.Specs[0].Name)
	}
	if rows[2][0] != "2" || rows[2][2] != "0.750000" {
		t.Errorf("second row = %v", rows[2])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h04m05s"},
		{1499 * time.Millisecond, "0m01s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
