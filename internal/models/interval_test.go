package models

import (
	"testing"
	"time"
)

func TestPGIntervalScan(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  time.Duration
	}{
		{"clock format", "01:30:00", 90 * time.Minute},
		{"seconds format", "5400 seconds", 90 * time.Minute},
		{"zero clock", "00:00:00", 0},
		{"empty", "", 0},
		{"bytes", []byte("00:45:00"), 45 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d PGInterval
			if err := d.Scan(tt.input); err != nil {
				t.Fatalf("Scan(%v) error: %v", tt.input, err)
			}
			if d.Duration() != tt.want {
				t.Fatalf("Scan(%v) = %v, want %v", tt.input, d.Duration(), tt.want)
			}
		})
	}
}

func TestPGIntervalScanInvalid(t *testing.T) {
	var d PGInterval
	if err := d.Scan("three hours"); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestPGIntervalValue(t *testing.T) {
	d := PGInterval(90 * time.Minute)
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if v != "5400 seconds" {
		t.Fatalf("Value() = %v, want %q", v, "5400 seconds")
	}
}

func TestPGIntervalString(t *testing.T) {
	d := PGInterval(time.Hour + 5*time.Minute + 9*time.Second)
	if got := d.String(); got != "01:05:09" {
		t.Fatalf("String() = %q, want %q", got, "01:05:09")
	}
}
