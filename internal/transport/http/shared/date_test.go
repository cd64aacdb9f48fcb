package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parsed %v, want %v", got, want)
	}

	if _, err := ParseDate("02/03/2026"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty value, got %v", got)
	}

	got, err = ParseOptionalDate("2026-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Day() != 10 {
		t.Fatalf("unexpected parsed value: %v", got)
	}
}

func TestFormatDatePtr(t *testing.T) {
	if FormatDatePtr(nil) != "" {
		t.Fatal("nil pointer should format as empty string")
	}
	d := time.Date(2026, 12, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatDatePtr(&d); got != "2026-12-09" {
		t.Fatalf("formatted %q", got)
	}
}
