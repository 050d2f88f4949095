package auditstore

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	rec := Record{
		ID:          "EVAL-1",
		PatientName: "Jane Doe",
		IntakeJSON:  `{"name":"Jane Doe"}`,
		ResultJSON:  `{"chief_complaint":"headache"}`,
		Report:      "HART Patient Evaluation",
	}
	if err := s.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get("EVAL-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.PatientName != "Jane Doe" || got.ResultJSON != rec.ResultJSON {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.CreatedAt == "" {
		t.Error("created_at should be filled on save")
	}
	if _, err := time.Parse(time.RFC3339Nano, got.CreatedAt); err != nil {
		t.Errorf("created_at not RFC3339: %q", got.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing record, got %+v", got)
	}
}

func TestSaveDuplicateID(t *testing.T) {
	s := openTestStore(t)
	rec := Record{ID: "EVAL-dup", IntakeJSON: "{}", ResultJSON: "{}"}
	if err := s.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(rec); err == nil {
		t.Fatal("expected primary key violation on duplicate id")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for i, ts := range []string{
		"2026-08-01T10:00:00Z",
		"2026-08-02T10:00:00Z",
		"2026-08-03T10:00:00Z",
	} {
		rec := Record{
			ID:         []string{"EVAL-a", "EVAL-b", "EVAL-c"}[i],
			CreatedAt:  ts,
			IntakeJSON: "{}",
			ResultJSON: "{}",
		}
		if err := s.Save(rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	records, err := s.List(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != "EVAL-c" || records[1].ID != "EVAL-b" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
}
