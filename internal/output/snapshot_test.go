package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"jobdigest/internal/model"
)

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_found.json")
	jobs := []model.Job{
		{
			Title:    "Software Engineer",
			Company:  "Acme",
			Location: "Singapore",
			URL:      "https://x/1",
			Source:   "RemoteOK",
			Salary:   "$8000",
		},
	}

	if err := WriteSnapshot(path, jobs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []model.Job
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://x/1" {
		t.Errorf("unexpected snapshot contents: %+v", got)
	}
	// Indented output, not a single line.
	if data[0] != '[' || data[1] != '\n' {
		t.Errorf("expected indented JSON array, got %q", string(data[:20]))
	}
}

func TestWriteSnapshot_EmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_found.json")

	if err := WriteSnapshot(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array, got %q", string(data))
	}
}

func TestWriteSnapshot_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_found.json")
	if err := os.WriteFile(path, []byte("old contents"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := WriteSnapshot(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected snapshot replaced, got %q", string(data))
	}
}
