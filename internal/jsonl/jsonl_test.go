package jsonl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type row struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "rows.jsonl")
	in := []row{{ID: "tt1", Score: 8.9}, {ID: "tt2", Score: 5.5}}

	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read[row](path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestWrite_OneObjectPerLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.jsonl")
	if err := Write(path, []row{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestReadJSON_WriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.json")
	in := map[string]float64{"accuracy": 0.9}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var out map[string]float64
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if out["accuracy"] != 0.9 {
		t.Fatalf("out = %v", out)
	}
}

func TestRead_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Read[row](filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
