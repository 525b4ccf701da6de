package sample

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/table"
)

func TestSample_RowCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		ratio float64
		want  int
	}{
		{name: "tenth", n: 100, ratio: 0.1, want: 10},
		{name: "floor", n: 7, ratio: 0.5, want: 3},
		{name: "all", n: 5, ratio: 1.0, want: 5},
		{name: "single row small ratio", n: 1, ratio: 0.1, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rows := make([]string, tt.n)
			for i := range rows {
				rows[i] = fmt.Sprintf("row-%d", i)
			}
			got := Sample(rows, tt.ratio, rand.New(rand.NewSource(1)))
			if len(got) != tt.want {
				t.Fatalf("sampled %d rows, want %d", len(got), tt.want)
			}
			seen := map[string]bool{}
			for _, row := range got {
				if seen[row] {
					t.Fatalf("row %q sampled twice", row)
				}
				seen[row] = true
			}
		})
	}
}

func TestSample_SeededRunsAgree(t *testing.T) {
	t.Parallel()

	rows := make([]string, 50)
	for i := range rows {
		rows[i] = fmt.Sprintf("row-%d", i)
	}
	a := Sample(rows, 0.2, rand.New(rand.NewSource(42)))
	b := Sample(rows, 0.2, rand.New(rand.NewSource(42)))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func writeArtifact(t *testing.T, header string, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "title.basics.tsv.gz")
	writeArtifactAt(t, path, header, rows)
	return path
}

func writeArtifactAt(t *testing.T, path, header string, rows []string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(file)
	w := bufio.NewWriter(gz)
	if _, err := w.WriteString(header + "\n"); err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if _, err := w.WriteString(row + "\n"); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
}

func readArtifact(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	gz, err := gzip.NewReader(file)
	if err != nil {
		t.Fatal(err)
	}
	var lines []string
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestApply_CapsOversizeArtifact(t *testing.T) {
	t.Parallel()

	rows := make([]string, 200)
	for i := range rows {
		rows[i] = fmt.Sprintf("tt%07d\tmovie\tsome fairly long padding text to inflate the artifact", i)
	}
	path := writeArtifact(t, "tconst\ttitleType\tprimaryTitle", rows)

	rng := rand.New(rand.NewSource(42))
	if err := Apply(path, 0.1, 1, rng, &log.Logger{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	lines := readArtifact(t, path)
	if lines[0] != "tconst\ttitleType\tprimaryTitle" {
		t.Fatalf("header not preserved: %q", lines[0])
	}
	if got := len(lines) - 1; got != 20 {
		t.Fatalf("kept %d rows, want 20", got)
	}
}

func TestApply_PassthroughUnderBudget(t *testing.T) {
	t.Parallel()

	path := writeArtifact(t, "tconst", []string{"tt1", "tt2"})
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	if err := Apply(path, 0.5, 1<<30, rng, &log.Logger{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("under-budget artifact was rewritten")
	}
}

func TestApply_SecondRunIsNoOp(t *testing.T) {
	t.Parallel()

	rows := make([]string, 200)
	for i := range rows {
		rows[i] = fmt.Sprintf("tt%07d\tpadding padding padding padding padding padding", i)
	}
	path := writeArtifact(t, "tconst\tjunk", rows)

	rng := rand.New(rand.NewSource(42))
	if err := Apply(path, 0.05, 512, rng, &log.Logger{}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// The capped artifact is now under budget, so a second pass must not
	// touch it.
	if err := Apply(path, 0.05, 512, rng, &log.Logger{}); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("second run re-sampled an already capped artifact")
	}
}

func TestApply_StillOverBudgetIsSampledOnce(t *testing.T) {
	t.Parallel()

	rows := make([]string, 200)
	for i := range rows {
		rows[i] = fmt.Sprintf("tt%07d\tpadding padding padding padding padding padding", i)
	}
	path := writeArtifact(t, "tconst\tjunk", rows)

	// A high ratio against a tiny budget leaves the sampled artifact
	// over budget; the marker must stop every later pass from shrinking
	// it again.
	rng := rand.New(rand.NewSource(42))
	if err := Apply(path, 0.9, 1, rng, &log.Logger{}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= 1 {
		t.Fatalf("fixture too small: sampled artifact is %d bytes", info.Size())
	}

	if err := Apply(path, 0.9, 1, rng, &log.Logger{}); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("second run re-sampled a marked artifact")
	}
}

func TestApply_RefetchedArtifactInvalidatesMarker(t *testing.T) {
	t.Parallel()

	rows := make([]string, 200)
	for i := range rows {
		rows[i] = fmt.Sprintf("tt%07d\tpadding padding padding padding padding padding", i)
	}
	path := writeArtifact(t, "tconst\tjunk", rows)

	rng := rand.New(rand.NewSource(42))
	if err := Apply(path, 0.9, 1, rng, &log.Logger{}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	sampled, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Overwrite the artifact as a fresh fetch would. The stale marker no
	// longer matches the size, so sampling runs again.
	fresh := make([]string, 300)
	for i := range fresh {
		fresh[i] = fmt.Sprintf("tt%07d\tother other other other other other other other", i)
	}
	writeArtifactAt(t, path, "tconst\tjunk", fresh)

	if err := Apply(path, 0.5, 1, rng, &log.Logger{}); err != nil {
		t.Fatalf("Apply after refetch: %v", err)
	}
	resampled, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(resampled) == string(sampled) {
		t.Fatal("refetched artifact was not resampled")
	}
	header, kept, err := readLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if header != "tconst\tjunk" {
		t.Fatalf("header = %q", header)
	}
	if len(kept) != 150 {
		t.Fatalf("kept %d rows, want 150", len(kept))
	}
}

func TestApply_ZeroRows(t *testing.T) {
	t.Parallel()

	path := writeArtifact(t, "tconst", nil)

	rng := rand.New(rand.NewSource(42))
	err := Apply(path, 0.5, 1, rng, &log.Logger{})
	var malformed *table.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedInputError", err)
	}
}

func TestApply_CorruptInputLeavesOriginal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.tsv.gz")
	if err := os.WriteFile(path, []byte("not gzip at all, but comfortably over the byte budget"), 0o644); err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	err := Apply(path, 0.5, 1, rng, &log.Logger{})
	var malformed *table.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedInputError", err)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(content) != "not gzip at all, but comfortably over the byte budget" {
		t.Fatal("original artifact modified on failure")
	}
}
