// Package sample caps oversized raw dumps by row-sampling them under a
// byte budget while preserving the header.
package sample

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/table"
)

const maxLineBytes = 4 << 20

// Sample selects floor(len(rows) * ratio) rows without replacement,
// uniformly at random. Row order in the result is not preserved.
func Sample(rows []string, ratio float64, rng *rand.Rand) []string {
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	keep := int(float64(len(rows)) * ratio)
	perm := rng.Perm(len(rows))
	out := make([]string, 0, keep)
	for _, idx := range perm[:keep] {
		out = append(out, rows[idx])
	}
	return out
}

// Apply caps one fetched .tsv.gz artifact in place. Sampling only runs
// when the compressed size exceeds the byte budget; smaller artifacts
// pass through untouched. The sampled copy is written and recompressed to
// a temporary file and promoted only once the full round trip succeeds, so a
// failure leaves the original artifact intact. A successful pass stamps a
// sidecar marker with the sampled size, so an artifact that still exceeds
// the budget after sampling is never resampled; a refetched artifact
// invalidates the stale marker by its size alone.
func Apply(path string, ratio float64, budget int64, rng *rand.Rand, logger *log.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	if sampledAlready(path, info.Size()) {
		logger.Debugf("%s already sampled, skipping", path)
		return nil
	}
	if info.Size() <= budget {
		logger.Debugf("%s is %d bytes, under budget %d, not sampling", path, info.Size(), budget)
		return nil
	}

	logger.Printf("sampling %s (%d bytes over budget %d, ratio %v)", path, info.Size(), budget, ratio)

	header, rows, err := readLines(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &table.MalformedInputError{Path: path, Reason: "no data rows"}
	}

	sampled := Sample(rows, ratio, rng)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sample-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := writeGzLines(tmp, header, sampled); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write sampled artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("promote sampled artifact: %w", err)
	}
	if err := writeMarker(path); err != nil {
		return err
	}

	logger.Printf("sampled %s: kept %d of %d rows", path, len(sampled), len(rows))
	return nil
}

func markerPath(path string) string { return path + ".sampled" }

// sampledAlready reports whether the artifact's marker exists and still
// matches the artifact's current size.
func sampledAlready(path string, size int64) bool {
	content, err := os.ReadFile(markerPath(path))
	if err != nil {
		return false
	}
	recorded, err := strconv.ParseInt(strings.TrimSpace(string(content)), 10, 64)
	return err == nil && recorded == size
}

// writeMarker stamps the promoted artifact's size next to it.
func writeMarker(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat sampled artifact: %w", err)
	}
	content := strconv.FormatInt(info.Size(), 10) + "\n"
	if err := os.WriteFile(markerPath(path), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sampled marker: %w", err)
	}
	return nil
}

// Run caps every fetched artifact using the per-kind ratios and the
// global size budget. The sampler RNG is seeded from config so repeated
// runs draw the same sample.
func Run(p config.Params, logger *log.Logger) error {
	rng := rand.New(rand.NewSource(p.Data.SampleSeed))
	for _, kind := range dataset.AllKinds() {
		path := p.RawPath(kind)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Printf("%s does not exist, skipping sampling", path)
			continue
		}
		if err := Apply(path, p.SampleRatio(kind), p.Data.TargetSizeBytes, rng, logger); err != nil {
			return err
		}
	}
	return nil
}

func readLines(path string) (header string, rows []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", nil, &table.MalformedInputError{Path: path, Reason: "decompress", Err: err}
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", nil, &table.MalformedInputError{Path: path, Reason: "read header", Err: err}
		}
		return "", nil, &table.MalformedInputError{Path: path, Reason: "empty file"}
	}
	header = scanner.Text()

	for scanner.Scan() {
		rows = append(rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", nil, &table.MalformedInputError{Path: path, Reason: "read rows", Err: err}
	}
	return header, rows, nil
}

func writeGzLines(file *os.File, header string, rows []string) error {
	gz := gzip.NewWriter(file)
	writer := bufio.NewWriter(gz)

	if _, err := writer.WriteString(header + "\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := writer.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return gz.Close()
}
