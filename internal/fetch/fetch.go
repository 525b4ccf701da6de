// Package fetch downloads the raw compressed dataset dumps, skipping
// artifacts that are already present on disk.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
)

// FetchError reports a resource that could not be retrieved.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Getter retrieves a resource body by URL. Tests substitute a fake.
type Getter interface {
	Get(url string) (io.ReadCloser, error)
}

type httpGetter struct {
	client *http.Client
}

func (g httpGetter) Get(url string) (io.ReadCloser, error) {
	resp, err := g.client.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Fetcher downloads dataset dumps from a base URL.
type Fetcher struct {
	BaseURL string
	Getter  Getter
}

// New returns a Fetcher backed by the default HTTP client.
func New(baseURL string) *Fetcher {
	return &Fetcher{BaseURL: baseURL, Getter: httpGetter{client: http.DefaultClient}}
}

// Fetch downloads one kind's dump to destPath. A destination that already
// holds data is left untouched. The download lands in a temporary file
// that is only promoted to destPath once the body has been fully written.
func (f *Fetcher) Fetch(kind dataset.Kind, destPath string, logger *log.Logger) error {
	if hasContent(destPath) {
		logger.Printf("%s already exists, skipping download", destPath)
		return nil
	}

	url := f.BaseURL + kind.RemoteName()
	logger.Printf("downloading %s to %s", url, destPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create raw directory: %w", err)
	}

	body, err := f.Getter.Get(url)
	if err != nil {
		return &FetchError{Resource: url, Err: err}
	}
	defer func() { _ = body.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return &FetchError{Resource: url, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("promote download: %w", err)
	}

	logger.Printf("downloaded %s", destPath)
	return nil
}

// Run downloads every dataset kind listed by the config.
func Run(p config.Params, logger *log.Logger) error {
	fetcher := New(p.Data.BaseURL)
	for _, kind := range dataset.AllKinds() {
		if err := fetcher.Fetch(kind, p.RawPath(kind), logger); err != nil {
			return err
		}
	}
	return nil
}

func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
