package normalize

import (
	"fmt"
	"os"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/table"
)

// Run normalizes every fetched dataset kind in order. One kind's failure
// is logged and does not abort the others; a kind's output is only
// written when its own normalization succeeds, and pre-existing output
// skips the kind entirely.
func Run(p config.Params, logger *log.Logger) error {
	for _, kind := range dataset.AllKinds() {
		if err := runKind(p, kind, logger); err != nil {
			logger.Printf("kind %s failed: %v", kind, err)
		}
	}
	return nil
}

func runKind(p config.Params, kind dataset.Kind, logger *log.Logger) error {
	outPath := p.NormalizedPath(kind)
	if hasContent(outPath) {
		logger.Printf("%s already exists, skipping %s", outPath, kind)
		return nil
	}

	inPath := p.RawPath(kind)
	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		logger.Printf("%s does not exist, skipping %s", inPath, kind)
		return nil
	}

	logger.Printf("reading %s", inPath)
	tab, err := table.ReadTSV(inPath)
	if err != nil {
		return err
	}

	if err := writeNormalized(kind, tab, outPath); err != nil {
		return err
	}
	logger.Printf("saved %d normalized %s rows to %s", len(tab.Rows), kind, outPath)
	return nil
}

// writeNormalized dispatches on the kind. The switch is exhaustive over
// AllKinds; an unregistered kind is an error, never a silent no-op.
func writeNormalized(kind dataset.Kind, tab *table.Table, outPath string) error {
	switch kind {
	case dataset.KindTitleBasics:
		return normalizeAndWrite(tab, outPath, TitleBasics)
	case dataset.KindTitleRatings:
		return normalizeAndWrite(tab, outPath, TitleRatings)
	case dataset.KindNameBasics:
		return normalizeAndWrite(tab, outPath, NameBasics)
	case dataset.KindTitleAkas:
		return normalizeAndWrite(tab, outPath, TitleAkas)
	case dataset.KindTitleCrew:
		return normalizeAndWrite(tab, outPath, TitleCrew)
	case dataset.KindTitleEpisode:
		return normalizeAndWrite(tab, outPath, TitleEpisode)
	case dataset.KindTitlePrincipals:
		return normalizeAndWrite(tab, outPath, TitlePrincipals)
	default:
		return fmt.Errorf("no normalization rule for kind %q", kind)
	}
}

func normalizeAndWrite[T any](tab *table.Table, outPath string, fn func(*table.Table) ([]T, error)) error {
	records, err := fn(tab)
	if err != nil {
		return err
	}
	return jsonl.Write(outPath, records)
}

func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
