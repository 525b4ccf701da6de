package features

import (
	"os"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/pipeline"
)

// Run builds the merged movie feature table from the normalized basics
// and ratings tables. Skip-if-exists applies to the whole table.
func Run(p config.Params, logger *log.Logger) error {
	outPath := p.FeaturesPath()
	if hasContent(outPath) {
		logger.Printf("%s already exists, skipping feature build", outPath)
		return nil
	}

	basicsPath := p.NormalizedPath(dataset.KindTitleBasics)
	ratingsPath := p.NormalizedPath(dataset.KindTitleRatings)
	for _, in := range []string{basicsPath, ratingsPath} {
		if _, err := os.Stat(in); os.IsNotExist(err) {
			return &pipeline.MissingUpstreamArtifactError{
				Path:       in,
				ProducedBy: "preprocess",
				RequiredBy: "features",
			}
		}
	}

	logger.Printf("loading %s", basicsPath)
	basics, err := jsonl.Read[dataset.TitleBasics](basicsPath)
	if err != nil {
		return err
	}
	logger.Printf("loading %s", ratingsPath)
	ratings, err := jsonl.Read[dataset.TitleRatings](ratingsPath)
	if err != nil {
		return err
	}

	movies, err := MergeAndDerive(basics, ratings)
	if err != nil {
		return err
	}

	logger.Printf("saving %d movie feature rows to %s", len(movies), outPath)
	return jsonl.Write(outPath, movies)
}

func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
