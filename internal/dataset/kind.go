// Package dataset defines the seven IMDb dataset kinds, their fixed
// column schemas, and the normalized record types produced for each.
package dataset

import "fmt"

// Kind identifies one of the IMDb dataset dumps.
type Kind string

// Dataset kind constants.
const (
	KindTitleAkas       Kind = "title-akas"
	KindTitleBasics     Kind = "title-basics"
	KindTitleCrew       Kind = "title-crew"
	KindTitleEpisode    Kind = "title-episode"
	KindTitlePrincipals Kind = "title-principals"
	KindTitleRatings    Kind = "title-ratings"
	KindNameBasics      Kind = "name-basics"
)

// AllKinds returns every dataset kind in the fixed processing order.
func AllKinds() []Kind {
	return []Kind{
		KindTitleAkas,
		KindTitleBasics,
		KindTitleCrew,
		KindTitleEpisode,
		KindTitlePrincipals,
		KindTitleRatings,
		KindNameBasics,
	}
}

// ParseKind validates a kind name.
func ParseKind(name string) (Kind, error) {
	for _, kind := range AllKinds() {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown dataset kind %q", name)
}

// RemoteName returns the file name of the kind's compressed dump as
// published by the dataset host (for example title.basics.tsv.gz).
func (k Kind) RemoteName() string {
	return schemaFor(k).remoteName
}

// NormalizedName returns the file name of the kind's normalized JSONL
// output (for example title.basics.jsonl).
func (k Kind) NormalizedName() string {
	return schemaFor(k).normalizedName
}

// Columns returns the kind's expected raw column names in order.
func (k Kind) Columns() []string {
	cols := schemaFor(k).columns
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

type kindSchema struct {
	remoteName     string
	normalizedName string
	columns        []string
}

var kindSchemas = map[Kind]kindSchema{
	KindTitleAkas: {
		remoteName:     "title.akas.tsv.gz",
		normalizedName: "title.akas.jsonl",
		columns: []string{
			"titleId", "ordering", "title", "region", "language",
			"types", "attributes", "isOriginalTitle",
		},
	},
	KindTitleBasics: {
		remoteName:     "title.basics.tsv.gz",
		normalizedName: "title.basics.jsonl",
		columns: []string{
			"tconst", "titleType", "primaryTitle", "originalTitle",
			"isAdult", "startYear", "endYear", "runtimeMinutes", "genres",
		},
	},
	KindTitleCrew: {
		remoteName:     "title.crew.tsv.gz",
		normalizedName: "title.crew.jsonl",
		columns:        []string{"tconst", "directors", "writers"},
	},
	KindTitleEpisode: {
		remoteName:     "title.episode.tsv.gz",
		normalizedName: "title.episode.jsonl",
		columns: []string{
			"tconst", "parentTconst", "seasonNumber", "episodeNumber",
		},
	},
	KindTitlePrincipals: {
		remoteName:     "title.principals.tsv.gz",
		normalizedName: "title.principals.jsonl",
		columns: []string{
			"tconst", "ordering", "nconst", "category", "job", "characters",
		},
	},
	KindTitleRatings: {
		remoteName:     "title.ratings.tsv.gz",
		normalizedName: "title.ratings.jsonl",
		columns:        []string{"tconst", "averageRating", "numVotes"},
	},
	KindNameBasics: {
		remoteName:     "name.basics.tsv.gz",
		normalizedName: "name.basics.jsonl",
		columns: []string{
			"nconst", "primaryName", "birthYear", "deathYear",
			"primaryProfession", "knownForTitles",
		},
	},
}

func schemaFor(k Kind) kindSchema {
	schema, ok := kindSchemas[k]
	if !ok {
		panic(fmt.Sprintf("dataset: no schema registered for kind %q", k))
	}
	return schema
}
