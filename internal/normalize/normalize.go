// Package normalize coerces raw string tables into typed records, one
// rule set per dataset kind. The literal sentinel \N always becomes an
// explicit missing value.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/table"
)

// Sentinel is the raw dataset's missing-value token.
const Sentinel = `\N`

// SchemaCoercionError reports a raw table whose column layout does not
// match the kind's expected schema.
type SchemaCoercionError struct {
	Kind   dataset.Kind
	Detail string
}

func (e *SchemaCoercionError) Error() string {
	return fmt.Sprintf("kind %s: unexpected column layout: %s", e.Kind, e.Detail)
}

// TitleBasics normalizes a raw title-basics table.
func TitleBasics(tab *table.Table) ([]dataset.TitleBasics, error) {
	if err := checkColumns(dataset.KindTitleBasics, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitleBasics, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitleBasics{
			Tconst:         row[0],
			TitleType:      row[1],
			PrimaryTitle:   row[2],
			OriginalTitle:  row[3],
			IsAdult:        boolFlag(row[4]),
			StartYear:      numericOrMissing(row[5]),
			EndYear:        numericOrMissing(row[6]),
			RuntimeMinutes: numericOrMissing(row[7]),
			Genres:         splitList(row[8]),
		})
	}
	return out, nil
}

// TitleRatings normalizes a raw title-ratings table. Coercion failures
// become missing values, not errors.
func TitleRatings(tab *table.Table) ([]dataset.TitleRatings, error) {
	if err := checkColumns(dataset.KindTitleRatings, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitleRatings, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitleRatings{
			Tconst:        row[0],
			AverageRating: numericOrMissing(row[1]),
			NumVotes:      numericOrMissing(row[2]),
		})
	}
	return out, nil
}

// NameBasics normalizes a raw name-basics table.
func NameBasics(tab *table.Table) ([]dataset.NameBasics, error) {
	if err := checkColumns(dataset.KindNameBasics, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.NameBasics, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.NameBasics{
			Nconst:            row[0],
			PrimaryName:       row[1],
			BirthYear:         numericOrMissing(row[2]),
			DeathYear:         numericOrMissing(row[3]),
			PrimaryProfession: splitList(row[4]),
			KnownForTitles:    splitList(row[5]),
		})
	}
	return out, nil
}

// TitleAkas normalizes a raw title-akas table.
func TitleAkas(tab *table.Table) ([]dataset.TitleAkas, error) {
	if err := checkColumns(dataset.KindTitleAkas, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitleAkas, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitleAkas{
			TitleID:         row[0],
			Ordering:        numericOrMissing(row[1]),
			Title:           row[2],
			Region:          row[3],
			Language:        row[4],
			Types:           splitList(row[5]),
			Attributes:      splitList(row[6]),
			IsOriginalTitle: boolFlag(row[7]),
		})
	}
	return out, nil
}

// TitleCrew normalizes a raw title-crew table.
func TitleCrew(tab *table.Table) ([]dataset.TitleCrew, error) {
	if err := checkColumns(dataset.KindTitleCrew, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitleCrew, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitleCrew{
			Tconst:    row[0],
			Directors: splitList(row[1]),
			Writers:   splitList(row[2]),
		})
	}
	return out, nil
}

// TitleEpisode normalizes a raw title-episode table.
func TitleEpisode(tab *table.Table) ([]dataset.TitleEpisode, error) {
	if err := checkColumns(dataset.KindTitleEpisode, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitleEpisode, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitleEpisode{
			Tconst:        row[0],
			ParentTconst:  row[1],
			SeasonNumber:  numericOrMissing(row[2]),
			EpisodeNumber: numericOrMissing(row[3]),
		})
	}
	return out, nil
}

// TitlePrincipals normalizes a raw title-principals table. The
// characters column passes through as-is when present.
func TitlePrincipals(tab *table.Table) ([]dataset.TitlePrincipals, error) {
	if err := checkColumns(dataset.KindTitlePrincipals, tab); err != nil {
		return nil, err
	}
	out := make([]dataset.TitlePrincipals, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		out = append(out, dataset.TitlePrincipals{
			Tconst:     row[0],
			Ordering:   numericOrMissing(row[1]),
			Nconst:     row[2],
			Category:   row[3],
			Job:        row[4],
			Characters: stringOrMissing(row[5]),
		})
	}
	return out, nil
}

func checkColumns(kind dataset.Kind, tab *table.Table) error {
	want := kind.Columns()
	if len(tab.Columns) != len(want) {
		return &SchemaCoercionError{
			Kind:   kind,
			Detail: fmt.Sprintf("have %d columns, want %d", len(tab.Columns), len(want)),
		}
	}
	for i, col := range want {
		if tab.Columns[i] != col {
			return &SchemaCoercionError{
				Kind:   kind,
				Detail: fmt.Sprintf("column %d is %q, want %q", i, tab.Columns[i], col),
			}
		}
	}
	return nil
}

func numericOrMissing(s string) *float64 {
	if s == Sentinel || s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func splitList(s string) []string {
	if s == Sentinel || s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func boolFlag(s string) bool {
	return s == "1"
}

func stringOrMissing(s string) *string {
	if s == Sentinel || s == "" {
		return nil
	}
	return &s
}
