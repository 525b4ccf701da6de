// Package features joins the normalized title tables and derives the
// ordinal movie features used for training.
package features

import (
	"fmt"
	"math"

	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
)

// JoinCardinalityError reports a title identifier that appears more than
// once on one side of the basics/ratings join.
type JoinCardinalityError struct {
	Key  string
	Side string
}

func (e *JoinCardinalityError) Error() string {
	return fmt.Sprintf("join is not one-to-one: %s appears more than once in %s", e.Key, e.Side)
}

// Movie is one row of the derived feature table.
type Movie struct {
	Tconst          string   `json:"tconst"`
	TitleType       string   `json:"titleType"`
	PrimaryTitle    string   `json:"primaryTitle"`
	StartYear       *float64 `json:"startYear"`
	RuntimeMinutes  *float64 `json:"runtimeMinutes"`
	Genres          []string `json:"genres"`
	AverageRating   *float64 `json:"averageRating"`
	NumVotes        *float64 `json:"numVotes"`
	Decade          *float64 `json:"decade"`
	RuntimeCategory *string  `json:"runtime_category"`
	RatingCategory  *string  `json:"rating_category"`
	Popularity      *string  `json:"popularity"`
}

// Bucket bounds and labels. Intervals are left-open right-closed.
var (
	runtimeBounds = []float64{0, 60, 90, 120, 180, math.Inf(1)}
	runtimeLabels = []string{
		"Short (<60m)", "Standard (60-90m)", "Standard (90-120m)",
		"Long (120-180m)", "Very Long (>180m)",
	}

	ratingBounds = []float64{0, 4, 6, 8, 10}
	ratingLabels = []string{"Poor", "Average", "Good", "Excellent"}

	voteBounds = []float64{0, 1000, 10000, 100000, math.Inf(1)}
	voteLabels = []string{"Very Low", "Low", "Medium", "High"}
)

// RatingClasses returns the fixed ordered list of target classes.
func RatingClasses() []string {
	out := make([]string, len(ratingLabels))
	copy(out, ratingLabels)
	return out
}

// MergeAndDerive left-joins basics and ratings on the title identifier,
// restricts to movies, and computes the four derived columns. The join
// must be one-to-one; a duplicated identifier on either side is a
// JoinCardinalityError.
func MergeAndDerive(basics []dataset.TitleBasics, ratings []dataset.TitleRatings) ([]Movie, error) {
	ratingByTconst := make(map[string]dataset.TitleRatings, len(ratings))
	for _, r := range ratings {
		if _, dup := ratingByTconst[r.Tconst]; dup {
			return nil, &JoinCardinalityError{Key: r.Tconst, Side: "title-ratings"}
		}
		ratingByTconst[r.Tconst] = r
	}

	seenBasics := make(map[string]bool, len(basics))
	movies := make([]Movie, 0, len(basics))
	for _, b := range basics {
		if seenBasics[b.Tconst] {
			return nil, &JoinCardinalityError{Key: b.Tconst, Side: "title-basics"}
		}
		seenBasics[b.Tconst] = true

		if b.TitleType != "movie" {
			continue
		}

		movie := Movie{
			Tconst:         b.Tconst,
			TitleType:      b.TitleType,
			PrimaryTitle:   b.PrimaryTitle,
			StartYear:      b.StartYear,
			RuntimeMinutes: b.RuntimeMinutes,
			Genres:         b.Genres,
		}
		if r, ok := ratingByTconst[b.Tconst]; ok {
			movie.AverageRating = r.AverageRating
			movie.NumVotes = r.NumVotes
		}

		movie.Decade = decade(movie.StartYear)
		movie.RuntimeCategory = cut(movie.RuntimeMinutes, runtimeBounds, runtimeLabels)
		movie.RatingCategory = cut(movie.AverageRating, ratingBounds, ratingLabels)
		movie.Popularity = cut(movie.NumVotes, voteBounds, voteLabels)

		movies = append(movies, movie)
	}
	return movies, nil
}

func decade(startYear *float64) *float64 {
	if startYear == nil {
		return nil
	}
	d := math.Floor(*startYear/10) * 10
	return &d
}

// cut buckets a value into left-open, right-closed intervals
// (bounds[i], bounds[i+1]]. A missing or out-of-range value propagates
// as missing.
func cut(value *float64, bounds []float64, labels []string) *string {
	if value == nil {
		return nil
	}
	v := *value
	for i := range labels {
		if v > bounds[i] && v <= bounds[i+1] {
			label := labels[i]
			return &label
		}
	}
	return nil
}
