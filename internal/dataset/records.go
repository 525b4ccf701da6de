package dataset

// Normalized record types, one per dataset kind. Numeric columns that may
// be missing in the raw dump are pointer-typed; nil means missing. List
// columns are never nil after normalization — a missing list is empty.

// TitleBasics is one normalized title.basics row.
type TitleBasics struct {
	Tconst         string   `json:"tconst"`
	TitleType      string   `json:"titleType"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  string   `json:"originalTitle"`
	IsAdult        bool     `json:"isAdult"`
	StartYear      *float64 `json:"startYear"`
	EndYear        *float64 `json:"endYear"`
	RuntimeMinutes *float64 `json:"runtimeMinutes"`
	Genres         []string `json:"genres"`
}

// TitleRatings is one normalized title.ratings row.
type TitleRatings struct {
	Tconst        string   `json:"tconst"`
	AverageRating *float64 `json:"averageRating"`
	NumVotes      *float64 `json:"numVotes"`
}

// NameBasics is one normalized name.basics row.
type NameBasics struct {
	Nconst            string   `json:"nconst"`
	PrimaryName       string   `json:"primaryName"`
	BirthYear         *float64 `json:"birthYear"`
	DeathYear         *float64 `json:"deathYear"`
	PrimaryProfession []string `json:"primaryProfession"`
	KnownForTitles    []string `json:"knownForTitles"`
}

// TitleAkas is one normalized title.akas row.
type TitleAkas struct {
	TitleID         string   `json:"titleId"`
	Ordering        *float64 `json:"ordering"`
	Title           string   `json:"title"`
	Region          string   `json:"region"`
	Language        string   `json:"language"`
	Types           []string `json:"types"`
	Attributes      []string `json:"attributes"`
	IsOriginalTitle bool     `json:"isOriginalTitle"`
}

// TitleCrew is one normalized title.crew row.
type TitleCrew struct {
	Tconst    string   `json:"tconst"`
	Directors []string `json:"directors"`
	Writers   []string `json:"writers"`
}

// TitleEpisode is one normalized title.episode row.
type TitleEpisode struct {
	Tconst        string   `json:"tconst"`
	ParentTconst  string   `json:"parentTconst"`
	SeasonNumber  *float64 `json:"seasonNumber"`
	EpisodeNumber *float64 `json:"episodeNumber"`
}

// TitlePrincipals is one normalized title.principals row.
type TitlePrincipals struct {
	Tconst     string   `json:"tconst"`
	Ordering   *float64 `json:"ordering"`
	Nconst     string   `json:"nconst"`
	Category   string   `json:"category"`
	Job        string   `json:"job"`
	Characters *string  `json:"characters"`
}
