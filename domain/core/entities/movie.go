package entities

// Movie mirrors one record of the movie listing API. It is decoded per request
// and never stored.
type Movie struct {
	ID                      int32     `json:"id"`
	URL                     string    `json:"url"`
	ImdbCode                string    `json:"imdb_code"`
	Title                   string    `json:"title"`
	TitleEnglish            string    `json:"title_english"`
	TitleLong               string    `json:"title_long"`
	Slug                    string    `json:"slug"`
	Year                    int32     `json:"year"`
	Rating                  float64   `json:"rating"`
	Runtime                 float64   `json:"runtime"`
	Genres                  []*string `json:"genres"`
	Summary                 *string   `json:"summary"`
	DescriptionFull         string    `json:"description_full"`
	Synopsis                *string   `json:"synopsis"`
	YtTrailerCode           string    `json:"yt_trailer_code"`
	Language                string    `json:"language"`
	BackgroundImage         string    `json:"background_image"`
	BackgroundImageOriginal string    `json:"background_image_original"`
	SmallCoverImage         string    `json:"small_cover_image"`
	MediumCoverImage        string    `json:"medium_cover_image"`
	LargeCoverImage         string    `json:"large_cover_image"`
}
