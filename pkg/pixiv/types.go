package pixiv

// Dimensions is the size of an illustration, in pixels.
type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Info holds metadata about an illustration.  A zero value for a field means
// the field is not known.
type Info struct {
	Identifier int `yaml:"id"`
	// OriginalURL is the URL of the original-size image.  This may point at
	// any page; Image will normalize it to a template.
	OriginalURL string     `yaml:"original,omitempty"`
	Title       string     `yaml:"title,omitempty"`
	Dimensions  Dimensions `yaml:"dimensions,omitempty"`
	AuthorName  string     `yaml:"author,omitempty"`
	AuthorID    int        `yaml:"authorId,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	PageCount   int        `yaml:"pages,omitempty"`
	Description string     `yaml:"description,omitempty"`
}

// Artwork is the metadata read from a work page.  Every field is known, and
// OriginalURL has the correct extension.
type Artwork struct {
	Info
}

// RankingEntry is the metadata for a single work on a ranking page.
// OriginalURL is not known; ThumbnailURL must be passed through
// DeriveOriginalURL to get it.
type RankingEntry struct {
	Info
	// Rank is the rank of this entry, as written on the page.
	Rank         string
	ThumbnailURL string
}
