package domain

// Anime represents a single catalog entry as returned by the remote service.
// These shapes are externally defined; the client deserializes them as-is and never
// mutates them.
type Anime struct {
	MalID    int        `json:"mal_id"`
	Title    string     `json:"title"`
	Synopsis string     `json:"synopsis"`
	Images   AnimeImage `json:"images"`
	Score    float64    `json:"score"`
	Genres   []GenreRef `json:"genres"`
	Studios  []Studio   `json:"studios"`
	Status   string     `json:"status"`
	Episodes int        `json:"episodes,omitempty"`
}

// AnimeImage contains the image URLs for an anime
type AnimeImage struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

// GenreRef is the short genre reference embedded in an anime entry
type GenreRef struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// Studio is a studio reference embedded in an anime entry
type Studio struct {
	Name string `json:"name"`
}

// AnimeFull is the full catalog entry, including stream link metadata.
// The links are placeholders as far as this client is concerned; no playback is done.
type AnimeFull struct {
	Anime
	StreamLinks []StreamLink `json:"stream_links"`
}

// StreamLink pairs an episode label with its streaming URL
type StreamLink struct {
	Episode string `json:"episode"`
	Link    string `json:"link"`
}

// Genre is a full genre taxonomy entry
type Genre struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Episode identifies a single episode of an anime
type Episode struct {
	MalID int    `json:"mal_id"`
	Title string `json:"title"`
}

// Pagination is the paging metadata returned alongside list responses
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

// AnimeList is a page of catalog entries plus optional pagination metadata
type AnimeList struct {
	Data       []Anime
	Pagination *Pagination
}

// ScheduleDays lists the weekday keys accepted by the schedules endpoint, in display order
var ScheduleDays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// IsScheduleDay reports whether day is a valid weekday key for the schedules endpoint
func IsScheduleDay(day string) bool {
	for _, d := range ScheduleDays {
		if d == day {
			return true
		}
	}
	return false
}
