package domain

import "context"

// ListParams is an open mapping of query parameters forwarded verbatim to the
// catalog listing endpoint (page, limit, order_by, sort, status, genre id,
// free-text query, single-letter index...).  The client serializes the values but
// performs no interpretation of them.
type ListParams map[string]any

// CatalogRepository defines the interface for catalog and session data access.
// One method per remote resource.
type CatalogRepository interface {
	// Register creates a new account
	Register(ctx context.Context, reg Registration) error

	// Login exchanges credentials for a session token
	Login(ctx context.Context, creds Credentials) (string, error)

	// GetProfile fetches the profile of the authenticated user
	GetProfile(ctx context.Context) (*User, error)

	// GetFavorites fetches the authenticated user's favorited catalog entries
	GetFavorites(ctx context.Context) ([]Anime, error)

	// GetAnimeList fetches a filtered/paginated catalog listing
	GetAnimeList(ctx context.Context, params ListParams) (*AnimeList, error)

	// GetAnimeByID fetches the full catalog entry for a single anime
	GetAnimeByID(ctx context.Context, id int) (*AnimeFull, error)

	// GetAnimeEpisodes fetches the episode list for a single anime
	GetAnimeEpisodes(ctx context.Context, id int) ([]Episode, error)

	// GetTopAnime fetches the ranked catalog listing for the given filter
	// (bypopularity, favorite, ...)
	GetTopAnime(ctx context.Context, filter string, limit int) ([]Anime, error)

	// GetSeasonNow fetches the currently airing entries
	GetSeasonNow(ctx context.Context, limit int) ([]Anime, error)

	// GetGenres fetches the genre taxonomy
	GetGenres(ctx context.Context) ([]Genre, error)

	// GetSchedule fetches the entries airing on the given weekday
	GetSchedule(ctx context.Context, day string) ([]Anime, error)
}
