package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
)

// The catalog API wraps most payloads in a {data, pagination} envelope.

type animeListEnvelope struct {
	Data       []domain.Anime     `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

type animeFullEnvelope struct {
	Data domain.AnimeFull `json:"data"`
}

type episodeListEnvelope struct {
	Data []domain.Episode `json:"data"`
}

type genreListEnvelope struct {
	Data []domain.Genre `json:"data"`
}

type userEnvelope struct {
	Data domain.User `json:"data"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new account.  The response payload carries no data the client
// needs; a successful registration is followed by a normal login.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/auth/register", reg, nil)
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &MalformedResponseError{Err: fmt.Errorf("login response missing token")}
	}
	return resp.Token, nil
}

// GetProfile fetches the profile of the authenticated user
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var resp userEnvelope
	if err := c.get(ctx, "/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetFavorites fetches the authenticated user's favorited catalog entries
func (c *Client) GetFavorites(ctx context.Context) ([]domain.Anime, error) {
	var resp animeListEnvelope
	if err := c.get(ctx, "/user/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetAnimeList fetches a filtered/paginated catalog listing.  params are forwarded
// verbatim as query parameters.
func (c *Client) GetAnimeList(ctx context.Context, params domain.ListParams) (*domain.AnimeList, error) {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, fmt.Sprint(value))
	}

	var resp animeListEnvelope
	if err := c.get(ctx, "/anime", query, &resp); err != nil {
		return nil, err
	}
	return &domain.AnimeList{Data: resp.Data, Pagination: resp.Pagination}, nil
}

// GetAnimeByID fetches the full catalog entry for a single anime, including any
// stream link metadata
func (c *Client) GetAnimeByID(ctx context.Context, id int) (*domain.AnimeFull, error) {
	var resp animeFullEnvelope
	if err := c.get(ctx, "/anime/"+strconv.Itoa(id)+"/full", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetAnimeEpisodes fetches the episode list for a single anime
func (c *Client) GetAnimeEpisodes(ctx context.Context, id int) ([]domain.Episode, error) {
	var resp episodeListEnvelope
	if err := c.get(ctx, "/anime/"+strconv.Itoa(id)+"/episodes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetTopAnime fetches the ranked catalog listing for the given filter
func (c *Client) GetTopAnime(ctx context.Context, filter string, limit int) ([]domain.Anime, error) {
	query := url.Values{}
	query.Set("filter", filter)
	query.Set("limit", strconv.Itoa(limit))

	var resp animeListEnvelope
	if err := c.get(ctx, "/top/anime", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetSeasonNow fetches the currently airing entries
func (c *Client) GetSeasonNow(ctx context.Context, limit int) ([]domain.Anime, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp animeListEnvelope
	if err := c.get(ctx, "/seasons/now", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetGenres fetches the genre taxonomy
func (c *Client) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	var resp genreListEnvelope
	if err := c.get(ctx, "/genres/anime", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetSchedule fetches the entries airing on the given weekday
func (c *Client) GetSchedule(ctx context.Context, day string) ([]domain.Anime, error) {
	if !domain.IsScheduleDay(day) {
		return nil, fmt.Errorf("invalid schedule day: %q", day)
	}

	query := url.Values{}
	query.Set("filter", day)

	var resp animeListEnvelope
	if err := c.get(ctx, "/schedules", query, &resp); err != nil {
		return nil, err
	}

	log.Debug("Fetched schedule", "day", day, "count", len(resp.Data))
	return resp.Data, nil
}
