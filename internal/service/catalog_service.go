package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
)

// CatalogService sits between the UI and the catalog repository.  It aggregates the
// multi-request page loads and keeps a process-lifetime copy of the genre taxonomy.
type CatalogService struct {
	repo domain.CatalogRepository

	genreLock sync.Mutex
	genres    []domain.Genre // Taxonomy is static server-side, so fetch it once
}

func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// HomeData is everything the home view renders
type HomeData struct {
	Popular         []domain.Anime
	SeasonNow       []domain.Anime
	CompletedByDate []domain.Anime
	MostFavorited   []domain.Anime
}

// WatchData is everything the watch view renders
type WatchData struct {
	Anime    *domain.AnimeFull
	Episodes []domain.Episode
}

// LoadHome fetches all home view sections concurrently.  Results are applied
// together:  if any fetch fails the whole load fails and nothing is rendered
// partially.
func (s *CatalogService) LoadHome(ctx context.Context) (*HomeData, error) {
	var data HomeData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		popular, err := s.repo.GetTopAnime(ctx, "bypopularity", 6)
		data.Popular = popular
		return err
	})
	g.Go(func() error {
		seasonNow, err := s.repo.GetSeasonNow(ctx, 12)
		data.SeasonNow = seasonNow
		return err
	})
	g.Go(func() error {
		completed, err := s.repo.GetAnimeList(ctx, domain.ListParams{
			"status":   "complete",
			"order_by": "end_date",
			"sort":     "desc",
			"limit":    20,
		})
		if err != nil {
			return err
		}
		data.CompletedByDate = completed.Data
		return nil
	})
	g.Go(func() error {
		favorited, err := s.repo.GetTopAnime(ctx, "favorite", 5)
		data.MostFavorited = favorited
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("Home data loaded",
		"popular", len(data.Popular),
		"season_now", len(data.SeasonNow),
		"completed", len(data.CompletedByDate),
		"most_favorited", len(data.MostFavorited))
	return &data, nil
}

// LoadWatch fetches the full entry and its episode list concurrently, all-or-nothing
func (s *CatalogService) LoadWatch(ctx context.Context, id int) (*WatchData, error) {
	var data WatchData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		anime, err := s.repo.GetAnimeByID(ctx, id)
		data.Anime = anime
		return err
	})
	g.Go(func() error {
		episodes, err := s.repo.GetAnimeEpisodes(ctx, id)
		data.Episodes = episodes
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// List fetches one page of a filtered catalog listing
func (s *CatalogService) List(ctx context.Context, params domain.ListParams) (*domain.AnimeList, error) {
	return s.repo.GetAnimeList(ctx, params)
}

// Detail fetches the full catalog entry for a single anime
func (s *CatalogService) Detail(ctx context.Context, id int) (*domain.AnimeFull, error) {
	return s.repo.GetAnimeByID(ctx, id)
}

// Favorites fetches the authenticated user's favorited entries
func (s *CatalogService) Favorites(ctx context.Context) ([]domain.Anime, error) {
	return s.repo.GetFavorites(ctx)
}

// Schedule fetches the entries airing on the given weekday
func (s *CatalogService) Schedule(ctx context.Context, day string) ([]domain.Anime, error) {
	return s.repo.GetSchedule(ctx, day)
}

var singleLetter = regexp.MustCompile(`^[a-zA-Z]$`)

// Search runs a free-text catalog search.  A single-letter query becomes an index
// lookup, and the special query "all" browses the unfiltered catalog.
func (s *CatalogService) Search(ctx context.Context, query string, page int) (*domain.AnimeList, error) {
	params := domain.ListParams{
		"page":  page,
		"limit": 20,
	}
	if singleLetter.MatchString(query) {
		params["letter"] = query
	} else if strings.ToLower(query) != "all" {
		params["q"] = query
	}

	return s.repo.GetAnimeList(ctx, params)
}

// Genres returns the genre taxonomy, fetching it on first use and serving the cached
// copy afterwards
func (s *CatalogService) Genres(ctx context.Context) ([]domain.Genre, error) {
	s.genreLock.Lock()
	defer s.genreLock.Unlock()

	if s.genres != nil {
		return s.genres, nil
	}

	genres, err := s.repo.GetGenres(ctx)
	if err != nil {
		return nil, err
	}

	s.genres = genres
	return genres, nil
}
