package models

import (
	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/service"
)

// SessionReadyMsg is sent once the session store has resolved the initial
// authentication state at startup
type SessionReadyMsg struct{}

// AuthSuccessMsg is sent when a login or registration completes successfully
type AuthSuccessMsg struct{}

// AuthErrorMsg is sent when a login or registration fails
type AuthErrorMsg struct {
	Error string
}

// NavigateMsg asks the app to switch to a different view
type NavigateMsg struct {
	View View
}

// ShowDetailMsg asks the app to open the detail view for an anime
type ShowDetailMsg struct {
	ID int
}

// ShowWatchMsg asks the app to open the watch view for an anime
type ShowWatchMsg struct {
	ID int
}

// BrowseMsg asks the app to open the browse view with the given listing preset
type BrowseMsg struct {
	Title  string
	Params domain.ListParams
}

// HomeLoadedMsg is sent when all home view sections have loaded
type HomeLoadedMsg struct {
	Data *service.HomeData
}

// ListLoadedMsg is sent when a catalog listing page has loaded.  Seq identifies the
// request generation so stale responses can be discarded.
type ListLoadedMsg struct {
	Page *domain.AnimeList
	Seq  int
}

// GenresLoadedMsg is sent when the genre taxonomy has loaded
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// ScheduleLoadedMsg is sent when a weekday schedule has loaded
type ScheduleLoadedMsg struct {
	Day   string
	Anime []domain.Anime
}

// DetailLoadedMsg is sent when a full catalog entry has loaded
type DetailLoadedMsg struct {
	Anime *domain.AnimeFull
}

// WatchLoadedMsg is sent when the watch view data has loaded
type WatchLoadedMsg struct {
	Data *service.WatchData
}

// FavoritesLoadedMsg is sent when the profile's favorites list has loaded
type FavoritesLoadedMsg struct {
	Favorites []domain.Anime
}

// FetchErrorMsg is sent when a page-level data fetch fails.  Seq is non-zero for
// sequenced fetches and lets the receiving view ignore stale failures.
type FetchErrorMsg struct {
	Error error
	Seq   int
}
