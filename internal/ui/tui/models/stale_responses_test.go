package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/service"
)

// The list-style views tag every outgoing fetch with a generation number and apply
// a response only if it belongs to the latest fetch.  These tests drive Update
// directly with out-of-order result messages; no fetch command is ever executed, so
// no network or TTY is involved.

func listPage(id int, title string) ListLoadedMsg {
	return ListLoadedMsg{
		Page: &domain.AnimeList{Data: []domain.Anime{{MalID: id, Title: title}}},
	}
}

func TestSearchDiscardsStaleResponse(t *testing.T) {
	m := NewSearchModel(service.NewCatalogService(nil))

	// Two overlapping searches:  each call hands out the next generation number
	_ = m.search()
	_ = m.search()
	m.loading = true

	fresh := listPage(2, "fresh")
	fresh.Seq = 2
	m.Update(fresh)

	require.Len(t, m.anime, 1)
	assert.Equal(t, "fresh", m.anime[0].Title)
	assert.False(t, m.loading)

	// The first search answers late.  Its page must not overwrite the newer state.
	stale := listPage(1, "stale")
	stale.Seq = 1
	m.Update(stale)

	require.Len(t, m.anime, 1)
	assert.Equal(t, "fresh", m.anime[0].Title)

	// A late failure from the superseded fetch is ignored the same way
	m.Update(FetchErrorMsg{Error: assert.AnError, Seq: 1})
	assert.NoError(t, m.loadError)
	assert.False(t, m.loading)
}

func TestBrowseDiscardsStaleResponse(t *testing.T) {
	m := NewBrowseModel(service.NewCatalogService(nil))

	// Flip pages faster than the network answers
	_ = m.load()
	_ = m.load()

	fresh := listPage(2, "fresh")
	fresh.Seq = 2
	m.Update(fresh)

	require.Len(t, m.anime, 1)
	assert.Equal(t, "fresh", m.anime[0].Title)
	assert.False(t, m.loading)

	stale := listPage(1, "stale")
	stale.Seq = 1
	m.Update(stale)

	require.Len(t, m.anime, 1)
	assert.Equal(t, "fresh", m.anime[0].Title)

	m.Update(FetchErrorMsg{Error: assert.AnError, Seq: 1})
	assert.NoError(t, m.loadError)
}

func TestBrowseAppliesLatestFailure(t *testing.T) {
	m := NewBrowseModel(service.NewCatalogService(nil))

	_ = m.load()
	m.Update(FetchErrorMsg{Error: assert.AnError, Seq: 1})

	assert.Error(t, m.loadError)
	assert.False(t, m.loading)
}

func TestScheduleDiscardsResponseForOtherDay(t *testing.T) {
	m := NewScheduleModel(service.NewCatalogService(nil))
	m.day = 0 // monday

	_ = m.load()
	selected := domain.ScheduleDays[m.day]
	other := domain.ScheduleDays[(m.day+1)%len(domain.ScheduleDays)]

	// A response for a day the user has already navigated away from is dropped
	m.Update(ScheduleLoadedMsg{Day: other, Anime: []domain.Anime{{MalID: 1, Title: "stale"}}})
	assert.Empty(t, m.anime)
	assert.True(t, m.loading)

	m.Update(ScheduleLoadedMsg{Day: selected, Anime: []domain.Anime{{MalID: 2, Title: "fresh"}}})
	require.Len(t, m.anime, 1)
	assert.Equal(t, "fresh", m.anime[0].Title)
	assert.False(t, m.loading)

	// A failure from a superseded fetch is ignored too
	_ = m.load()
	m.Update(FetchErrorMsg{Error: assert.AnError, Seq: m.seq - 1})
	assert.NoError(t, m.loadError)
}
