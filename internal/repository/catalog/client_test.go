package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yozora-app/yozora/internal/domain"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 5*time.Second, func() string { return token })
}

func TestAuthorizationHeader(t *testing.T) {
	t.Run("AttachedWhenTokenPresent", func(t *testing.T) {
		var gotAuth string
		client := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data": []}`))
		})

		_, err := client.GetGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer T", gotAuth)
	})

	t.Run("OmittedWhenNoToken", func(t *testing.T) {
		var hasAuth bool
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, hasAuth = r.Header["Authorization"]
			_, _ = w.Write([]byte(`{"data": []}`))
		})

		_, err := client.GetGenres(context.Background())
		require.NoError(t, err)
		assert.False(t, hasAuth, "Authorization header should be absent without a session")
	})

	t.Run("TokenReadAtCallTime", func(t *testing.T) {
		var gotAuth string
		token := ""
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		t.Cleanup(server.Close)

		client := NewClient(server.URL, 5*time.Second, func() string { return token })

		_, err := client.GetGenres(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)

		// The same client picks up a token acquired after construction
		token = "fresh"
		_, err = client.GetGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer fresh", gotAuth)
	})
}

func TestErrorResponses(t *testing.T) {
	t.Run("MessageExtractedFromBody", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
		})

		_, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	})

	t.Run("GenericMessageForUnparseableBody", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		})

		_, err := client.GetGenres(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "request failed with status 500", apiErr.Message)
	})

	t.Run("MalformedSuccessBody", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json at all"))
		})

		_, err := client.GetGenres(context.Background())
		require.Error(t, err)

		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestLogin(t *testing.T) {
	t.Run("ReturnsToken", func(t *testing.T) {
		var gotBody domain.Credentials
		var gotPath string
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"token": "session-token"}`))
		})

		token, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
		assert.Equal(t, "/auth/login", gotPath)
		assert.Equal(t, "a@b.c", gotBody.Email)
		assert.Equal(t, "pw", gotBody.Password)
	})

	t.Run("MissingTokenIsMalformed", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
		require.Error(t, err)

		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("IncompleteCredentialsNeverSent", func(t *testing.T) {
		requested := false
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		_, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.c"})
		assert.EqualError(t, err, "password is required")
		assert.False(t, requested, "no request should be made for invalid credentials")
	})
}

func TestRegister(t *testing.T) {
	t.Run("PostsRegistration", func(t *testing.T) {
		var gotBody domain.Registration
		var gotPath string
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message": "account created"}`))
		})

		err := client.Register(context.Background(), domain.Registration{
			Username: "sakura",
			Email:    "a@b.c",
			Password: "pw",
		})
		require.NoError(t, err)
		assert.Equal(t, "/auth/register", gotPath)
		assert.Equal(t, "sakura", gotBody.Username)
	})

	t.Run("IncompleteRegistrationNeverSent", func(t *testing.T) {
		requested := false
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		err := client.Register(context.Background(), domain.Registration{Email: "a@b.c", Password: "pw"})
		assert.EqualError(t, err, "username is required")
		assert.False(t, requested)
	})
}

func TestGetAnimeList(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "score", r.URL.Query().Get("order_by"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort"))

		_, _ = w.Write([]byte(`{
			"data": [{"mal_id": 1, "title": "Cowboy Bebop", "score": 8.75}],
			"pagination": {"last_visible_page": 10, "has_next_page": true, "current_page": 2}
		}`))
	})

	list, err := client.GetAnimeList(context.Background(), domain.ListParams{
		"page":     2,
		"limit":    20,
		"order_by": "score",
		"sort":     "desc",
	})
	require.NoError(t, err)

	// The payload passes through unchanged
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Data[0].MalID)
	assert.Equal(t, "Cowboy Bebop", list.Data[0].Title)
	assert.Equal(t, 8.75, list.Data[0].Score)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 10, list.Pagination.LastVisiblePage)
	assert.True(t, list.Pagination.HasNextPage)
	assert.Equal(t, 2, list.Pagination.CurrentPage)
}

func TestGetAnimeByID(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime/42/full", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"data": {
				"mal_id": 42,
				"title": "Ghost in the Shell",
				"stream_links": [{"episode": "1", "link": "https://cdn.example.com/ep1"}]
			}
		}`))
	})

	anime, err := client.GetAnimeByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, anime.MalID)
	require.Len(t, anime.StreamLinks, 1)
	assert.Equal(t, "1", anime.StreamLinks[0].Episode)
}

func TestGetTopAnime(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top/anime", r.URL.Path)
		assert.Equal(t, "bypopularity", r.URL.Query().Get("filter"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data": [{"mal_id": 5}]}`))
	})

	anime, err := client.GetTopAnime(context.Background(), "bypopularity", 6)
	require.NoError(t, err)
	require.Len(t, anime, 1)
	assert.Equal(t, 5, anime[0].MalID)
}

func TestGetSchedule(t *testing.T) {
	t.Run("ValidDay", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/schedules", r.URL.Path)
			assert.Equal(t, "monday", r.URL.Query().Get("filter"))
			_, _ = w.Write([]byte(`{"data": []}`))
		})

		_, err := client.GetSchedule(context.Background(), "monday")
		assert.NoError(t, err)
	})

	t.Run("InvalidDayRejectedLocally", func(t *testing.T) {
		requested := false
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		_, err := client.GetSchedule(context.Background(), "someday")
		assert.Error(t, err)
		assert.False(t, requested)
	})
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetGenres(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
