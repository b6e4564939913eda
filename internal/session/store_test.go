package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/repository/catalog"
)

// memoryTokenStore is an in-memory TokenStore for tests
type memoryTokenStore struct {
	token string
}

func (s *memoryTokenStore) Load() (string, error)   { return s.token, nil }
func (s *memoryTokenStore) Save(token string) error { s.token = token; return nil }
func (s *memoryTokenStore) Clear() error            { s.token = ""; return nil }

// fakeRepo is a hand-rolled CatalogRepository test double.  Only the session
// operations are given behavior; the catalog reads are never exercised here.
type fakeRepo struct {
	loginFunc    func(ctx context.Context, creds domain.Credentials) (string, error)
	registerFunc func(ctx context.Context, reg domain.Registration) error
	profileFunc  func(ctx context.Context) (*domain.User, error)

	loginCalls    []domain.Credentials
	registerCalls []domain.Registration
	profileCalls  int
}

func (r *fakeRepo) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	r.loginCalls = append(r.loginCalls, creds)
	if r.loginFunc != nil {
		return r.loginFunc(ctx, creds)
	}
	return "token", nil
}

func (r *fakeRepo) Register(ctx context.Context, reg domain.Registration) error {
	r.registerCalls = append(r.registerCalls, reg)
	if r.registerFunc != nil {
		return r.registerFunc(ctx, reg)
	}
	return nil
}

func (r *fakeRepo) GetProfile(ctx context.Context) (*domain.User, error) {
	r.profileCalls++
	if r.profileFunc != nil {
		return r.profileFunc(ctx)
	}
	return &domain.User{ID: "u1", Username: "sakura"}, nil
}

func (r *fakeRepo) GetFavorites(context.Context) ([]domain.Anime, error) { return nil, nil }
func (r *fakeRepo) GetAnimeList(context.Context, domain.ListParams) (*domain.AnimeList, error) {
	return nil, nil
}
func (r *fakeRepo) GetAnimeByID(context.Context, int) (*domain.AnimeFull, error) { return nil, nil }
func (r *fakeRepo) GetAnimeEpisodes(context.Context, int) ([]domain.Episode, error) {
	return nil, nil
}
func (r *fakeRepo) GetTopAnime(context.Context, string, int) ([]domain.Anime, error) {
	return nil, nil
}
func (r *fakeRepo) GetSeasonNow(context.Context, int) ([]domain.Anime, error) { return nil, nil }
func (r *fakeRepo) GetGenres(context.Context) ([]domain.Genre, error)         { return nil, nil }
func (r *fakeRepo) GetSchedule(context.Context, string) ([]domain.Anime, error) {
	return nil, nil
}

func TestInitialize(t *testing.T) {
	t.Run("RestoresPersistedSession", func(t *testing.T) {
		repo := &fakeRepo{}
		tokens := &memoryTokenStore{token: "persisted"}
		store := NewStore(repo, tokens)

		assert.True(t, store.Loading(), "store starts in the loading state")

		store.Initialize(context.Background())

		assert.False(t, store.Loading())
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "persisted", store.Token())
		require.NotNil(t, store.User())
		assert.Equal(t, "sakura", store.User().Username)
	})

	t.Run("NoTokenSettlesUnauthenticated", func(t *testing.T) {
		repo := &fakeRepo{}
		store := NewStore(repo, &memoryTokenStore{})

		store.Initialize(context.Background())

		assert.False(t, store.Loading())
		assert.False(t, store.IsAuthenticated())
		assert.Nil(t, store.User())
		assert.Zero(t, repo.profileCalls, "no profile request should be made without a token")
	})

	t.Run("RejectedTokenIsDemotedSilently", func(t *testing.T) {
		repo := &fakeRepo{
			profileFunc: func(context.Context) (*domain.User, error) {
				return nil, &catalog.APIError{StatusCode: 401, Message: "Invalid token"}
			},
		}
		tokens := &memoryTokenStore{token: "stale"}
		store := NewStore(repo, tokens)

		store.Initialize(context.Background())

		// The stale token is purged everywhere, and the app simply shows the
		// login screen rather than an error
		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, store.Token())
		assert.Empty(t, tokens.token)
		assert.Nil(t, store.User())
		assert.Empty(t, store.Err())
	})
}

func TestLogin(t *testing.T) {
	creds := domain.Credentials{Email: "a@b.c", Password: "pw"}

	t.Run("PersistsTokenAndFetchesProfile", func(t *testing.T) {
		repo := &fakeRepo{
			loginFunc: func(context.Context, domain.Credentials) (string, error) {
				return "fresh-token", nil
			},
		}
		tokens := &memoryTokenStore{}
		store := NewStore(repo, tokens)

		require.NoError(t, store.Login(context.Background(), creds))

		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "fresh-token", store.Token())
		assert.Equal(t, "fresh-token", tokens.token, "token must be persisted to durable storage")
		require.NotNil(t, store.User())
		assert.Equal(t, 1, repo.profileCalls, "a successful login re-fetches the profile")
		assert.Empty(t, store.Err())
	})

	t.Run("FailureSurfacesMessageAndKeepsExistingSession", func(t *testing.T) {
		repo := &fakeRepo{
			loginFunc: func(context.Context, domain.Credentials) (string, error) {
				return "", &catalog.APIError{StatusCode: 401, Message: "Invalid credentials"}
			},
		}
		tokens := &memoryTokenStore{token: "existing"}
		store := NewStore(repo, tokens)
		store.Initialize(context.Background())
		require.True(t, store.IsAuthenticated())

		err := store.Login(context.Background(), creds)

		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", store.Err())
		assert.Equal(t, "existing", store.Token(), "a failed login must not disturb the current session")
		assert.Equal(t, "existing", tokens.token)
		assert.False(t, store.Loading())
	})

	t.Run("BlankErrorFallsBackToGenericMessage", func(t *testing.T) {
		repo := &fakeRepo{
			loginFunc: func(context.Context, domain.Credentials) (string, error) {
				return "", errors.New("")
			},
		}
		store := NewStore(repo, &memoryTokenStore{})

		err := store.Login(context.Background(), creds)

		require.Error(t, err)
		assert.Equal(t, "Login failed", store.Err())
	})
}

func TestRegister(t *testing.T) {
	t.Run("SuccessLogsInWithSameCredentials", func(t *testing.T) {
		repo := &fakeRepo{}
		tokens := &memoryTokenStore{}
		store := NewStore(repo, tokens)

		reg := domain.Registration{Username: "sakura", Email: "a@b.c", Password: "pw"}
		require.NoError(t, store.Register(context.Background(), reg))

		require.Len(t, repo.registerCalls, 1)
		require.Len(t, repo.loginCalls, 1)
		assert.Equal(t, "a@b.c", repo.loginCalls[0].Email)
		assert.Equal(t, "pw", repo.loginCalls[0].Password)
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "token", tokens.token)
	})

	t.Run("FailureSurfacesMessage", func(t *testing.T) {
		repo := &fakeRepo{
			registerFunc: func(context.Context, domain.Registration) error {
				return &catalog.APIError{StatusCode: 409, Message: "Email already registered"}
			},
		}
		store := NewStore(repo, &memoryTokenStore{})

		err := store.Register(context.Background(), domain.Registration{
			Username: "sakura", Email: "a@b.c", Password: "pw",
		})

		require.Error(t, err)
		assert.Equal(t, "Email already registered", store.Err())
		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, repo.loginCalls, "no login should follow a failed registration")
	})
}

func TestLogout(t *testing.T) {
	repo := &fakeRepo{}
	tokens := &memoryTokenStore{token: "persisted"}
	store := NewStore(repo, tokens)
	store.Initialize(context.Background())
	require.True(t, store.IsAuthenticated())
	networkCalls := repo.profileCalls

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, tokens.token, "logout must clear durable storage")
	assert.Nil(t, store.User())
	assert.Equal(t, networkCalls, repo.profileCalls, "logout makes no network calls")

	// Idempotent:  logging out again is harmless
	store.Logout()
	assert.False(t, store.IsAuthenticated())
}
