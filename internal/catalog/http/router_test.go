package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/internal/catalog/store/drivers/sqlite"
	"github.com/reelworks/filmstack/pkg/idx"
	"github.com/reelworks/filmstack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec("HS256", []byte("router-test-secret"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter("test", st, logger)
	r.AuthService = &service.AuthService{Store: st, Codec: codec, AccessTTL: time.Minute}
	r.UserService = &service.UserService{Store: st}
	r.FilmService = &service.FilmService{Store: st}
	r.RateService = &service.RateService{Store: st}
	r.ApplyRoutes()

	return r, st
}

func doJSON(t *testing.T, r *Router, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, r *Router, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, r *Router, username, password string) domain.PublicUser {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/users/register", "",
		`{"username":"`+username+`","password":"`+password+`","full_name":"Test User"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var u domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func login(t *testing.T, r *Router, username, password, scope string) string {
	t.Helper()

	rec := doForm(t, r, http.MethodPost, "/users/login", url.Values{
		"username": {username},
		"password": {password},
		"scope":    {scope},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok domain.AccessToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func seedCatalogFilm(t *testing.T, st *sqlite.Store, tconst, title string, rating float64, votes int64) domain.Film {
	t.Helper()
	ctx := context.Background()

	f := domain.Film{
		ID:             idx.New().String(),
		TConst:         tconst,
		PrimaryTitle:   title,
		StartYear:      1999,
		RuntimeMinutes: "120",
		Genres:         "Drama",
	}
	require.NoError(t, st.Films().CreateFilm(ctx, f))
	if votes > 0 {
		require.NoError(t, st.Films().PutAggregateRating(ctx, domain.AggregateRating{
			TConst:        tconst,
			AverageRating: rating,
			NumVotes:      votes,
		}))
	}
	return f
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	registerUser(t, r, "alice", "wonderland")

	t.Run("register conflict", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/users/register", "",
			`{"username":"alice","password":"other"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "User already exists")
	})

	t.Run("login mints a bearer token", func(t *testing.T) {
		token := login(t, r, "alice", "wonderland", "me rates")
		require.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doForm(t, r, http.MethodPost, "/users/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		require.Contains(t, rec.Body.String(), "Incorrect username or password")
	})

	t.Run("unknown user gets the same rejection", func(t *testing.T) {
		rec := doForm(t, r, http.MethodPost, "/users/login", url.Values{
			"username": {"mallory"},
			"password": {"wonderland"},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Incorrect username or password")
	})
}

func TestScopeEnforcement(t *testing.T) {
	r, st := newTestRouter(t)

	registerUser(t, r, "alice", "wonderland")
	film := seedCatalogFilm(t, st, "tt0133093", "The Matrix", 8.7, 2_000_000)

	ratesToken := login(t, r, "alice", "wonderland", "me rates")
	meToken := login(t, r, "alice", "wonderland", "me")

	t.Run("token with the route's scopes passes", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/films/id/"+film.ID+"?rate=9", ratesToken, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var rt domain.Rate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rt))
		require.Equal(t, "The Matrix", rt.PrimaryTitle)
		require.Equal(t, "alice", rt.Username)
		require.Equal(t, float64(9), rt.Value)
	})

	t.Run("token without the rates scope is rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me/rates", meToken, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, `Bearer scope="me rates"`, rec.Header().Get("WWW-Authenticate"))
		require.Contains(t, rec.Body.String(), "Not enough permissions")
	})

	t.Run("missing token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, `Bearer scope="me"`, rec.Header().Get("WWW-Authenticate"))
		require.Contains(t, rec.Body.String(), "Not authenticated")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me", "garbage", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Could not validate credentials")
	})

	t.Run("disabled account is 400 even with a well-scoped token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, "/users/me", ratesToken,
			`{"username":"alice","password":"wonderland","disabled":true}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doJSON(t, r, http.MethodGet, "/users/me/rates", ratesToken, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Inactive user")

		// Status only requires a resolvable token, so it still answers.
		rec = doJSON(t, r, http.MethodGet, "/users/status", ratesToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"ok"`)
	})
}

func TestMeEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	registerUser(t, r, "alice", "wonderland")
	film := seedCatalogFilm(t, st, "tt0111161", "The Shawshank Redemption", 9.3, 2_500_000)
	token := login(t, r, "alice", "wonderland", "me rates")

	t.Run("profile never leaks the password hash", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"username":"alice"`)
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("own rates listing", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me/rates", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())

		rec = doJSON(t, r, http.MethodPost, "/films/id/"+film.ID+"?rate=9.5", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, r, http.MethodGet, "/users/me/rates", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var rates []domain.Rate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rates))
		require.Len(t, rates, 1)
		require.Equal(t, 9.5, rates[0].Value)
	})

	t.Run("single rate lookup", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/rates/rate/"+film.ID, token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"rate":9.5`)

		rec = doJSON(t, r, http.MethodGet, "/rates/rate/no-such-film", token, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Rate does not exist")
	})

	t.Run("duplicate rating conflicts, update succeeds", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/films/id/"+film.ID+"?rate=7", token, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Rate already exists")

		rec = doJSON(t, r, http.MethodPut, "/films/id/"+film.ID+"?rate=8", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"rate":8`)
	})
}

func TestPublicFilmEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	seedCatalogFilm(t, st, "tt0000001", "Quiet Drama", 7.1, 50_000)
	matrix := seedCatalogFilm(t, st, "tt0133093", "The Matrix", 8.7, 2_000_000)
	seedCatalogFilm(t, st, "tt0000003", "Obscure Gem", 9.9, 42)

	t.Run("listing needs no token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/films/", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var films []domain.Film
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
		require.Len(t, films, 3)
	})

	t.Run("search by name", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/films/name/matrix", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var films []domain.Film
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
		require.Len(t, films, 1)
		require.Equal(t, "The Matrix", films[0].PrimaryTitle)
	})

	t.Run("lookup by id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/films/id/"+matrix.ID, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"averageRating":8.7`)

		rec = doJSON(t, r, http.MethodGet, "/films/id/nope", "", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Film does not exist")
	})

	t.Run("top chart excludes sparsely voted films", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/films/top/5", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var films []domain.Film
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
		require.Len(t, films, 2)
		require.Equal(t, "The Matrix", films[0].PrimaryTitle)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/films/top/lots", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid limit")
	})
}

func TestAdminDelete(t *testing.T) {
	r, _ := newTestRouter(t)

	registerUser(t, r, "admin", "root-of-all-evil")
	bob := registerUser(t, r, "bob", "builder")

	adminToken := login(t, r, "admin", "root-of-all-evil", "me admin")
	plainToken := login(t, r, "bob", "builder", "me rates")

	t.Run("requires the admin scope", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/users/delete/"+bob.ID, plainToken, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, `Bearer scope="me admin"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("removes the account", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/users/delete/"+bob.ID, adminToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"username":"bob"`)

		rec = doJSON(t, r, http.MethodDelete, "/users/delete/"+bob.ID, adminToken, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "User does not exist")
	})

	t.Run("deleted user's token no longer resolves", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/users/me", plainToken, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Could not validate credentials")
	})
}

func TestSystemEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	t.Run("livez", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/livez", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("readyz with a healthy database", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/readyz", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"database":"ok"`)
	})

	t.Run("readyz after the database goes away", func(t *testing.T) {
		require.NoError(t, st.Close())

		rec := doJSON(t, r, http.MethodGet, "/readyz", "", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"degraded"`)
	})
}
