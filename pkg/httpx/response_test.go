package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainOrdering(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestBearerChallenge(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Bearer", BearerChallenge(nil))
	require.Equal(t, `Bearer scope="me rates"`, BearerChallenge([]string{"me", "rates"}))
}

func TestWriteBearerError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteBearerError(rec, http.StatusUnauthorized, []string{"me"}, "Could not validate credentials")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Bearer scope="me"`, rec.Header().Get("WWW-Authenticate"))
	require.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
}

func TestParseSpaceDelimitedFields(t *testing.T) {
	t.Parallel()

	require.Nil(t, ParseSpaceDelimitedFields(""))
	require.Nil(t, ParseSpaceDelimitedFields("   "))
	require.Equal(t, []string{"me", "rates"}, ParseSpaceDelimitedFields(" me  rates "))
}
