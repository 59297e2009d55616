package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestResolveParsesTheFirstResult(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/search")
		is.Equal(r.URL.Query().Get("postalcode"), "02118")
		is.Equal(r.URL.Query().Get("format"), "json")

		w.Write([]byte(`[{"lat":"42.3601","lon":"-71.0589"},{"lat":"0","lon":"0"}]`))
	}))
	defer server.Close()

	location, err := NewClient(server.URL).Resolve(context.Background(), "02118")
	is.NoErr(err)

	is.Equal(location.Latitude, 42.3601)
	is.Equal(location.Longitude, -71.0589)
}

func TestResolveUnknownPostalCode(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Resolve(context.Background(), "00000")
	is.True(errors.Is(err, ErrNotFound))
}

func TestResolveFailsOnUpstreamError(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Resolve(context.Background(), "02118")
	is.True(err != nil)
}
