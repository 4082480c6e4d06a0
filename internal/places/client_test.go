package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

var manipal = &Location{Lat: 13.35, Lon: 74.78}

func TestFindNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "13.35,74.78", q.Get("location"))
		assert.Equal(t, "5000", q.Get("radius"))
		assert.Equal(t, "doctor", q.Get("type"))
		assert.Equal(t, "k", q.Get("key"))
		w.Write([]byte(`{"status":"OK","results":[
			{"name":"Lung Care Clinic","vicinity":"1 Main Rd","rating":4.5,"photos":[{"photo_reference":"ph1"}]},
			{"name":"City Hospital","vicinity":"2 Hill St"}
		]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "k", nil).FindNearby(context.Background(), manipal, 5000, "doctor")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Lung Care Clinic", got[0].Name)
	assert.Equal(t, "1 Main Rd", got[0].Address)
	require.NotNil(t, got[0].Rating)
	assert.InDelta(t, 4.5, *got[0].Rating, 1e-9)
	assert.Equal(t, "ph1", got[0].PhotoRef)

	assert.Nil(t, got[1].Rating)
	assert.Empty(t, got[1].PhotoRef)
}

func TestFindNearby_ZeroResults(t *testing.T) {
	srv := serve(t, `{"status":"ZERO_RESULTS","results":[]}`)

	got, err := NewClient(srv.URL, "k", nil).FindNearby(context.Background(), manipal, 100, "doctor")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindNearby_ProviderError(t *testing.T) {
	srv := serve(t, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`)

	_, err := NewClient(srv.URL, "k", nil).FindNearby(context.Background(), manipal, 100, "doctor")
	require.Error(t, err)
	assert.Equal(t, "The provided API key is invalid.", err.Error())
}

func TestFindNearby_NoLocation(t *testing.T) {
	_, err := NewClient("http://unused", "k", nil).FindNearby(context.Background(), nil, 100, "doctor")
	assert.ErrorIs(t, err, ErrLocationDenied)
}

func TestFindNearby_NoKey(t *testing.T) {
	_, err := NewClient("http://unused", "", nil).FindNearby(context.Background(), manipal, 100, "doctor")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
