package relax

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadioSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/stations/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "jazz", q.Get("tag"))
		assert.Equal(t, "4", q.Get("limit"))
		assert.Equal(t, "true", q.Get("hidebroken"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"stationuuid":"s1","name":" Smooth Jazz ","url_resolved":"http://stream.test/1","favicon":"http://stream.test/1.png","tags":"jazz","country":"Germany","bitrate":128},
			{"stationuuid":"s2","name":"Night Jazz","url_resolved":"http://stream.test/2","favicon":"","tags":"jazz,chill","country":"France","bitrate":192}
		]`))
	}))
	defer srv.Close()

	stations, err := NewRadioClient(srv.URL).Search(context.Background(), StationSearch{Tag: "jazz"})
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "Smooth Jazz", stations[0].Name)
	assert.Equal(t, "http://stream.test/1", stations[0].URL)
	assert.Equal(t, 192, stations[1].Bitrate)
}

func TestRadioSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRadioClient(srv.URL).Search(context.Background(), StationSearch{Tag: "jazz"})
	require.Error(t, err)
}

func TestStationTagsStable(t *testing.T) {
	// The widget renders these as filter chips; "hit" is the default.
	assert.Equal(t, "hit", StationTags[0])
	assert.Contains(t, StationTags, "jazz")
	assert.Contains(t, StationTags, "rock")
}
