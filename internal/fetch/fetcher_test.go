package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

func newTestFetcher(maxBytes int64) Fetcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHTTPFetcher(5*time.Second, maxBytes, log)
}

func TestFetchWritesBodyToDisk(t *testing.T) {
	payload := []byte("fake mp4 payload")
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "video.mp4")
	err := newTestFetcher(1 << 20).Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Contains(t, gotAgent, "Mozilla/5.0")
}

func TestFetchRejectsNonVideoURL(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video.mp4")

	err := newTestFetcher(1 << 20).Fetch(context.Background(), "not-a-url", dest)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeDownload))

	err = newTestFetcher(1 << 20).Fetch(context.Background(), "ftp://example.com/clip.mp4", dest)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeDownload))
}

func TestFetchRejectsHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestFetcher(1 << 20).Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "video.mp4"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeDownload))
	assert.Contains(t, err.Error(), "404")
}

func TestFetchRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestFetcher(1 << 20).Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "video.mp4"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeDownload))
	assert.Contains(t, err.Error(), "empty")
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	err := newTestFetcher(1024).Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "video.mp4"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeDownload))
}
