package accent

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

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

func newTestClient(endpoint, token string) *HuggingFace {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHuggingFace(endpoint, token, log)
	h.sleep = func(time.Duration) {}
	return h
}

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wav bytes"), 0o644))
	return path
}

func TestClassifyPicksTopPrediction(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`[{"label":"england","score":0.873},{"label":"us","score":0.081}]`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, "hf_token").Classify(context.Background(), writeTestAudio(t))
	require.NoError(t, err)

	assert.Equal(t, "British", result.Label)
	assert.InDelta(t, 0.873, result.Confidence, 0.0001)
	assert.Equal(t, "Bearer hf_token", gotAuth)
	assert.Equal(t, "audio/wav", gotContentType)
	assert.Equal(t, []byte("RIFF fake wav bytes"), gotBody)
}

func TestClassifyWithoutTokenSendsNoAuthHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[{"label":"us","score":0.9}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClassifyHandlesNestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"us","score":0.91},{"label":"canada","score":0.05}]]`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "American", result.Label)
	assert.InDelta(t, 0.91, result.Confidence, 0.0001)
}

func TestClassifyTieKeepsModelOrdering(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"scotland","score":0.5},{"label":"ireland","score":0.5}]`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "Scottish", result.Label)
}

func TestClassifyRejectsUnknownClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"atlantis","score":0.99}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInference))
	assert.Contains(t, err.Error(), "atlantis")
}

func TestClassifyWaitsOutLoadingModel(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimate_time":2.0}`))
			return
		}
		_, _ = w.Write([]byte(`[{"label":"australia","score":0.77}]`))
	}))
	defer srv.Close()

	var slept time.Duration
	h := newTestClient(srv.URL, "")
	h.sleep = func(d time.Duration) { slept = d }

	result, err := h.Classify(context.Background(), writeTestAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "Australian", result.Label)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2*time.Second, slept)
}

func TestClassifyGivesUpWhenModelStaysLoading(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimate_time":1.0}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInference))
	assert.Equal(t, 2, calls)
}

func TestClassifyReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Classify(context.Background(), writeTestAudio(t))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInference))
	assert.Contains(t, err.Error(), "500")
}

func TestEnsureReadyWhenModelIsWarm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"No audio provided"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv.URL, "").EnsureReady(context.Background()))
}

func TestEnsureReadyWaitsForColdModel(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimate_time":5.0}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	var slept time.Duration
	h := newTestClient(srv.URL, "")
	h.sleep = func(d time.Duration) { slept = d }

	require.NoError(t, h.EnsureReady(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 5*time.Second, slept)
}

func TestEnsureReadyToleratesSlowLoading(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimate_time":60.0}`))
	}))
	defer srv.Close()

	// Still loading after the wait is not fatal: requests wait again.
	assert.NoError(t, newTestClient(srv.URL, "").EnsureReady(context.Background()))
}

func TestEnsureReadyFailsWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := newTestClient(srv.URL, "").EnsureReady(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInference))
}

func TestLoadingWaitCapsLongEstimates(t *testing.T) {
	wait, loading := loadingWait([]byte(`{"error":"loading","estimate_time":300.0}`))
	require.True(t, loading)
	assert.Equal(t, maxLoadingWait, wait)

	_, loading = loadingWait([]byte(`{"message":"no error field"}`))
	assert.False(t, loading)
}

func TestDisplayLabelCoversCanonicalSet(t *testing.T) {
	assert.Len(t, displayLabels, 16)
	for code, label := range displayLabels {
		assert.True(t, models.IsAccentLabel(label), "code %q maps to unknown label %q", code, label)
	}

	_, ok := DisplayLabel("atlantis")
	assert.False(t, ok)
}
