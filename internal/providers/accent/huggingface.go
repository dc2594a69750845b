package accent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

// DefaultEndpoint serves the CommonAccent ECAPA-TDNN classifier trained on
// sixteen English accents from Common Voice.
const DefaultEndpoint = "https://api-inference.huggingface.co/models/Jzuluaga/accent-id-commonaccent_ecapa"

const (
	requestTimeout = 60 * time.Second
	maxLoadingWait = 30 * time.Second
)

// prediction is one scored class in the inference response.
type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// loadingInfo is the 503 body returned while the hosted model spins up.
type loadingInfo struct {
	Error        string  `json:"error"`
	EstimateTime float64 `json:"estimate_time"`
}

// HuggingFace classifies accents through a hosted inference endpoint.
type HuggingFace struct {
	endpoint string
	token    string
	client   *http.Client
	log      *logrus.Logger
	sleep    func(time.Duration)
}

func NewHuggingFace(endpoint, token string, log *logrus.Logger) *HuggingFace {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HuggingFace{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: requestTimeout},
		log:      log,
		sleep:    time.Sleep,
	}
}

// EnsureReady probes the endpoint so a cold model starts loading during boot
// instead of on the first user request. A model that is still loading after
// one wait is not an error; Classify waits again when needed.
func (h *HuggingFace) EnsureReady(ctx context.Context) error {
	const op = "HuggingFace.EnsureReady"

	status, body, err := h.post(ctx, nil)
	if err != nil {
		return utils.E(utils.CodeInference, op, "accent endpoint unreachable", err)
	}
	if status != http.StatusServiceUnavailable {
		return nil
	}

	wait, loading := loadingWait(body)
	if !loading {
		return utils.E(utils.CodeInference, op,
			fmt.Sprintf("accent endpoint returned status %d: %s", status, snippet(body)), nil)
	}

	h.log.WithField("wait", wait.String()).Info("accent model is loading")
	h.sleep(wait)

	status, body, err = h.post(ctx, nil)
	if err != nil {
		return utils.E(utils.CodeInference, op, "accent endpoint unreachable", err)
	}
	if status == http.StatusServiceUnavailable {
		if _, stillLoading := loadingWait(body); stillLoading {
			h.log.Warn("accent model still loading, first request may be slow")
			return nil
		}
		return utils.E(utils.CodeInference, op,
			fmt.Sprintf("accent endpoint returned status %d: %s", status, snippet(body)), nil)
	}
	return nil
}

func (h *HuggingFace) Classify(ctx context.Context, audioPath string) (models.AccentResult, error) {
	const op = "HuggingFace.Classify"

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return models.AccentResult{}, utils.E(utils.CodeInference, op, "failed to read audio file", err)
	}

	preds, err := h.predict(ctx, audio, true)
	if err != nil {
		return models.AccentResult{}, utils.E(utils.CodeInference, op, "accent classification failed", err)
	}

	best := bestPrediction(preds)
	label, ok := DisplayLabel(best.Label)
	if !ok {
		return models.AccentResult{}, utils.E(utils.CodeInference, op,
			fmt.Sprintf("model returned unknown accent class %q", best.Label), nil)
	}

	h.log.WithFields(logrus.Fields{
		"accent":     label,
		"confidence": best.Score,
	}).Debug("accent classified")
	return models.AccentResult{Label: label, Confidence: best.Score}, nil
}

func (h *HuggingFace) Close() error { return nil }

// predict sends audio bytes and decodes scored classes, waiting out one
// "model loading" response when retryOnLoading is set.
func (h *HuggingFace) predict(ctx context.Context, audio []byte, retryOnLoading bool) ([]prediction, error) {
	status, body, err := h.post(ctx, audio)
	if err != nil {
		return nil, err
	}

	if status == http.StatusServiceUnavailable {
		if wait, loading := loadingWait(body); loading && retryOnLoading {
			h.log.WithField("wait", wait.String()).Info("accent model is loading")
			h.sleep(wait)
			return h.predict(ctx, audio, false)
		}
		return nil, fmt.Errorf("model unavailable: %s", snippet(body))
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("inference returned status %d: %s", status, snippet(body))
	}

	return parsePredictions(body)
}

func (h *HuggingFace) post(ctx context.Context, audio []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(audio))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "audio/wav")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// parsePredictions accepts both response shapes seen in the wild: a flat
// list of scored classes or that list nested one level deep.
func parsePredictions(body []byte) ([]prediction, error) {
	var flat []prediction
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	var nested [][]prediction
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	return nil, fmt.Errorf("unrecognized inference response: %s", snippet(body))
}

// bestPrediction picks the highest score; on exact ties the earlier entry in
// the model's ordering wins.
func bestPrediction(preds []prediction) prediction {
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}

func loadingWait(body []byte) (time.Duration, bool) {
	var info loadingInfo
	if err := json.Unmarshal(body, &info); err != nil || info.Error == "" {
		return 0, false
	}
	wait := time.Duration(info.EstimateTime * float64(time.Second))
	if wait <= 0 || wait > maxLoadingWait {
		wait = maxLoadingWait
	}
	return wait, true
}

func snippet(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
