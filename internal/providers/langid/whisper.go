package langid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/execx"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

const modelDownloadTimeout = 45 * time.Minute

// whisper.cpp reports the detection on stderr, ex:
// "whisper_full_with_state: auto-detected language: en (p = 0.958703)"
var detectedLanguageRe = regexp.MustCompile(`auto-detected language: ([a-z]{2,3}) \(p = ([0-9.]+)\)`)

// WhisperCLI identifies spoken language by shelling out to a whisper.cpp
// binary with a locally cached ggml model.
type WhisperCLI struct {
	bin      string
	size     string
	cacheDir string
	runner   execx.Runner
	download func(ctx context.Context, url, destPath string) error
	log      *logrus.Logger

	mu        sync.Mutex
	modelPath string
}

// NewWhisperCLI builds a provider for one model size. The model file itself
// is not fetched until the first EnsureReady or Identify call.
func NewWhisperCLI(bin, size, cacheDir string, runner execx.Runner, log *logrus.Logger) (*WhisperCLI, error) {
	if _, ok := modelBySize(size); !ok {
		return nil, fmt.Errorf("unknown whisper model size %q (choose one of: %s)", size, ModelSizeList())
	}
	return &WhisperCLI{
		bin:      bin,
		size:     size,
		cacheDir: cacheDir,
		runner:   runner,
		download: downloadURLToFile,
		log:      log,
	}, nil
}

// EnsureReady downloads the model weights into the cache directory unless a
// previous run already left them there. Concurrent callers block until the
// first one finishes; a failed download is retried by the next caller.
func (w *WhisperCLI) EnsureReady(ctx context.Context) error {
	const op = "WhisperCLI.EnsureReady"

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.modelPath != "" {
		return nil
	}

	model, _ := modelBySize(w.size)
	target := filepath.Join(w.cacheDir, model.FileName)
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		w.modelPath = target
		return nil
	}

	w.log.WithFields(logrus.Fields{
		"size": w.size,
		"file": model.FileName,
		"disk": model.SizeLabel,
	}).Info("downloading whisper model")

	if err := w.download(ctx, model.URL, target); err != nil {
		return utils.E(utils.CodeInference, op, fmt.Sprintf("failed to download %s whisper model", w.size), err)
	}

	w.modelPath = target
	w.log.WithField("path", target).Info("whisper model ready")
	return nil
}

func (w *WhisperCLI) Identify(ctx context.Context, audioPath string) (models.LanguageResult, error) {
	const op = "WhisperCLI.Identify"

	if err := w.EnsureReady(ctx); err != nil {
		return models.LanguageResult{}, err
	}

	w.mu.Lock()
	modelPath := w.modelPath
	w.mu.Unlock()

	args := []string{"-m", modelPath, "-f", audioPath, "--detect-language"}
	res, err := w.runner.Run(ctx, w.bin, args...)
	if err != nil {
		return models.LanguageResult{}, utils.E(utils.CodeInference, op,
			fmt.Sprintf("whisper failed with exit code %d", res.ExitCode), err)
	}

	result, ok := parseDetectedLanguage(res.Stderr + "\n" + res.Stdout)
	if !ok {
		return models.LanguageResult{}, utils.E(utils.CodeInference, op,
			"whisper output did not contain a detected language", nil)
	}

	w.log.WithFields(logrus.Fields{
		"language":   result.Code,
		"confidence": result.Confidence,
	}).Debug("language identified")
	return result, nil
}

func (w *WhisperCLI) Close() error { return nil }

func parseDetectedLanguage(output string) (models.LanguageResult, bool) {
	m := detectedLanguageRe.FindStringSubmatch(output)
	if m == nil {
		return models.LanguageResult{}, false
	}
	p, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return models.LanguageResult{}, false
	}
	return models.LanguageResult{Code: m[1], Confidence: p}, true
}

// downloadURLToFile fetches url into destPath through a temp file so a
// half-written model never shadows a good one.
func downloadURLToFile(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("prepare model directory: %w", err)
	}

	tmpPath := destPath + ".download"
	if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, modelDownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	_, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write model file: %w", copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close model file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("move model into place: %w", err)
	}
	return nil
}
