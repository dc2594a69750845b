package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

// Some CDNs refuse requests without a browser-looking agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher downloads one remote video into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL, destPath string) error
}

type httpFetcher struct {
	client   *http.Client
	maxBytes int64
	log      *logrus.Logger
}

// NewHTTPFetcher builds a Fetcher with a hard per-request timeout and a byte
// cap on the response body.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64, log *logrus.Logger) Fetcher {
	return &httpFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		log:      log,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, videoURL, destPath string) error {
	const op = "HTTPFetcher.Fetch"

	u, err := url.Parse(videoURL)
	if err != nil {
		return utils.E(utils.CodeDownload, op, "invalid video URL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return utils.E(utils.CodeDownload, op, fmt.Sprintf("unsupported video URL: %s", videoURL), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return utils.E(utils.CodeDownload, op, "failed to build download request", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return utils.E(utils.CodeDownload, op, "failed to download video", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return utils.E(utils.CodeDownload, op, fmt.Sprintf("download failed with status %d", resp.StatusCode), nil)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create video file", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return utils.E(utils.CodeDownload, op, "failed to write video to disk", err)
	}
	if written == 0 {
		return utils.E(utils.CodeDownload, op, "downloaded file is empty", nil)
	}
	if written > f.maxBytes {
		return utils.E(utils.CodeDownload, op, fmt.Sprintf("video larger than %d MB limit", f.maxBytes>>20), nil)
	}

	f.log.WithFields(logrus.Fields{
		"url":     videoURL,
		"size_mb": float64(written) / (1 << 20),
	}).Info("video downloaded")
	return nil
}
