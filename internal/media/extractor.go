package media

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/execx"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

// Whisper-family models expect mono 16 kHz 16-bit PCM input; anything under
// this size cannot hold even a fraction of a second of such audio.
const minAudioBytes = 1000

// Extractor pulls the audio track out of a downloaded video file.
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}

type ffmpegExtractor struct {
	bin    string
	runner execx.Runner
	log    *logrus.Logger
}

// NewFFmpegExtractor builds an Extractor that shells out to the given ffmpeg
// binary.
func NewFFmpegExtractor(bin string, runner execx.Runner, log *logrus.Logger) Extractor {
	return &ffmpegExtractor{bin: bin, runner: runner, log: log}
}

func (e *ffmpegExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	const op = "FFmpegExtractor.Extract"

	res, err := e.runner.Run(ctx, e.bin, buildFFmpegArgs(videoPath, audioPath)...)
	if err != nil {
		if strings.Contains(res.Stderr, "Output file does not contain any stream") {
			return utils.E(utils.CodeExtraction, op, "no audio track found in video", err)
		}
		return utils.E(utils.CodeExtraction, op, fmt.Sprintf("ffmpeg failed with exit code %d", res.ExitCode), err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return utils.E(utils.CodeExtraction, op, "ffmpeg completed but audio file is missing", err)
	}
	if info.Size() < minAudioBytes {
		return utils.E(utils.CodeExtraction, op, fmt.Sprintf("extracted audio too small: %d bytes", info.Size()), nil)
	}

	e.log.WithFields(logrus.Fields{
		"video": videoPath,
		"audio": audioPath,
		"bytes": info.Size(),
	}).Debug("audio extracted")
	return nil
}

// buildFFmpegArgs builds CLI args for mono 16k PCM WAV output.
func buildFFmpegArgs(videoPath, audioPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		audioPath,
	}
}
