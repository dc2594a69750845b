package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/config"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/execx"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/fetch"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/logger"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/media"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/accent"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/langid"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/services"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the result as JSON")
	modelSize := flag.String("model", "", "whisper model size, one of: "+langid.ModelSizeList())
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: accent-cli [flags] <video-url>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	videoURL := flag.Arg(0)

	_ = godotenv.Load()

	// results go to stdout, logs to stderr
	log := logger.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("LOG_FORMAT") == "" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if *modelSize != "" {
		cfg.WhisperModelSize = *modelSize
	}

	runner := &execx.ExecRunner{}

	langID, err := langid.NewWhisperCLI(cfg.WhisperBin, cfg.WhisperModelSize, cfg.ModelCacheDir, runner, log)
	if err != nil {
		log.WithError(err).Fatal("language identifier init error")
	}
	defer langID.Close()

	accentID := accent.NewHuggingFace(cfg.AccentEndpoint, cfg.AccentToken, log)
	defer accentID.Close()

	svc := services.NewProcessService(
		fetch.NewHTTPFetcher(cfg.DownloadTimeout, cfg.MaxVideoBytes, log),
		media.NewFFmpegExtractor(cfg.FFmpegBin, runner, log),
		langID,
		accentID,
		cfg.TempDir,
		log,
	)

	if !*jsonOut {
		color.Cyan("============================================")
		color.Cyan("   English Accent Detection")
		color.Cyan("============================================")
		fmt.Printf("Processing: %s\n", videoURL)
		fmt.Println("The first run downloads model weights and may take a while.")
	}

	result, err := svc.Process(context.Background(), videoURL)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			log.WithError(encErr).Fatal("failed to encode result")
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	fmt.Println()
	if err != nil {
		color.Red("Processing failed: %s", result.Message)
		if result.Language != "" {
			fmt.Printf("%-22s: %s (%.1f%% confidence)\n", "Language",
				result.Language, models.ConfidencePercentage(result.LanguageConfidence))
		}
		if result.Summary != "" {
			fmt.Println(result.Summary)
		}
		os.Exit(1)
	}

	color.Green("Processing completed")
	fmt.Printf("%-22s: %s\n", "Video URL", result.VideoURL)
	fmt.Printf("%-22s: %s (%.1f%% confidence)\n", "Language",
		result.Language, models.ConfidencePercentage(result.LanguageConfidence))
	fmt.Printf("%-22s: %s\n", "Accent", result.Accent)
	fmt.Printf("%-22s: %.1f%%\n", "Accent confidence", result.AccentConfidencePercentage)
	color.Green("%s", result.Summary)
}
