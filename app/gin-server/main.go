package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/WadiaaTouhami/EngAccent-detection/config"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/api/handlers"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/api/middleware"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/api/routes"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/execx"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/fetch"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/logger"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/media"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/accent"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/langid"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	runner := &execx.ExecRunner{}

	langID, err := langid.NewWhisperCLI(cfg.WhisperBin, cfg.WhisperModelSize, cfg.ModelCacheDir, runner, log)
	if err != nil {
		log.WithError(err).Fatal("language identifier init error")
	}
	defer langID.Close()

	accentID := accent.NewHuggingFace(cfg.AccentEndpoint, cfg.AccentToken, log)
	defer accentID.Close()

	// Make the models ready before accepting traffic so the first request
	// does not pay for the weights download.
	ctx := context.Background()
	if err := langID.EnsureReady(ctx); err != nil {
		log.WithError(err).Fatal("whisper model init error")
	}
	if err := accentID.EnsureReady(ctx); err != nil {
		log.WithError(err).Warn("accent endpoint not ready yet, continuing")
	}

	svc := services.NewProcessService(
		fetch.NewHTTPFetcher(cfg.DownloadTimeout, cfg.MaxVideoBytes, log),
		media.NewFFmpegExtractor(cfg.FFmpegBin, runner, log),
		langID,
		accentID,
		cfg.TempDir,
		log,
	)

	// Start Gin server
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())
	r.SetHTMLTemplate(handlers.Template())

	routes.RegisterRoutes(r, routes.Deps{
		Process: handlers.NewProcessHandler(svc),
		Web:     handlers.NewWebHandler(svc),
	})

	log.WithField("port", cfg.Port).Info("accent detection server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
