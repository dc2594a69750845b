package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/fetch"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/media"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/accent"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/providers/langid"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

// englishConfidenceThreshold gates accent classification: identification must
// be at least this sure the speech is English.
const englishConfidenceThreshold = 0.5

type ProcessService interface {
	// Process runs the full pipeline for one video URL. The returned result
	// is always non-nil; on failure it carries status=failure and the error
	// describes which stage broke.
	Process(ctx context.Context, videoURL string) (*models.ProcessingResult, error)
}

type processService struct {
	fetcher   fetch.Fetcher
	extractor media.Extractor
	langID    langid.Provider
	accent    accent.Provider
	tmpDir    string
	log       *logrus.Logger

	// test seam for observing stage transitions
	onStage func(models.Stage)
}

func NewProcessService(
	fetcher fetch.Fetcher,
	extractor media.Extractor,
	langID langid.Provider,
	accentClassifier accent.Provider,
	tmpDir string,
	log *logrus.Logger,
) ProcessService {
	return &processService{
		fetcher:   fetcher,
		extractor: extractor,
		langID:    langID,
		accent:    accentClassifier,
		tmpDir:    tmpDir,
		log:       log,
	}
}

func (s *processService) Process(ctx context.Context, videoURL string) (*models.ProcessingResult, error) {
	const op = "ProcessService.Process"

	result := &models.ProcessingResult{
		Status:   models.StatusFailure,
		VideoURL: videoURL,
	}

	if strings.TrimSpace(videoURL) == "" {
		result.Message = "video_url is required"
		return result, utils.E(utils.CodeInvalidArgument, op, "video_url is required", nil)
	}

	workDir, err := os.MkdirTemp(s.tmpDir, "accent-*")
	if err != nil {
		result.Message = "failed to create temp workspace"
		return result, utils.E(utils.CodeInternal, op, "failed to create temp workspace", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			s.log.WithError(rmErr).WithField("dir", workDir).Warn("failed to remove temp workspace")
		}
	}()

	videoPath := filepath.Join(workDir, "video.mp4")
	audioPath := filepath.Join(workDir, "audio.wav")
	log := s.log.WithField("url", videoURL)

	s.stage(models.StageFetching)
	log.Info("downloading video")
	if err := s.fetcher.Fetch(ctx, videoURL, videoPath); err != nil {
		return s.fail(result, err), err
	}

	s.stage(models.StageExtracting)
	log.Info("extracting audio")
	if err := s.extractor.Extract(ctx, videoPath, audioPath); err != nil {
		return s.fail(result, err), err
	}

	s.stage(models.StageIdentifyingLanguage)
	log.Info("identifying language")
	lang, err := s.langID.Identify(ctx, audioPath)
	if err != nil {
		return s.fail(result, err), err
	}

	if !lang.IsEnglish(englishConfidenceThreshold) {
		s.stage(models.StageFailed)
		result.Language = lang.Code
		result.LanguageConfidence = lang.Confidence
		if lang.Code == "en" {
			result.Message = fmt.Sprintf("English detected with low confidence: %.2f", lang.Confidence)
		} else {
			result.Message = fmt.Sprintf("Non-English audio detected: %s", lang.Code)
		}
		result.Summary = "Accent detection only works for English audio."
		log.WithFields(logrus.Fields{
			"language":   lang.Code,
			"confidence": lang.Confidence,
		}).Info("language mismatch")
		return result, utils.E(utils.CodeLanguageMismatch, op, result.Message, nil)
	}

	s.stage(models.StageClassifyingAccent)
	log.Info("classifying accent")
	acc, err := s.accent.Classify(ctx, audioPath)
	if err != nil {
		return s.fail(result, err), err
	}

	pct := acc.Percentage()
	result.Status = models.StatusSuccess
	result.Language = lang.Code
	result.LanguageConfidence = lang.Confidence
	result.Accent = acc.Label
	result.AccentConfidence = acc.Confidence
	result.AccentConfidencePercentage = pct
	result.Summary = fmt.Sprintf("Detected %s accent with %.1f%% confidence", acc.Label, pct)
	result.Message = "Processing completed successfully"

	s.stage(models.StageDone)
	log.WithFields(logrus.Fields{
		"language": lang.Code,
		"accent":   acc.Label,
		"percent":  pct,
	}).Info("processing complete")
	return result, nil
}

// fail marks the failed stage and keeps only the error message on the result;
// data from completed stages is discarded.
func (s *processService) fail(result *models.ProcessingResult, err error) *models.ProcessingResult {
	s.stage(models.StageFailed)
	result.Message = utils.ErrMessage(err)
	return result
}

func (s *processService) stage(st models.Stage) {
	if s.onStage != nil {
		s.onStage(st)
	}
}
