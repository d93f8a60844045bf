package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hibiken/asynq"

	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/queuetrack"
	"github.com/gifsmith/gifsmith/internal/repository"
	"github.com/gifsmith/gifsmith/internal/storage"
	"github.com/gifsmith/gifsmith/internal/transcribe"
)

// ──────── Transcribe Handler ────────

type TranscribeHandler struct {
	jobRepo    *repository.JobRepository
	tracker    *queuetrack.Tracker
	provider   transcribe.Provider
	lib        *storage.Library
	ffmpegPath string
	notifier   EventNotifier
}

func NewTranscribeHandler(jobRepo *repository.JobRepository, tracker *queuetrack.Tracker,
	provider transcribe.Provider, lib *storage.Library, ffmpegPath string, notifier EventNotifier) *TranscribeHandler {
	return &TranscribeHandler{
		jobRepo:    jobRepo,
		tracker:    tracker,
		provider:   provider,
		lib:        lib,
		ffmpegPath: ffmpegPath,
		notifier:   notifier,
	}
}

func (h *TranscribeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p TranscribePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	// The queue entry is released on every exit path, keyed by task id.
	// A fresh context so cancellation cannot leave phantom queue depth.
	defer func() {
		if err := h.tracker.Remove(context.Background(), ClassProcessVideo, p.TaskID); err != nil {
			log.Printf("Transcribe: failed to release queue entry %s: %v", p.TaskID, err)
		}
	}()

	log.Printf("Transcribe: processing video %s (task %s)", p.VideoID, p.TaskID)
	h.setStatus(models.KindVideo, p, models.StatusProcessing, nil)

	segments, err := h.transcribeVideo(ctx, p.VideoID)
	if err != nil {
		// Logged with context and converted to a terminal failure; the
		// worker process itself never dies on a bad job.
		log.Printf("Transcribe: video %s failed: %v", p.VideoID, err)
		h.setStatus(models.KindVideo, p, models.StatusFailed, nil)
		return nil
	}

	h.setStatus(models.KindVideo, p, models.StatusProcessed, segments)
	log.Printf("Transcribe: video %s processed, %d segments", p.VideoID, len(segments))
	return nil
}

func (h *TranscribeHandler) transcribeVideo(ctx context.Context, videoID string) ([]models.Segment, error) {
	tempDir, err := os.MkdirTemp("", "gifsmith-audio-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.wav")
	if err := transcribe.ExtractAudio(ctx, h.ffmpegPath, h.lib.VideoPath(videoID), audioPath); err != nil {
		return nil, err
	}
	return h.provider.Transcribe(ctx, audioPath)
}

func (h *TranscribeHandler) setStatus(kind models.JobKind, p TranscribePayload, status models.JobStatus, segments []models.Segment) {
	if err := h.jobRepo.UpdateStatus(kind, p.TaskID, status, segments); err != nil {
		log.Printf("Transcribe: status update to %s failed for task %s: %v", status, p.TaskID, err)
		return
	}
	if h.notifier != nil {
		h.notifier.Broadcast("job:update", map[string]interface{}{
			"kind": string(kind), "video_id": p.VideoID, "task_id": p.TaskID, "status": string(status),
		})
	}
}
