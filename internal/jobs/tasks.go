package jobs

import (
	"github.com/gifsmith/gifsmith/internal/caption"
	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/queuetrack"
	"github.com/gifsmith/gifsmith/internal/repository"
	"github.com/gifsmith/gifsmith/internal/render"
	"github.com/gifsmith/gifsmith/internal/storage"
	"github.com/gifsmith/gifsmith/internal/transcribe"
)

// ──────── Payloads ────────

type TranscribePayload struct {
	VideoID string `json:"video_id"`
	TaskID  string `json:"task_id"`
}

type RenderPayload struct {
	VideoID  string           `json:"video_id"`
	TaskID   string           `json:"task_id"`
	Segments []models.Segment `json:"segments"`
	Template caption.Template `json:"template"`
}

type EventNotifier interface {
	Broadcast(event string, data interface{})
}

// ──────── Register all handlers ────────

func RegisterHandlers(q *Queue, jobRepo *repository.JobRepository, tracker *queuetrack.Tracker,
	provider transcribe.Provider, pipeline *render.Pipeline, lib *storage.Library,
	ffmpegPath string, notifier EventNotifier) {

	q.RegisterHandler(TaskProcessVideo, NewTranscribeHandler(jobRepo, tracker, provider, lib, ffmpegPath, notifier))
	q.RegisterHandler(TaskGenerateGifs, NewRenderHandler(jobRepo, tracker, pipeline, notifier))
}
