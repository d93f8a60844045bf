package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/queuetrack"
	"github.com/gifsmith/gifsmith/internal/render"
	"github.com/gifsmith/gifsmith/internal/repository"
)

// ──────── Render Handler ────────

type RenderHandler struct {
	jobRepo  *repository.JobRepository
	tracker  *queuetrack.Tracker
	pipeline *render.Pipeline
	notifier EventNotifier
}

func NewRenderHandler(jobRepo *repository.JobRepository, tracker *queuetrack.Tracker,
	pipeline *render.Pipeline, notifier EventNotifier) *RenderHandler {
	return &RenderHandler{jobRepo: jobRepo, tracker: tracker, pipeline: pipeline, notifier: notifier}
}

func (h *RenderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p RenderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	defer func() {
		if err := h.tracker.Remove(context.Background(), ClassGenerateGifs, p.TaskID); err != nil {
			log.Printf("Render: failed to release queue entry %s: %v", p.TaskID, err)
		}
	}()

	log.Printf("Render: generating gifs for video %s (task %s, %d segments)", p.VideoID, p.TaskID, len(p.Segments))
	h.setStatus(p, models.StatusProcessing)

	// Submission already validated the template; a malformed payload that
	// slipped past it still fails the job rather than the worker.
	if err := p.Template.Validate(); err != nil {
		log.Printf("Render: video %s rejected: %v", p.VideoID, err)
		h.setStatus(p, models.StatusFailed)
		return nil
	}

	zipPath, err := h.pipeline.Render(ctx, p.VideoID, p.Segments, p.Template)
	if err != nil {
		log.Printf("Render: video %s failed: %v", p.VideoID, err)
		h.setStatus(p, models.StatusFailed)
		return nil
	}

	h.setStatus(p, models.StatusComplete)
	log.Printf("Render: video %s complete, archive at %s", p.VideoID, zipPath)
	return nil
}

func (h *RenderHandler) setStatus(p RenderPayload, status models.JobStatus) {
	if err := h.jobRepo.UpdateStatus(models.KindGif, p.TaskID, status, nil); err != nil {
		log.Printf("Render: status update to %s failed for task %s: %v", status, p.TaskID, err)
		return
	}
	if h.notifier != nil {
		h.notifier.Broadcast("job:update", map[string]interface{}{
			"kind": string(models.KindGif), "video_id": p.VideoID, "task_id": p.TaskID, "status": string(status),
		})
	}
}
