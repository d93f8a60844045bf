package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/gifsmith/gifsmith/internal/caption"
	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/queuetrack"
	"github.com/gifsmith/gifsmith/internal/repository"
)

// Submitter is the inbound job surface: it records a job, registers it
// with the queue tracker and hands it to the broker, in that order, so a
// client can poll status the moment submission returns.
type Submitter struct {
	queue   *Queue
	tracker *queuetrack.Tracker
	jobRepo *repository.JobRepository
}

func NewSubmitter(queue *Queue, tracker *queuetrack.Tracker, jobRepo *repository.JobRepository) *Submitter {
	return &Submitter{queue: queue, tracker: tracker, jobRepo: jobRepo}
}

// SubmitTranscription queues a transcription job for an uploaded video and
// returns the task id.
func (s *Submitter) SubmitTranscription(ctx context.Context, videoID uuid.UUID) (string, error) {
	taskID := uuid.NewString()
	if err := s.jobRepo.Create(models.KindVideo, videoID, taskID); err != nil {
		return "", err
	}
	if err := s.tracker.Enqueue(ctx, ClassProcessVideo, taskID); err != nil {
		return "", err
	}
	payload := TranscribePayload{VideoID: videoID.String(), TaskID: taskID}
	if err := s.queue.Enqueue(TaskProcessVideo, payload, taskID); err != nil {
		s.abandon(ctx, models.KindVideo, ClassProcessVideo, taskID)
		return "", err
	}
	return taskID, nil
}

// SubmitRender queues a render job over the given transcript segments.
// The template must already carry defaults; it is validated here, before
// any work begins.
func (s *Submitter) SubmitRender(ctx context.Context, videoID uuid.UUID, segments []models.Segment, tpl caption.Template) (string, error) {
	if err := tpl.Validate(); err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("no segments to render for video %s", videoID)
	}

	taskID := uuid.NewString()
	if err := s.jobRepo.Create(models.KindGif, videoID, taskID); err != nil {
		return "", err
	}
	if err := s.tracker.Enqueue(ctx, ClassGenerateGifs, taskID); err != nil {
		return "", err
	}
	payload := RenderPayload{VideoID: videoID.String(), TaskID: taskID, Segments: segments, Template: tpl}
	if err := s.queue.Enqueue(TaskGenerateGifs, payload, taskID); err != nil {
		s.abandon(ctx, models.KindGif, ClassGenerateGifs, taskID)
		return "", err
	}
	return taskID, nil
}

// abandon backs out a half-submitted job after a broker failure.
func (s *Submitter) abandon(ctx context.Context, kind models.JobKind, class, taskID string) {
	if err := s.tracker.Remove(ctx, class, taskID); err != nil {
		log.Printf("Submit: failed to back out queue entry %s: %v", taskID, err)
	}
	if err := s.jobRepo.UpdateStatus(kind, taskID, models.StatusFailed, nil); err != nil {
		log.Printf("Submit: failed to mark %s as failed: %v", taskID, err)
	}
}

// StatusInfo is what a polling client sees: last known status plus the
// advisory queue position (nil once the job left the queue).
type StatusInfo struct {
	VideoID       uuid.UUID        `json:"video_id"`
	TaskID        string           `json:"task_id"`
	Status        models.JobStatus `json:"status"`
	QueuePosition *int             `json:"queue_position"`
}

// JobStatus composes the record store lookup with the tracker position.
// Unknown task ids fail with repository.ErrJobNotFound; a merely
// not-yet-complete job never errors. Tracker outages degrade to an absent
// position rather than failing the query.
func (s *Submitter) JobStatus(ctx context.Context, kind models.JobKind, taskID string) (*StatusInfo, error) {
	job, err := s.jobRepo.GetByTaskID(kind, taskID)
	if err != nil {
		return nil, err
	}

	class := ClassProcessVideo
	if kind == models.KindGif {
		class = ClassGenerateGifs
	}

	info := &StatusInfo{VideoID: job.VideoID, TaskID: job.TaskID, Status: job.Status}
	pos, ok, err := s.tracker.Position(ctx, class, taskID)
	if err != nil {
		log.Printf("Status: queue position unavailable for %s: %v", taskID, err)
	} else if ok {
		info.QueuePosition = &pos
	}
	return info, nil
}
