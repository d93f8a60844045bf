package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gifsmith/gifsmith/internal/models"
)

var (
	// ErrJobNotFound reports a lookup or update for a task id that was
	// never issued.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidTransition reports an attempt to move a job out of a
	// terminal status, or otherwise against the lifecycle order.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateJob reports a create colliding with an existing record.
	ErrDuplicateJob = errors.New("job already exists")
)

// JobRepository persists transcription and render job records. The two
// kinds share a shape but live in separate tables, because a render job's
// payload references a transcription job's output by video id.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func tableFor(kind models.JobKind) string {
	if kind == models.KindGif {
		return "gif_jobs"
	}
	return "video_jobs"
}

const pqUniqueViolation = "23505"

// Create inserts a new record in the queued state.
func (r *JobRepository) Create(kind models.JobKind, videoID uuid.UUID, taskID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (video_id, task_id, status) VALUES ($1, $2, $3)`, tableFor(kind))
	_, err := r.db.Exec(query, videoID, taskID, models.StatusQueued)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: %s %s", ErrDuplicateJob, kind, videoID)
		}
		return fmt.Errorf("create %s job: %w", kind, err)
	}
	return nil
}

// UpdateStatus moves a job to a new status, optionally attaching the
// transcript payload, matched by task id. Unknown ids fail with
// ErrJobNotFound; transitions out of a terminal state fail with
// ErrInvalidTransition. Each job is only ever written by the one worker
// processing it, so the read-check-write runs in a short transaction with
// a row lock rather than a DB constraint.
func (r *JobRepository) UpdateStatus(kind models.JobKind, taskID string, status models.JobStatus, segments []models.Segment) error {
	table := tableFor(kind)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var current models.JobStatus
	query := fmt.Sprintf(`SELECT status FROM %s WHERE task_id = $1 FOR UPDATE`, table)
	if err := tx.QueryRow(query, taskID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s task %s", ErrJobNotFound, kind, taskID)
		}
		return fmt.Errorf("read %s job: %w", kind, err)
	}
	if !models.CanTransition(current, status) {
		return fmt.Errorf("%w: %s -> %s for %s task %s", ErrInvalidTransition, current, status, kind, taskID)
	}

	if segments != nil {
		payload, err := json.Marshal(segments)
		if err != nil {
			return fmt.Errorf("marshal segments: %w", err)
		}
		query = fmt.Sprintf(`UPDATE %s SET status = $1, segments = $2, updated_at = now() WHERE task_id = $3`, table)
		_, err = tx.Exec(query, status, payload, taskID)
		if err != nil {
			return fmt.Errorf("update %s job: %w", kind, err)
		}
	} else {
		query = fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = now() WHERE task_id = $2`, table)
		if _, err := tx.Exec(query, status, taskID); err != nil {
			return fmt.Errorf("update %s job: %w", kind, err)
		}
	}
	return tx.Commit()
}

// GetByVideoID returns the record for a video id; for gif jobs, the most
// recently created one.
func (r *JobRepository) GetByVideoID(kind models.JobKind, videoID uuid.UUID) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT video_id, task_id, status, segments, created_at, updated_at
		FROM %s WHERE video_id = $1 ORDER BY created_at DESC LIMIT 1`, tableFor(kind))
	return r.scanJob(r.db.QueryRow(query, videoID), kind)
}

func (r *JobRepository) GetByTaskID(kind models.JobKind, taskID string) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT video_id, task_id, status, segments, created_at, updated_at
		FROM %s WHERE task_id = $1`, tableFor(kind))
	return r.scanJob(r.db.QueryRow(query, taskID), kind)
}

func (r *JobRepository) scanJob(row *sql.Row, kind models.JobKind) (*models.Job, error) {
	job := &models.Job{}
	var payload []byte
	err := row.Scan(&job.VideoID, &job.TaskID, &job.Status, &payload, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s job: %w", kind, err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &job.Segments); err != nil {
			return nil, fmt.Errorf("decode %s segments: %w", kind, err)
		}
	}
	return job, nil
}
