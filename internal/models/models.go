package models

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Enums ────────────────────

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusProcessed  JobStatus = "processed" // terminal state for transcription jobs
	StatusComplete   JobStatus = "complete"  // terminal state for render jobs
	StatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether a job in this status can never change again.
func (s JobStatus) IsTerminal() bool {
	return s == StatusProcessed || s == StatusComplete || s == StatusFailed
}

// CanTransition reports whether a status change is allowed. Transitions are
// monotone: queued → processing → {processed|complete|failed}. Skipping the
// processing step is allowed; leaving a terminal state is not.
func CanTransition(from, to JobStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case StatusProcessing:
		return from == StatusQueued
	case StatusProcessed, StatusComplete, StatusFailed:
		return from == StatusQueued || from == StatusProcessing
	default:
		return false
	}
}

// ──────────────────── Transcript ────────────────────

// Word is a single transcribed word with absolute timestamps in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a transcript-level time range with its word list. Word
// intervals may overshoot the segment bounds slightly; the render step
// extends rather than rejects.
type Segment struct {
	Start float64 `json:"segment_start"`
	End   float64 `json:"segment_end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

// ──────────────────── Jobs ────────────────────

// JobKind selects which record table a job lives in.
type JobKind string

const (
	KindVideo JobKind = "video" // transcription job
	KindGif   JobKind = "gif"   // render job
)

// Job is one unit of transcription or rendering work, identified
// externally by the video id and internally by the queue task id.
// Records are never deleted; they are the audit trail.
type Job struct {
	VideoID   uuid.UUID `json:"video_id"`
	TaskID    string    `json:"task_id"`
	Status    JobStatus `json:"status"`
	Segments  []Segment `json:"segments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
