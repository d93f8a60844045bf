package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/repository"
)

// ──────────────────── Transcription jobs ────────────────────

// handleUploadVideo accepts a multipart video upload, stores it under a
// fresh id and queues a transcription job.
func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()

	videoID := uuid.New()
	if _, err := s.lib.SaveUpload(videoID.String(), file); err != nil {
		log.Printf("Upload: saving %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to save upload")
		return
	}

	taskID, err := s.submitter.SubmitTranscription(r.Context(), videoID)
	if err != nil {
		log.Printf("Upload: submitting %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to queue transcription")
		return
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{
		"video_id": videoID.String(),
		"task_id":  taskID,
	}})
}

func (s *Server) handleVideoStatus(w http.ResponseWriter, r *http.Request) {
	s.jobStatus(w, r, models.KindVideo)
}

func (s *Server) handleGifStatus(w http.ResponseWriter, r *http.Request) {
	s.jobStatus(w, r, models.KindGif)
}

func (s *Server) jobStatus(w http.ResponseWriter, r *http.Request, kind models.JobKind) {
	taskID := r.PathValue("taskId")
	info, err := s.submitter.JobStatus(r.Context(), kind, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			s.respondError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Printf("Status: lookup for %s failed: %v", taskID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to get status")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: info})
}

// handleGetTranscript returns the stored segments for a processed video.
func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(r.PathValue("videoId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid video ID")
		return
	}

	job, err := s.jobRepo.GetByVideoID(models.KindVideo, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			s.respondError(w, http.StatusNotFound, "video not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, "failed to get transcript")
		return
	}

	segments := job.Segments
	if segments == nil {
		segments = []models.Segment{}
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"status":   job.Status,
		"segments": segments,
	}})
}

// handleServeVideo streams an uploaded source video back by id.
func (s *Server) handleServeVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(r.PathValue("videoId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid video ID")
		return
	}
	http.ServeFile(w, r, s.lib.VideoPath(videoID.String()))
}
