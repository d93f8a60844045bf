package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/gifsmith/gifsmith/internal/caption"
	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/repository"
)

// ──────────────────── Render jobs ────────────────────

// handleGenerateGifs queues a render job. Segments default to the video's
// stored transcript; the template is validated before anything is queued.
func (s *Server) handleGenerateGifs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID  string           `json:"video_id"`
		Segments []models.Segment `json:"segments_list"`
		Template json.RawMessage  `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid video ID")
		return
	}

	tpl := caption.DefaultTemplate()
	if len(req.Template) > 0 {
		if err := json.Unmarshal(req.Template, &tpl); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid template")
			return
		}
	}
	if err := tpl.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	segments := req.Segments
	if len(segments) == 0 {
		job, err := s.jobRepo.GetByVideoID(models.KindVideo, videoID)
		if err != nil || len(job.Segments) == 0 {
			s.respondError(w, http.StatusBadRequest, "segments list not provided and not found for this video")
			return
		}
		segments = job.Segments
	}

	taskID, err := s.submitter.SubmitRender(r.Context(), videoID, segments, tpl)
	if err != nil {
		log.Printf("Gifs: submitting render for %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to queue render job")
		return
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{
		"status":  string(models.StatusQueued),
		"task_id": taskID,
	}})
}

// handleDownloadGifs serves the finished archive. Until the job is
// complete it reports the current status instead.
func (s *Server) handleDownloadGifs(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(r.PathValue("videoId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid video ID")
		return
	}

	job, err := s.jobRepo.GetByVideoID(models.KindGif, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			s.respondError(w, http.StatusNotFound, "no render job for this video")
			return
		}
		s.respondError(w, http.StatusInternalServerError, "failed to get render job")
		return
	}

	if job.Status != models.StatusComplete {
		s.respondJSON(w, http.StatusNotFound, Response{Success: false, Data: map[string]interface{}{
			"status":  job.Status,
			"task_id": job.TaskID,
		}})
		return
	}

	zipPath := s.lib.ZipPath(videoID.String())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", videoID.String()+".zip"))
	http.ServeFile(w, r, zipPath)
}

// handleGifURLs lists the rendered clips for a video as URLs, sorted
// lexicographically; zero-padded names keep that segment order.
func (s *Server) handleGifURLs(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(r.PathValue("videoId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid video ID")
		return
	}

	names, err := s.lib.ListGifs(videoID.String())
	if err != nil {
		s.respondError(w, http.StatusNotFound, "gifs not found for this video ID")
		return
	}

	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, fmt.Sprintf("/static/gifs/%s/%s", videoID, name))
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"gif_urls": urls,
	}})
}
