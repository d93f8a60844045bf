package api

import (
	"encoding/json"
	"net/http"

	"github.com/gifsmith/gifsmith/internal/config"
	"github.com/gifsmith/gifsmith/internal/jobs"
	"github.com/gifsmith/gifsmith/internal/repository"
	"github.com/gifsmith/gifsmith/internal/storage"
)

type Server struct {
	config    *config.Config
	jobRepo   *repository.JobRepository
	submitter *jobs.Submitter
	lib       *storage.Library
	wsHub     *WSHub
	router    *http.ServeMux
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewServer(cfg *config.Config, jobRepo *repository.JobRepository, submitter *jobs.Submitter, lib *storage.Library) *Server {
	s := &Server{
		config:    cfg,
		jobRepo:   jobRepo,
		submitter: submitter,
		lib:       lib,
		wsHub:     NewWSHub(),
		router:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// Hub exposes the websocket hub so workers can broadcast job updates.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Transcription jobs
	s.router.HandleFunc("POST /api/videos", s.handleUploadVideo)
	s.router.HandleFunc("GET /api/videos/status/{taskId}", s.handleVideoStatus)
	s.router.HandleFunc("GET /api/videos/{videoId}/transcript", s.handleGetTranscript)

	// Render jobs
	s.router.HandleFunc("POST /api/gifs", s.handleGenerateGifs)
	s.router.HandleFunc("GET /api/gifs/status/{taskId}", s.handleGifStatus)
	s.router.HandleFunc("GET /api/gifs/{videoId}/download", s.handleDownloadGifs)
	s.router.HandleFunc("GET /api/gifs/{videoId}/urls", s.handleGifURLs)

	// Static files
	s.router.HandleFunc("GET /static/videos/{videoId}", s.handleServeVideo)
	s.router.Handle("GET /static/gifs/", http.StripPrefix("/static/gifs/",
		http.FileServer(http.Dir(s.lib.GifBaseDir()))))

	// Live job updates
	s.router.HandleFunc("GET /api/ws", s.handleWebSocket)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, Response{Success: false, Error: message})
}
