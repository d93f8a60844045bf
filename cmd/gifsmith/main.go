package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gifsmith/gifsmith/internal/api"
	"github.com/gifsmith/gifsmith/internal/cleanup"
	"github.com/gifsmith/gifsmith/internal/config"
	"github.com/gifsmith/gifsmith/internal/db"
	"github.com/gifsmith/gifsmith/internal/ffmpeg"
	"github.com/gifsmith/gifsmith/internal/jobs"
	"github.com/gifsmith/gifsmith/internal/queuetrack"
	"github.com/gifsmith/gifsmith/internal/render"
	"github.com/gifsmith/gifsmith/internal/repository"
	"github.com/gifsmith/gifsmith/internal/storage"
	"github.com/gifsmith/gifsmith/internal/transcribe"
)

func main() {
	log.Println("gifsmith starting...")

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	tracker := queuetrack.New(rdb)

	lib, err := storage.NewLibrary(cfg.UploadDir, cfg.GifDir)
	if err != nil {
		log.Fatalf("storage setup failed: %v", err)
	}

	jobRepo := repository.NewJobRepository(database.DB)
	prober := ffmpeg.NewFFprobe(cfg.FFprobePath)
	pipeline := render.NewPipeline(cfg.FFmpegPath, prober, lib, cfg.FontFile, cfg.BoldFontFile)
	provider := transcribe.NewWhisperProvider(cfg.WhisperAPIKey, cfg.WhisperBaseURL, cfg.WhisperModel)

	queue := jobs.NewQueue(cfg.RedisAddr, cfg.WorkerConcurrency)
	defer queue.Stop()

	submitter := jobs.NewSubmitter(queue, tracker, jobRepo)
	srv := api.NewServer(cfg, jobRepo, submitter, lib)

	jobs.RegisterHandlers(queue, jobRepo, tracker, provider, pipeline, lib, cfg.FFmpegPath, srv.Hub())
	if err := queue.Start(context.Background()); err != nil {
		log.Fatalf("queue worker failed: %v", err)
	}

	sweeper := cleanup.NewScheduler(
		[]string{cfg.UploadDir, cfg.GifDir},
		time.Duration(cfg.CleanupIntervalMinutes)*time.Minute,
		time.Duration(cfg.CleanupMaxAgeHours)*time.Hour,
	)
	sweeper.Start()
	defer sweeper.Stop()

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
