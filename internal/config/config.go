package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string

	UploadDir string
	GifDir    string

	FFmpegPath   string
	FFprobePath  string
	FontFile     string
	BoldFontFile string

	WhisperBaseURL string
	WhisperAPIKey  string
	WhisperModel   string

	WorkerConcurrency int
	MaxUploadBytes    int64

	CleanupIntervalMinutes int
	CleanupMaxAgeHours     int
}

func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	return &Config{
		Port:        envInt("PORT", 8080),
		DatabaseURL: env("DATABASE_URL", "postgres://gifsmith:gifsmith@db:5432/gifsmith?sslmode=disable"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),

		UploadDir: env("UPLOAD_DIR", "static/uploads"),
		GifDir:    env("GIF_DIR", "static/gifs"),

		FFmpegPath:   env("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:  env("FFPROBE_PATH", "ffprobe"),
		FontFile:     env("FONT_FILE", "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"),
		BoldFontFile: env("BOLD_FONT_FILE", "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"),

		WhisperBaseURL: env("WHISPER_BASE_URL", ""),
		WhisperAPIKey:  env("WHISPER_API_KEY", ""),
		WhisperModel:   env("WHISPER_MODEL", "whisper-1"),

		WorkerConcurrency: envInt("WORKER_CONCURRENCY", 2),
		MaxUploadBytes:    int64(envInt("MAX_UPLOAD_MB", 512)) << 20,

		CleanupIntervalMinutes: envInt("CLEANUP_INTERVAL_MINUTES", 60),
		CleanupMaxAgeHours:     envInt("CLEANUP_MAX_AGE_HOURS", 72),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
