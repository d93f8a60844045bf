package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Library lays out uploads and rendered outputs on local disk:
// uploads/{video_id}.mp4, gifs/{video_id}/segment_000.gif and
// gifs/{video_id}.zip.
type Library struct {
	uploadDir string
	gifDir    string
}

func NewLibrary(uploadDir, gifDir string) (*Library, error) {
	for _, dir := range []string{uploadDir, gifDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Library{uploadDir: uploadDir, gifDir: gifDir}, nil
}

func (l *Library) UploadDir() string  { return l.uploadDir }
func (l *Library) GifBaseDir() string { return l.gifDir }

// VideoPath is where an uploaded source video lives.
func (l *Library) VideoPath(videoID string) string {
	return filepath.Join(l.uploadDir, videoID+".mp4")
}

// SaveUpload streams an uploaded video to its canonical path.
func (l *Library) SaveUpload(videoID string, r io.Reader) (string, error) {
	path := l.VideoPath(videoID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// GifDir is the per-video folder holding one gif per segment.
func (l *Library) GifDir(videoID string) string {
	return filepath.Join(l.gifDir, videoID)
}

// GifPath names the N-th rendered clip, zero-padded to keep listings in
// segment order.
func (l *Library) GifPath(videoID string, index int) string {
	return filepath.Join(l.GifDir(videoID), fmt.Sprintf("segment_%03d.gif", index))
}

// ZipPath is the downloadable archive for a video's render job.
func (l *Library) ZipPath(videoID string) string {
	return filepath.Join(l.gifDir, videoID+".zip")
}

// ListGifs returns the rendered gif filenames for a video, sorted
// lexicographically. Zero-padded names make that segment order.
func (l *Library) ListGifs(videoID string) ([]string, error) {
	entries, err := os.ReadDir(l.GifDir(videoID))
	if err != nil {
		return nil, fmt.Errorf("list gifs: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".gif") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
