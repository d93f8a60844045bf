package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/gifsmith/gifsmith/internal/caption"
	"github.com/gifsmith/gifsmith/internal/ffmpeg"
	"github.com/gifsmith/gifsmith/internal/models"
	"github.com/gifsmith/gifsmith/internal/storage"
)

const (
	ffmpegTimeout = 2 * time.Minute

	// BufferTime is appended to every rendered segment so the final
	// caption does not vanish right at the cut.
	BufferTime = 1.0
)

// Pipeline renders one captioned gif per transcript segment and packages
// them into a single archive per job. Segments render sequentially; they
// share the source decoder and gif encoding is single-threaded per output.
type Pipeline struct {
	ffmpegPath   string
	prober       *ffmpeg.FFprobe
	lib          *storage.Library
	fontFile     string
	boldFontFile string
}

func NewPipeline(ffmpegPath string, prober *ffmpeg.FFprobe, lib *storage.Library, fontFile, boldFontFile string) *Pipeline {
	return &Pipeline{
		ffmpegPath:   ffmpegPath,
		prober:       prober,
		lib:          lib,
		fontFile:     fontFile,
		boldFontFile: boldFontFile,
	}
}

// Render produces the zip archive for a render job and returns its path.
// The first failing segment aborts the whole job; no partial archive is
// written.
func (p *Pipeline) Render(ctx context.Context, videoID string, segments []models.Segment, tpl caption.Template) (string, error) {
	sourcePath := p.lib.VideoPath(videoID)
	probe, err := p.prober.Probe(sourcePath)
	if err != nil {
		return "", fmt.Errorf("probe source: %w", err)
	}
	frameW, frameH, ok := probe.VideoSize()
	if !ok {
		return "", fmt.Errorf("no video stream in %s", sourcePath)
	}
	frame := caption.Size{Width: frameW, Height: frameH}
	sourceDuration := probe.DurationSeconds()

	if err := os.MkdirAll(p.lib.GifDir(videoID), 0755); err != nil {
		return "", fmt.Errorf("create gif dir: %w", err)
	}

	var outputs []string
	for i, seg := range segments {
		outPath := p.lib.GifPath(videoID, i)
		if err := p.renderSegment(ctx, sourcePath, outPath, seg, tpl, frame, sourceDuration); err != nil {
			return "", fmt.Errorf("render segment %d: %w", i, err)
		}
		outputs = append(outputs, outPath)
	}
	log.Printf("Render: %d clips for video %s", len(outputs), videoID)

	zipPath := p.lib.ZipPath(videoID)
	if err := buildArchive(zipPath, outputs); err != nil {
		return "", fmt.Errorf("package archive: %w", err)
	}
	return zipPath, nil
}

func (p *Pipeline) renderSegment(ctx context.Context, sourcePath, outPath string, seg models.Segment, tpl caption.Template, frame caption.Size, sourceDuration float64) error {
	chunks, err := caption.BuildChunks(seg.Words, seg.Start, seg.End, tpl.MaxWords, BufferTime)
	if err != nil {
		return err
	}

	extendedEnd := seg.End + BufferTime
	if sourceDuration > 0 && extendedEnd > sourceDuration {
		extendedEnd = sourceDuration
	}
	duration := extendedEnd - seg.Start
	if duration <= 0 {
		return fmt.Errorf("segment [%.3f, %.3f] outside source duration %.3f", seg.Start, seg.End, sourceDuration)
	}

	fontFile := p.fontFile
	if tpl.Bold && p.boldFontFile != "" {
		fontFile = p.boldFontFile
	}
	filterGraph, err := BuildSegmentFilter(chunks, tpl, frame, fontFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, ffmpegTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.ffmpegPath,
		"-ss", fmt.Sprintf("%.3f", seg.Start),
		"-t", fmt.Sprintf("%.3f", duration),
		"-i", sourcePath,
		"-filter_complex", filterGraph,
		"-map", "[out]",
		"-loop", "0",
		"-y", outPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("Render: gif encode timed out after %v: %s", ffmpegTimeout, outPath)
			return fmt.Errorf("gif encode: timed out")
		}
		log.Printf("Render: gif encode failed: %s", string(output))
		return fmt.Errorf("gif encode: %w", err)
	}
	return nil
}
