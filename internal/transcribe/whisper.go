package transcribe

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gifsmith/gifsmith/internal/models"
)

// WhisperProvider calls an OpenAI-compatible transcription endpoint with
// word timestamp granularity. A base URL override points it at local
// Whisper servers exposing the same API.
type WhisperProvider struct {
	client *openai.Client
	model  string
}

func NewWhisperProvider(apiKey, baseURL, model string) *WhisperProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperProvider{client: openai.NewClientWithConfig(cfg), model: model}
}

func (p *WhisperProvider) Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error) {
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	segments := make([]models.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, models.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}

	words := make([]models.Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, models.Word{
			Text:  strings.TrimSpace(w.Word),
			Start: w.Start,
			End:   w.End,
		})
	}

	segments = foldWords(segments, words)
	log.Printf("Transcribe: %d segments, %d words from %s", len(segments), len(words), audioPath)
	return segments, nil
}

// foldWords assigns each word of the flat verbose-JSON word list to the
// segment containing its midpoint. Words past the final segment end stick
// to the last segment; transcription timestamps may overshoot slightly and
// the renderer extends rather than rejects.
func foldWords(segments []models.Segment, words []models.Word) []models.Segment {
	if len(segments) == 0 || len(words) == 0 {
		return segments
	}
	si := 0
	for _, w := range words {
		mid := (w.Start + w.End) / 2
		for si < len(segments)-1 && mid >= segments[si].End {
			si++
		}
		segments[si].Words = append(segments[si].Words, w)
	}
	return segments
}
