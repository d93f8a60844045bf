package transcribe

import (
	"context"

	"github.com/gifsmith/gifsmith/internal/models"
)

// Provider turns an audio file into timed transcript segments with
// word-level timestamps. Any backend producing that shape is
// substitutable.
type Provider interface {
	Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error)
}
