package transcribe

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"
)

const extractTimeout = 5 * time.Minute

// ExtractAudio pulls the audio track out of a video into a mono 16 kHz
// WAV, the input shape Whisper backends expect.
func ExtractAudio(ctx context.Context, ffmpegPath, videoPath, audioPath string) error {
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		audioPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("Transcribe: audio extraction timed out after %v: %s", extractTimeout, videoPath)
			return fmt.Errorf("extract audio: timed out")
		}
		log.Printf("Transcribe: audio extraction failed: %s", string(output))
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}
