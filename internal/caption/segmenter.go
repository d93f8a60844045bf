package caption

import (
	"fmt"
	"strings"

	"github.com/gifsmith/gifsmith/internal/models"
)

// Chunk is a group of consecutive words rendered together as one overlay.
// Start and End are seconds relative to the owning segment's start.
type Chunk struct {
	Text  string  `json:"text"`
	Start float64 `json:"relative_start"`
	End   float64 `json:"relative_end"`
}

// BuildChunks groups a segment's words into caption chunks of at most
// maxWords. Each chunk begins where the previous one ended (0 for the
// first), so captions never leave a gap. The final chunk is stretched to
// bufferTime seconds past the segment end so it does not vanish right at
// a cut.
//
// Grouping by word count rather than duration keeps on-screen caption
// density consistent regardless of speaking rate.
func BuildChunks(words []models.Word, segStart, segEnd float64, maxWords int, bufferTime float64) ([]Chunk, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: max_words must be positive, got %d", ErrInvalidTemplate, maxWords)
	}
	if len(words) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	var group []string
	chunkStart := 0.0

	for i, w := range words {
		group = append(group, w.Text)
		last := i == len(words)-1
		if len(group) < maxWords && !last {
			continue
		}

		relEnd := w.End - segStart
		end := relEnd
		if last {
			end = (segEnd + bufferTime) - segStart
		}
		chunks = append(chunks, Chunk{
			Text:  strings.Join(group, " "),
			Start: chunkStart,
			End:   end,
		})
		group = group[:0]
		chunkStart = relEnd
	}
	return chunks, nil
}
