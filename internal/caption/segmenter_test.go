package caption

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gifsmith/gifsmith/internal/models"
)

func wordsEvery(n int, step float64) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			Text:  string(rune('a' + i%26)),
			Start: float64(i) * step,
			End:   float64(i+1) * step,
		}
	}
	return words
}

func TestBuildChunksCount(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		maxWords int
		want     int
	}{
		{"exact multiple", 9, 3, 3},
		{"remainder", 10, 3, 4},
		{"single group", 2, 5, 1},
		{"one word per chunk", 4, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := wordsEvery(tt.n, 0.5)
			chunks, err := BuildChunks(words, 0, float64(tt.n)*0.5, tt.maxWords, 1.0)
			if err != nil {
				t.Fatalf("BuildChunks: %v", err)
			}
			if len(chunks) != tt.want {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.want)
			}

			// Concatenated chunk texts must reproduce the word stream.
			var joined []string
			for _, c := range chunks {
				joined = append(joined, c.Text)
			}
			got := strings.Fields(strings.Join(joined, " "))
			if len(got) != tt.n {
				t.Fatalf("rejoined %d words, want %d", len(got), tt.n)
			}
			for i, w := range words {
				if got[i] != w.Text {
					t.Fatalf("word %d = %q, want %q", i, got[i], w.Text)
				}
			}
		})
	}
}

func TestBuildChunksTiming(t *testing.T) {
	words := wordsEvery(7, 0.4)
	segEnd := 7 * 0.4
	chunks, err := BuildChunks(words, 0, segEnd, 3, 1.0)
	if err != nil {
		t.Fatalf("BuildChunks: %v", err)
	}

	if chunks[0].Start != 0 {
		t.Errorf("first chunk start = %v, want 0", chunks[0].Start)
	}
	// Every chunk starts where the previous one ended; only the final
	// chunk's end is stretched past its own words.
	for i := 1; i < len(chunks); i++ {
		if math.Abs(chunks[i].Start-chunks[i-1].End) > 1e-9 {
			t.Errorf("chunk %d start = %v, previous end = %v", i, chunks[i].Start, chunks[i-1].End)
		}
	}

	last := chunks[len(chunks)-1]
	if math.Abs(last.End-(segEnd+1.0)) > 1e-9 {
		t.Errorf("last chunk end = %v, want %v", last.End, segEnd+1.0)
	}
}

// TestBuildChunksSingle replays the canonical three-word segment: one chunk
// covering the whole segment plus the trailing buffer.
func TestBuildChunksSingle(t *testing.T) {
	words := []models.Word{
		{Text: "I", Start: 0.0, End: 0.82},
		{Text: "love", Start: 0.82, End: 1.06},
		{Text: "you.", Start: 1.06, End: 1.38},
	}
	chunks, err := BuildChunks(words, 0.0, 1.38, 3, 1.0)
	if err != nil {
		t.Fatalf("BuildChunks: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	c := chunks[0]
	if c.Text != "I love you." {
		t.Errorf("text = %q, want %q", c.Text, "I love you.")
	}
	if c.Start != 0.0 {
		t.Errorf("start = %v, want 0", c.Start)
	}
	if math.Abs(c.End-2.38) > 1e-9 {
		t.Errorf("end = %v, want 2.38", c.End)
	}
}

func TestBuildChunksOffsetSegment(t *testing.T) {
	// Segment not starting at zero: chunk times stay zero-based.
	words := []models.Word{
		{Text: "hello", Start: 10.0, End: 10.5},
		{Text: "there", Start: 10.5, End: 11.0},
	}
	chunks, err := BuildChunks(words, 10.0, 11.0, 1, 1.0)
	if err != nil {
		t.Fatalf("BuildChunks: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Start != 0 || math.Abs(chunks[0].End-0.5) > 1e-9 {
		t.Errorf("chunk 0 = [%v, %v], want [0, 0.5]", chunks[0].Start, chunks[0].End)
	}
	if math.Abs(chunks[1].Start-0.5) > 1e-9 || math.Abs(chunks[1].End-2.0) > 1e-9 {
		t.Errorf("chunk 1 = [%v, %v], want [0.5, 2]", chunks[1].Start, chunks[1].End)
	}
}

func TestBuildChunksEmpty(t *testing.T) {
	chunks, err := BuildChunks(nil, 0, 5, 3, 1.0)
	if err != nil {
		t.Fatalf("BuildChunks: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("got %d chunks, want 0", len(chunks))
	}
}

func TestBuildChunksInvalidMaxWords(t *testing.T) {
	for _, mw := range []int{0, -1} {
		_, err := BuildChunks(wordsEvery(3, 0.5), 0, 1.5, mw, 1.0)
		if !errors.Is(err, ErrInvalidTemplate) {
			t.Errorf("max_words=%d: err = %v, want ErrInvalidTemplate", mw, err)
		}
	}
}
