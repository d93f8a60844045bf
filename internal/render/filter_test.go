package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gifsmith/gifsmith/internal/caption"
)

func testChunks() []caption.Chunk {
	return []caption.Chunk{
		{Text: "I love you.", Start: 0.0, End: 2.38},
	}
}

func TestBuildSegmentFilter(t *testing.T) {
	tpl := caption.DefaultTemplate()
	frame := caption.Size{Width: 1920, Height: 1080}

	graph, err := BuildSegmentFilter(testChunks(), tpl, frame, "/fonts/arial.ttf")
	if err != nil {
		t.Fatalf("BuildSegmentFilter: %v", err)
	}

	if !strings.HasPrefix(graph, "[0:v]") {
		t.Errorf("graph should start at the input video stream: %q", graph)
	}
	if !strings.Contains(graph, "drawtext=fontfile='/fonts/arial.ttf':text='I love you.'") {
		t.Errorf("missing drawtext with font and text: %q", graph)
	}
	if !strings.Contains(graph, "enable='between(t,0.000,2.380)'") {
		t.Errorf("missing overlay time window: %q", graph)
	}
	if !strings.Contains(graph, "fps=10") {
		t.Errorf("missing fps pass: %q", graph)
	}
	if !strings.Contains(graph, "palettegen") || !strings.Contains(graph, "paletteuse") {
		t.Errorf("missing palette round trip: %q", graph)
	}
	// Opaque black default background.
	if !strings.Contains(graph, "drawbox=") || !strings.Contains(graph, "color=0x000000@1.000") {
		t.Errorf("missing default background box: %q", graph)
	}
	// Background must be drawn under the text.
	if strings.Index(graph, "drawbox=") > strings.Index(graph, "drawtext=") {
		t.Errorf("background drawn above text: %q", graph)
	}
	if !strings.HasSuffix(graph, "[out]") {
		t.Errorf("graph output must be labelled [out]: %q", graph)
	}
}

func TestBuildSegmentFilterNoBackground(t *testing.T) {
	tpl := caption.DefaultTemplate()
	tpl.BackgroundColor = ""
	graph, err := BuildSegmentFilter(testChunks(), tpl, caption.Size{Width: 1280, Height: 720}, "f.ttf")
	if err != nil {
		t.Fatalf("BuildSegmentFilter: %v", err)
	}
	if strings.Contains(graph, "drawbox") {
		t.Errorf("no background color should mean no drawbox: %q", graph)
	}

	tpl = caption.DefaultTemplate()
	tpl.BackgroundOpacity = 0
	graph, err = BuildSegmentFilter(testChunks(), tpl, caption.Size{Width: 1280, Height: 720}, "f.ttf")
	if err != nil {
		t.Fatalf("BuildSegmentFilter: %v", err)
	}
	if strings.Contains(graph, "drawbox") {
		t.Errorf("zero opacity should mean no drawbox: %q", graph)
	}
}

func TestBuildSegmentFilterCenteredPosition(t *testing.T) {
	tpl := caption.DefaultTemplate()
	tpl.Position = caption.PositionCenter
	graph, err := BuildSegmentFilter(testChunks(), tpl, caption.Size{Width: 1920, Height: 1080}, "f.ttf")
	if err != nil {
		t.Fatalf("BuildSegmentFilter: %v", err)
	}
	if !strings.Contains(graph, "x=(w-text_w)/2") || !strings.Contains(graph, "y=(h-text_h)/2") {
		t.Errorf("centered axes should use ffmpeg center expressions: %q", graph)
	}
}

func TestBuildSegmentFilterBadColor(t *testing.T) {
	tpl := caption.DefaultTemplate()
	tpl.BackgroundColor = "#12345"
	_, err := BuildSegmentFilter(testChunks(), tpl, caption.Size{Width: 1920, Height: 1080}, "f.ttf")
	if !errors.Is(err, caption.ErrInvalidColorFormat) {
		t.Fatalf("err = %v, want ErrInvalidColorFormat", err)
	}
}

func TestFFColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"white", "white"},
		{"#FFFF00", "0xFFFF00"},
		{"#00000080", "0x000000@0.502"},
	}
	for _, tt := range tests {
		got, err := ffColor(tt.in)
		if err != nil {
			t.Errorf("ffColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ffColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeDrawtext(t *testing.T) {
	got := escapeDrawtext(`don't \stop`)
	if !strings.Contains(got, `'\''`) {
		t.Errorf("apostrophe not escaped: %q", got)
	}
	if !strings.Contains(got, `\\stop`) {
		t.Errorf("backslash not escaped: %q", got)
	}
}
