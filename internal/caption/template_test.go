package caption

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBA
		wantErr bool
	}{
		{"#FFFFFF", RGBA{255, 255, 255, 255}, false},
		{"#00000080", RGBA{0, 0, 0, 128}, false},
		{"#700000", RGBA{112, 0, 0, 255}, false},
		{"ff8800", RGBA{255, 136, 0, 255}, false},
		{"#FFFF", RGBA{}, true},
		{"#F", RGBA{}, true},
		{"", RGBA{}, true},
		{"#GGGGGG", RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColorFormat) {
				t.Errorf("ParseHexColor(%q) err = %v, want ErrInvalidColorFormat", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultTemplateIsValid(t *testing.T) {
	if err := DefaultTemplate().Validate(); err != nil {
		t.Fatalf("default template invalid: %v", err)
	}
}

// TestTemplateDecodeKeepsDefaults checks the submission-path pattern:
// request JSON decoded over the default template only overrides what it
// names.
func TestTemplateDecodeKeepsDefaults(t *testing.T) {
	tpl := DefaultTemplate()
	body := []byte(`{"font_color": "#FFFF00", "bold": true, "padding": 34, "margin": 8}`)
	if err := json.Unmarshal(body, &tpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tpl.FontColor != "#FFFF00" || !tpl.Bold || tpl.Padding != 34 || tpl.Margin != 8 {
		t.Fatalf("overrides not applied: %+v", tpl)
	}
	if tpl.MaxWords != 3 || tpl.FPS != 10 || tpl.Position != PositionBottom || tpl.FontSize != 144 {
		t.Fatalf("defaults lost: %+v", tpl)
	}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTemplateValidate(t *testing.T) {
	base := DefaultTemplate()

	tests := []struct {
		name   string
		mutate func(*Template)
	}{
		{"zero max_words", func(t *Template) { t.MaxWords = 0 }},
		{"negative fps", func(t *Template) { t.FPS = -1 }},
		{"negative padding", func(t *Template) { t.Padding = -5 }},
		{"opacity above one", func(t *Template) { t.BackgroundOpacity = 1.5 }},
		{"unknown position", func(t *Template) { t.Position = "sideways" }},
		{"bad background color", func(t *Template) { t.BackgroundColor = "#12345" }},
		{"zero font size", func(t *Template) { t.FontSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := base
			tt.mutate(&tpl)
			if err := tpl.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error for %+v", tpl)
			}
		})
	}
}
