package caption

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTemplate reports a malformed template option, e.g. a
	// non-positive max_words. Surfaced to the submitter before any work.
	ErrInvalidTemplate = errors.New("invalid caption template")

	// ErrInvalidColorFormat reports a hex color string of unsupported length.
	ErrInvalidColorFormat = errors.New("invalid hex color format")
)

type Position string

const (
	PositionCenter      Position = "center"
	PositionTop         Position = "top"
	PositionBottom      Position = "bottom"
	PositionLeft        Position = "left"
	PositionRight       Position = "right"
	PositionTopLeft     Position = "top_left"
	PositionTopRight    Position = "top_right"
	PositionBottomLeft  Position = "bottom_left"
	PositionBottomRight Position = "bottom_right"
)

func (p Position) Valid() bool {
	switch p {
	case PositionCenter, PositionTop, PositionBottom, PositionLeft, PositionRight,
		PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	}
	return false
}

// Template holds every styling and chunking option for a render job, with
// a documented default for each. Validated once at submission time.
type Template struct {
	FontColor         string   `json:"font_color"`
	FontSize          int      `json:"font_size"`
	Position          Position `json:"position"`
	MaxWords          int      `json:"max_words"`
	FPS               int      `json:"fps"`
	Bold              bool     `json:"bold"`
	BackgroundColor   string   `json:"background_color"`
	BackgroundOpacity float64  `json:"background_opacity"`
	Padding           int      `json:"padding"`
	Margin            int      `json:"margin"`
}

// DefaultTemplate returns the baseline template. Unmarshal request JSON
// into this value so omitted options keep their defaults.
func DefaultTemplate() Template {
	return Template{
		FontColor:         "white",
		FontSize:          144,
		Position:          PositionBottom,
		MaxWords:          3,
		FPS:               10,
		Bold:              false,
		BackgroundColor:   "#000000",
		BackgroundOpacity: 1.0,
		Padding:           10,
		Margin:            55,
	}
}

func (t Template) Validate() error {
	if t.MaxWords <= 0 {
		return fmt.Errorf("%w: max_words must be positive, got %d", ErrInvalidTemplate, t.MaxWords)
	}
	if t.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive, got %d", ErrInvalidTemplate, t.FontSize)
	}
	if t.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidTemplate, t.FPS)
	}
	if t.Padding < 0 || t.Margin < 0 {
		return fmt.Errorf("%w: padding and margin must not be negative", ErrInvalidTemplate)
	}
	if t.BackgroundOpacity < 0 || t.BackgroundOpacity > 1 {
		return fmt.Errorf("%w: background_opacity must be within [0,1], got %g", ErrInvalidTemplate, t.BackgroundOpacity)
	}
	if !t.Position.Valid() {
		return fmt.Errorf("%w: unknown position %q", ErrInvalidTemplate, t.Position)
	}
	if t.BackgroundColor != "" {
		if _, err := ParseHexColor(t.BackgroundColor); err != nil {
			return err
		}
	}
	return nil
}

// RGBA is a decoded color. Alpha 255 is fully opaque.
type RGBA struct {
	R, G, B, A uint8
}

// ParseHexColor decodes "#RRGGBB" (implied full opacity) or "#RRGGBBAA".
// The leading "#" is optional. Any other length fails.
func ParseHexColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	var parts [4]uint8
	parts[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
		}
		parts[i] = uint8(v)
	}
	return RGBA{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}, nil
}
