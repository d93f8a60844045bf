package caption

import (
	"fmt"
	"unicode/utf8"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Coord is one placement axis: either a pixel offset or the symbolic
// centered position, which the rendering surface resolves itself.
type Coord struct {
	Centered bool
	Px       int
}

// Box is the padded background rectangle behind a chunk's text.
type Box struct {
	X, Y   Coord
	Width  int
	Height int
}

// Placement is the computed position of one chunk overlay within a frame.
// Background is always computed; whether it is drawn depends on the
// template having a background color.
type Placement struct {
	X, Y       Coord
	Background Box
}

func centered() Coord { return Coord{Centered: true} }
func px(v int) Coord  { return Coord{Px: v} }

// Layout computes the anchor for a chunk's text box and its background.
// The anchored box is the text size plus padding on every side; margin
// insets the box from the frame edge on non-centered axes.
func Layout(text Size, position Position, frame Size, padding, margin int) (Placement, error) {
	boxW := text.Width + 2*padding
	boxH := text.Height + 2*padding

	x, y := centered(), centered()
	switch position {
	case PositionCenter:
	case PositionTop:
		y = px(margin)
	case PositionBottom:
		y = px(frame.Height - boxH - margin)
	case PositionLeft:
		x = px(margin)
	case PositionRight:
		x = px(frame.Width - boxW - margin)
	case PositionTopLeft:
		x, y = px(margin), px(margin)
	case PositionTopRight:
		x, y = px(frame.Width-boxW-margin), px(margin)
	case PositionBottomLeft:
		x, y = px(margin), px(frame.Height-boxH-margin)
	case PositionBottomRight:
		x, y = px(frame.Width-boxW-margin), px(frame.Height-boxH-margin)
	default:
		return Placement{}, fmt.Errorf("%w: unknown position %q", ErrInvalidTemplate, position)
	}

	return Placement{
		X: x,
		Y: y,
		Background: Box{
			X:      shiftBack(x, padding),
			Y:      shiftBack(y, padding),
			Width:  boxW,
			Height: boxH,
		},
	}, nil
}

// shiftBack moves a numeric axis up/left by the padding; a centered axis
// stays centered since the surface centers text and background identically.
func shiftBack(c Coord, padding int) Coord {
	if c.Centered {
		return c
	}
	return px(c.Px - padding)
}

// Glyph advance and line height as fractions of the font size. Rough
// averages for proportional sans faces; close enough for box placement.
const (
	glyphAdvanceRatio = 0.6
	lineHeightRatio   = 1.2
)

// EstimateTextSize approximates the rendered extent of a single caption
// line. The renderer never measures rasterized text, so placement works
// from this estimate.
func EstimateTextSize(text string, fontSize int) Size {
	n := utf8.RuneCountInString(text)
	return Size{
		Width:  int(float64(n) * glyphAdvanceRatio * float64(fontSize)),
		Height: int(lineHeightRatio * float64(fontSize)),
	}
}
