package caption

import (
	"errors"
	"testing"
)

func TestLayoutAnchors(t *testing.T) {
	frame := Size{Width: 1920, Height: 1080}
	text := Size{Width: 400, Height: 100}
	padding, margin := 10, 55
	boxW := text.Width + 2*padding  // 420
	boxH := text.Height + 2*padding // 120

	tests := []struct {
		position Position
		x, y     Coord
	}{
		{PositionCenter, centered(), centered()},
		{PositionTop, centered(), px(margin)},
		{PositionBottom, centered(), px(frame.Height - boxH - margin)},
		{PositionLeft, px(margin), centered()},
		{PositionRight, px(frame.Width - boxW - margin), centered()},
		{PositionTopLeft, px(margin), px(margin)},
		{PositionTopRight, px(frame.Width - boxW - margin), px(margin)},
		{PositionBottomLeft, px(margin), px(frame.Height - boxH - margin)},
		{PositionBottomRight, px(frame.Width - boxW - margin), px(frame.Height - boxH - margin)},
	}
	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			p, err := Layout(text, tt.position, frame, padding, margin)
			if err != nil {
				t.Fatalf("Layout: %v", err)
			}
			if p.X != tt.x || p.Y != tt.y {
				t.Errorf("anchor = (%+v, %+v), want (%+v, %+v)", p.X, p.Y, tt.x, tt.y)
			}
			if p.Background.Width != boxW || p.Background.Height != boxH {
				t.Errorf("background = %dx%d, want %dx%d", p.Background.Width, p.Background.Height, boxW, boxH)
			}
		})
	}
}

// TestLayoutBottomRightExact pins the closed-form property: anchor plus box
// plus margin lands exactly on the frame edge.
func TestLayoutBottomRightExact(t *testing.T) {
	frame := Size{Width: 1280, Height: 720}
	text := Size{Width: 300, Height: 80}
	padding, margin := 34, 8

	p, err := Layout(text, PositionBottomRight, frame, padding, margin)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	boxW := text.Width + 2*padding
	boxH := text.Height + 2*padding
	if p.X.Px+boxW+margin != frame.Width {
		t.Errorf("x + box width + margin = %d, want %d", p.X.Px+boxW+margin, frame.Width)
	}
	if p.Y.Px+boxH+margin != frame.Height {
		t.Errorf("y + box height + margin = %d, want %d", p.Y.Px+boxH+margin, frame.Height)
	}
}

func TestLayoutCenterIgnoresGeometry(t *testing.T) {
	for _, frame := range []Size{{100, 100}, {1920, 1080}, {640, 480}} {
		p, err := Layout(Size{999, 999}, PositionCenter, frame, 50, 200)
		if err != nil {
			t.Fatalf("Layout: %v", err)
		}
		if !p.X.Centered || !p.Y.Centered {
			t.Fatalf("frame %+v: anchor = (%+v, %+v), want centered", frame, p.X, p.Y)
		}
	}
}

func TestLayoutBackgroundShift(t *testing.T) {
	frame := Size{Width: 1920, Height: 1080}
	text := Size{Width: 200, Height: 60}
	padding := 12

	p, err := Layout(text, PositionTopLeft, frame, padding, 40)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if p.Background.X.Px != p.X.Px-padding || p.Background.Y.Px != p.Y.Px-padding {
		t.Errorf("background origin = (%d, %d), want anchor shifted by -%d",
			p.Background.X.Px, p.Background.Y.Px, padding)
	}

	// Centered axes stay symbolic on the background too.
	p, err = Layout(text, PositionBottom, frame, padding, 40)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if !p.Background.X.Centered {
		t.Error("background x should remain centered for position=bottom")
	}
}

func TestLayoutUnknownPosition(t *testing.T) {
	_, err := Layout(Size{10, 10}, Position("middle"), Size{100, 100}, 0, 0)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("err = %v, want ErrInvalidTemplate", err)
	}
}

func TestEstimateTextSize(t *testing.T) {
	small := EstimateTextSize("hi", 100)
	large := EstimateTextSize("a much longer caption", 100)
	if large.Width <= small.Width {
		t.Errorf("longer text should be wider: %d <= %d", large.Width, small.Width)
	}
	if small.Height != large.Height {
		t.Errorf("single-line height should not vary: %d != %d", small.Height, large.Height)
	}
	if EstimateTextSize("hi", 200).Width <= small.Width {
		t.Error("larger font should widen the estimate")
	}
}
