package render

import (
	"fmt"
	"strings"

	"github.com/gifsmith/gifsmith/internal/caption"
)

// ffCoord renders a layout coordinate as an ffmpeg expression. Centered
// axes resolve against the frame and the drawn element inside ffmpeg, so
// text and background center identically.
func ffCoord(c caption.Coord, centerExpr string) string {
	if c.Centered {
		return centerExpr
	}
	return fmt.Sprintf("%d", c.Px)
}

// ffColor converts a template color spec to ffmpeg color syntax. Hex specs
// become 0xRRGGBB with an alpha suffix; anything else (named colors) passes
// through for ffmpeg to resolve.
func ffColor(spec string) (string, error) {
	if !strings.HasPrefix(spec, "#") {
		return spec, nil
	}
	c, err := caption.ParseHexColor(spec)
	if err != nil {
		return "", err
	}
	if c.A == 255 {
		return fmt.Sprintf("0x%02X%02X%02X", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("0x%02X%02X%02X@%.3f", c.R, c.G, c.B, float64(c.A)/255), nil
}

// escapeDrawtext protects a chunk's text inside a single-quoted drawtext
// argument. Apostrophes use the close-escape-reopen idiom.
func escapeDrawtext(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `'\''`)
}

// BuildSegmentFilter assembles the filter_complex graph for one segment:
// per-chunk drawbox+drawtext overlays windowed by enable=between(t,..),
// then the fps pass and the gif palette round trip. The graph output is
// labelled [out].
func BuildSegmentFilter(chunks []caption.Chunk, tpl caption.Template, frame caption.Size, fontFile string) (string, error) {
	fontColor, err := ffColor(tpl.FontColor)
	if err != nil {
		return "", err
	}

	drawBackground := tpl.BackgroundColor != "" && tpl.BackgroundOpacity > 0
	var bgColor string
	if drawBackground {
		c, err := caption.ParseHexColor(tpl.BackgroundColor)
		if err != nil {
			return "", err
		}
		alpha := float64(c.A) / 255 * tpl.BackgroundOpacity
		bgColor = fmt.Sprintf("0x%02X%02X%02X@%.3f", c.R, c.G, c.B, alpha)
	}

	var filters []string
	for _, chunk := range chunks {
		textSize := caption.EstimateTextSize(chunk.Text, tpl.FontSize)
		placement, err := caption.Layout(textSize, tpl.Position, frame, tpl.Padding, tpl.Margin)
		if err != nil {
			return "", err
		}
		enable := fmt.Sprintf("enable='between(t,%.3f,%.3f)'", chunk.Start, chunk.End)

		if drawBackground {
			box := placement.Background
			filters = append(filters, fmt.Sprintf(
				"drawbox=x=%s:y=%s:w=%d:h=%d:color=%s:t=fill:%s",
				ffCoord(box.X, fmt.Sprintf("(iw-%d)/2", box.Width)),
				ffCoord(box.Y, fmt.Sprintf("(ih-%d)/2", box.Height)),
				box.Width, box.Height, bgColor, enable,
			))
		}

		filters = append(filters, fmt.Sprintf(
			"drawtext=fontfile='%s':text='%s':fontsize=%d:fontcolor=%s:x=%s:y=%s:%s",
			fontFile, escapeDrawtext(chunk.Text), tpl.FontSize, fontColor,
			ffCoord(placement.X, "(w-text_w)/2"),
			ffCoord(placement.Y, "(h-text_h)/2"),
			enable,
		))
	}

	filters = append(filters, fmt.Sprintf("fps=%d", tpl.FPS))
	chain := strings.Join(filters, ",")
	return fmt.Sprintf("[0:v]%s,split[a][b];[a]palettegen=stats_mode=diff[p];[b][p]paletteuse[out]", chain), nil
}
