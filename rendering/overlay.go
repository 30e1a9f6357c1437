package rendering

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

// Overlay panel layout in pixels from the top-left corner.
const (
	overlayMargin   = 10
	overlayPadding  = 10
	overlayBarWidth = 260
	overlayBarH     = 15
	overlayRowH     = 25
	overlayMaxFPS   = 150
)

var (
	overlayBackground = mgl32.Vec4{0.1, 0.1, 0.3, 0.8}
	overlayTrack      = mgl32.Vec4{0.2, 0.2, 0.2, 0.8}
)

// OverlayBar is one row of the debug overlay: a label for logs and a bar
// filled to Fraction.
type OverlayBar struct {
	Label    string
	Fraction float32
	Color    mgl32.Vec4
}

// OverlayBars turns telemetry into the debug overlay rows: frame rate, time
// of day, coins and sun intensity.
func OverlayBars(t *core.Telemetry) []OverlayBar {
	if t == nil {
		return nil
	}
	dayColor := mgl32.Vec4{1, 0.8, 0.2, 1}
	if t.IsNight {
		dayColor = mgl32.Vec4{0.3, 0.4, 1, 1}
	}
	coinColor := mgl32.Vec4{0.9, 0.72, 0.15, 1}
	if t.Finished {
		coinColor = mgl32.Vec4{1, 1, 1, 1}
	}
	var coins float32
	if t.CoinsTotal > 0 {
		coins = float32(t.CoinsCollected) / float32(t.CoinsTotal)
	}
	return []OverlayBar{
		{Label: fmt.Sprintf("FPS: %.1f", t.FPS), Fraction: t.FPS / overlayMaxFPS, Color: mgl32.Vec4{0, 1, 0, 1}},
		{Label: fmt.Sprintf("Time: %05.2fh", t.TimeOfDay), Fraction: t.TimeOfDay / 24, Color: dayColor},
		{Label: fmt.Sprintf("Coins: %d/%d", t.CoinsCollected, t.CoinsTotal), Fraction: coins, Color: coinColor},
		{Label: fmt.Sprintf("Sun: %.2f", t.SunIntensity), Fraction: t.SunIntensity, Color: mgl32.Vec4{1, 1, 0.8, 1}},
	}
}

// OverlayVertices lays bars out as triangles of interleaved position (2)
// and colour (4) floats: the panel, then a track and a fill per bar.
// Fractions are clamped to [0, 1].
func OverlayVertices(bars []OverlayBar) []float32 {
	if len(bars) == 0 {
		return nil
	}
	var out []float32
	rect := func(x, y, w, h float32, c mgl32.Vec4) {
		for _, p := range [6][2]float32{{x, y}, {x + w, y}, {x, y + h}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
			out = append(out, p[0], p[1], c[0], c[1], c[2], c[3])
		}
	}

	panelW := float32(overlayBarWidth + 2*overlayPadding)
	panelH := float32(2*overlayPadding + overlayRowH*len(bars))
	rect(overlayMargin, overlayMargin, panelW, panelH, overlayBackground)

	x := float32(overlayMargin + overlayPadding)
	for i, b := range bars {
		y := float32(overlayMargin+overlayPadding) + float32(i*overlayRowH)
		rect(x, y, overlayBarWidth, overlayBarH, overlayTrack)
		rect(x, y, overlayBarWidth*core.Clamp(b.Fraction, 0, 1), overlayBarH, b.Color)
	}
	return out
}
