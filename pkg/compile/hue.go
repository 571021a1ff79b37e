package compile

import (
	"fmt"
	"math"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultHueSamples is the number of steps around the hue ring (every 60°).
const DefaultHueSamples = 6

// Anchor range used by HueTree when boundary anchors are requested.
const (
	AnchorLow  = 0.1
	AnchorHigh = 0.9
)

// HueOptions configures HueTree.
type HueOptions struct {
	// Brightness multiplies every sample. Values above 1 force Extended.
	Brightness float64
	// Anchors adds pure white at 0 and pure black at 1 and squeezes the ring into [0.1, 0.9].
	Anchors bool
	// Extended writes values outside the normalized display range (HDR colors).
	Extended bool
	// Samples is the number of ring steps; the ring is closed, so Samples+1 clips are placed.
	Samples int
}

// MapRange linearly maps input from [inStart, inEnd] onto [outStart, outEnd].
func MapRange(input, inStart, inEnd, outStart, outEnd float64) float64 {
	return outStart + ((outEnd-outStart)/(inEnd-inStart))*(input-inStart)
}

// HueColor returns the fully saturated, full value color at hue h in [0, 1].
// h = 1 wraps back to red.
func HueColor(h float64) domain.Color {
	c := colorful.Hsv(math.Mod(h*360, 360), 1, 1)
	return domain.Color{c.R, c.G, c.B, 1}
}

// HueTree samples the hue ring along param.
func (s *Session) HueTree(param domain.FloatParam, targets []string, property string, opts HueOptions) *domain.BlendNode {
	s.Float(param.Name())
	if opts.Brightness == 0 {
		opts.Brightness = 1
	}
	if opts.Samples <= 0 {
		opts.Samples = DefaultHueSamples
	}
	if opts.Brightness > 1 {
		opts.Extended = true
	}

	label := domain.Label(param.Name())
	tree := domain.Simple1D(label, param)

	if opts.Anchors {
		white := domain.White
		if opts.Extended {
			white = white.Scale(opts.Brightness)
		}
		tree.WithClip(s.Clip(label+" Hue White", AnimatesColor(targets, property, white, opts.Extended)...), 0)
	}

	for i := 0; i <= opts.Samples; i++ {
		h := float64(i) / float64(opts.Samples)
		threshold := h
		if opts.Anchors {
			threshold = MapRange(float64(i), 0, float64(opts.Samples), AnchorLow, AnchorHigh)
		}
		color := HueColor(h).Scale(opts.Brightness)
		clip := s.Clip(fmt.Sprintf("%s Hue H%gS1V1", label, math.Round(360*h)),
			AnimatesColor(targets, property, color, opts.Extended)...)
		tree.WithClip(clip, threshold)
	}

	if opts.Anchors {
		tree.WithClip(s.Clip(label+" Hue Black", AnimatesColor(targets, property, domain.Black, opts.Extended)...), 1)
	}
	return tree
}
