package domain

import (
	"strconv"
	"strings"
)

// PropertyWrite sets one property of one target to a constant value.
// Value holds one component for scalars and four (RGBA) for colors.
type PropertyWrite struct {
	Target   string    `json:"target"`
	Property string    `json:"property"`
	Value    []float64 `json:"value"`
	// Extended marks values that may leave the normalized display range (HDR colors).
	Extended bool `json:"extended,omitempty"`
}

// Clip is an opaque sample point: a set of property writes held for one instant.
// The same clip may appear at several tree positions.
type Clip struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Writes []PropertyWrite `json:"writes"`
}

// Key returns the canonical combination key of a set of writes.
// Two write sets with equal keys produce the same clip.
func Key(writes []PropertyWrite) string {
	var sb strings.Builder
	for i, w := range writes {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(w.Target)
		sb.WriteByte('|')
		sb.WriteString(w.Property)
		sb.WriteByte('|')
		if w.Extended {
			sb.WriteString("x|")
		}
		for j, v := range w.Value {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return sb.String()
}

// Color is an RGBA quadruple.
type Color [4]float64

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// Scale multiplies the RGB channels by m and keeps alpha.
func (c Color) Scale(m float64) Color {
	return Color{c[0] * m, c[1] * m, c[2] * m, c[3]}
}

// Values returns the color as a write value.
func (c Color) Values() []float64 {
	return []float64{c[0], c[1], c[2], c[3]}
}
