package views

import "fmt"

// MaxTilt is the rotation in degrees at a card's edge.
const MaxTilt = 10

// Rotation is a card's 3D tilt in degrees.
type Rotation struct {
	X float64
	Y float64
}

// NeutralTilt is the resting rotation after the pointer leaves a card.
var NeutralTilt = Rotation{}

// Tilt maps a pointer at (x, y) inside a w by h card to a rotation. The
// offset from the card's center scales linearly to MaxTilt at the edges.
func Tilt(x, y, w, h float64) Rotation {
	if w <= 0 || h <= 0 {
		return NeutralTilt
	}
	halfW, halfH := w/2, h/2
	return Rotation{
		X: positiveZero(((y - halfH) / halfH) * -MaxTilt),
		Y: positiveZero(((x - halfW) / halfW) * MaxTilt),
	}
}

// positiveZero turns -0 into 0.
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// TiltTransform is the CSS transform for r.
func TiltTransform(r Rotation) string {
	return fmt.Sprintf("perspective(1000px) rotateX(%gdeg) rotateY(%gdeg)", r.X, r.Y)
}
