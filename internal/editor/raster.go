package editor

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// renderBase scales src to w×h and applies the filter's color matrix.
func renderBase(src image.Image, w, h int, f FilterID) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if f != FilterIdentity {
		applyMatrix(dst, filters[f])
	}
	return dst
}

func applyMatrix(img *image.NRGBA, m colorMatrix) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			i := x * 4
			r, g, b := m.apply(float64(row[i])/255, float64(row[i+1])/255, float64(row[i+2])/255)
			row[i] = uint8(math.Round(r * 255))
			row[i+1] = uint8(math.Round(g * 255))
			row[i+2] = uint8(math.Round(b * 255))
		}
	}
}

// drawStroke renders one stroke as connected segments with round caps and
// joints, by stamping discs of half the stroke width along each segment.
func drawStroke(img *image.NRGBA, s Stroke) {
	if len(s.Points) == 0 {
		return
	}
	radius := strokeWidth / 2
	prev := s.Points[0]
	stampDisc(img, prev, radius)
	for _, p := range s.Points[1:] {
		stampSegment(img, prev, p, radius)
		prev = p
	}
}

func stampSegment(img *image.NRGBA, a, b Point, radius float64) {
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	steps := int(math.Ceil(dist / 0.5))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stampDisc(img, Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, radius)
	}
}

func stampDisc(img *image.NRGBA, c Point, radius float64) {
	bounds := img.Bounds()
	x0 := int(math.Floor(c.X - radius))
	x1 := int(math.Ceil(c.X + radius))
	y0 := int(math.Floor(c.Y - radius))
	y1 := int(math.Ceil(c.Y + radius))
	for y := y0; y <= y1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - c.X
			dy := float64(y) + 0.5 - c.Y
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, strokeColor)
			}
		}
	}
}

// MapToBacking converts a pointer position in on-screen display space to the
// draft's backing-buffer space. The two axes scale independently; assuming a
// shared factor is the classic annotation-misalignment bug.
func MapToBacking(p Point, displayW, displayH, backingW, backingH float64) Point {
	if displayW <= 0 || displayH <= 0 {
		return p
	}
	return Point{
		X: p.X * (backingW / displayW),
		Y: p.Y * (backingH / displayH),
	}
}
