package editor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"
)

const (
	// MaxDisplayWidth is the widest backing buffer a draft is given; wider
	// sources are downscaled, narrower ones are left alone.
	MaxDisplayWidth = 800

	strokeWidth = 5.0
	jpegQuality = 80
)

// The annotation pen. Fixed on purpose: drawing is annotation, not editing.
var strokeColor = color.NRGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}

var (
	ErrDecode        = errors.New("editor: image not decodable")
	ErrInvalidFilter = errors.New("editor: unknown filter")
	ErrDiscarded     = errors.New("editor: draft discarded")
)

// Draft is one in-progress edit. The base image is decoded once and never
// mutated; flattening renders into a fresh buffer every time.
type Draft struct {
	base      image.Image
	width     int
	height    int
	filter    FilterID
	strokes   []Stroke
	open      bool
	discarded bool
}

// Load decodes an uploaded image and constrains it to MaxDisplayWidth,
// preserving aspect ratio. It never upscales.
func Load(data []byte) (*Draft, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > MaxDisplayWidth {
		scale := float64(MaxDisplayWidth) / float64(w)
		h = int(math.Round(float64(h) * scale))
		w = MaxDisplayWidth
	}

	return &Draft{base: img, width: w, height: h, filter: FilterIdentity}, nil
}

// Size reports the constrained backing-buffer dimensions.
func (d *Draft) Size() (int, int) {
	return d.width, d.height
}

// SetFilter replaces the active filter. Strokes are untouched.
func (d *Draft) SetFilter(id FilterID) error {
	if d.discarded {
		return ErrDiscarded
	}
	if _, ok := filters[id]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, id)
	}
	d.filter = id
	return nil
}

// BeginStroke opens a new stroke at p.
func (d *Draft) BeginStroke(p Point) {
	if d.discarded {
		return
	}
	d.strokes = append(d.strokes, Stroke{Points: []Point{p}})
	d.open = true
}

// AppendStrokePoint extends the open stroke. Points arriving while no stroke
// is open are dropped: on some devices move events precede the down event.
func (d *Draft) AppendStrokePoint(p Point) {
	if d.discarded || !d.open {
		return
	}
	last := len(d.strokes) - 1
	d.strokes[last].Points = append(d.strokes[last].Points, p)
}

// EndStroke closes the open stroke, if any.
func (d *Draft) EndStroke() {
	d.open = false
}

// Strokes returns a copy of the recorded strokes in drawing order.
func (d *Draft) Strokes() []Stroke {
	out := make([]Stroke, len(d.strokes))
	for i, s := range d.strokes {
		out[i] = Stroke{Points: append([]Point(nil), s.Points...)}
	}
	return out
}

// Flatten composes the draft into a single JPEG: the base image scaled to
// the constrained size with the filter applied, then every stroke drawn on
// top in recorded order, unfiltered. Repeated calls on an unmodified draft
// produce identical bytes.
func (d *Draft) Flatten() ([]byte, error) {
	if d.discarded {
		return nil, ErrDiscarded
	}

	img := renderBase(d.base, d.width, d.height, d.filter)
	for _, s := range d.strokes {
		drawStroke(img, s)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Discard releases the draft. Every later operation fails or is a no-op.
func (d *Draft) Discard() {
	d.discarded = true
	d.open = false
	d.base = nil
	d.strokes = nil
}
