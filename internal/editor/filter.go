package editor

import "math"

// colorMatrix is an affine transform over RGB in [0,1]: out = m*rgb + off.
// Every supported filter reduces to one of these, so a whole filter chain
// costs a single multiply-add per pixel.
type colorMatrix struct {
	m   [9]float64
	off [3]float64
}

func identityMatrix() colorMatrix {
	return colorMatrix{m: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// then returns the matrix applying a first, b second.
func (a colorMatrix) then(b colorMatrix) colorMatrix {
	var out colorMatrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += b.m[row*3+k] * a.m[k*3+col]
			}
			out.m[row*3+col] = sum
		}
		out.off[row] = b.m[row*3]*a.off[0] + b.m[row*3+1]*a.off[1] + b.m[row*3+2]*a.off[2] + b.off[row]
	}
	return out
}

func (a colorMatrix) apply(r, g, b float64) (float64, float64, float64) {
	return clamp01(a.m[0]*r + a.m[1]*g + a.m[2]*b + a.off[0]),
		clamp01(a.m[3]*r + a.m[4]*g + a.m[5]*b + a.off[1]),
		clamp01(a.m[6]*r + a.m[7]*g + a.m[8]*b + a.off[2])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// The primitives below follow the CSS filter-effects matrices, so results
// match what a browser canvas renders for the same filter chain.

func sepia(amount float64) colorMatrix {
	full := [9]float64{
		0.393, 0.769, 0.189,
		0.349, 0.686, 0.168,
		0.272, 0.534, 0.131,
	}
	out := identityMatrix()
	for i := range out.m {
		out.m[i] = out.m[i]*(1-amount) + full[i]*amount
	}
	return out
}

func saturate(s float64) colorMatrix {
	return colorMatrix{m: [9]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
	}}
}

func grayscale(amount float64) colorMatrix {
	return saturate(1 - amount)
}

func hueRotate(degrees float64) colorMatrix {
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return colorMatrix{m: [9]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	}}
}

func brightness(b float64) colorMatrix {
	out := identityMatrix()
	for i := range out.m {
		out.m[i] *= b
	}
	return out
}

func contrast(c float64) colorMatrix {
	out := identityMatrix()
	for i := range out.m {
		out.m[i] *= c
	}
	shift := 0.5 - 0.5*c
	out.off = [3]float64{shift, shift, shift}
	return out
}

func chain(ms ...colorMatrix) colorMatrix {
	out := identityMatrix()
	for _, m := range ms {
		out = out.then(m)
	}
	return out
}

var filters = map[FilterID]colorMatrix{
	FilterIdentity:   identityMatrix(),
	FilterWarm:       chain(sepia(0.4), contrast(1.1), brightness(1.1)),
	FilterCool:       chain(hueRotate(180), sepia(0.2)),
	FilterMonochrome: chain(grayscale(1), contrast(1.2)),
	FilterVintage:    chain(sepia(0.6), contrast(1.1), saturate(0.8)),
}

// Filters lists the selectable filter ids in a fixed presentation order.
func Filters() []FilterID {
	return []FilterID{FilterIdentity, FilterWarm, FilterCool, FilterMonochrome, FilterVintage}
}
