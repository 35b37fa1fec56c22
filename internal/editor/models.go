package editor

// FilterID names one of the fixed non-generative pixel transforms.
type FilterID string

const (
	FilterIdentity   FilterID = "identity"
	FilterWarm       FilterID = "warm"
	FilterCool       FilterID = "cool"
	FilterMonochrome FilterID = "monochrome"
	FilterVintage    FilterID = "vintage"
)

// Point is a coordinate in the draft's backing-buffer space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one freehand path. Recording order is compositing order.
type Stroke struct {
	Points []Point `json:"points"`
}

type FlattenRequest struct {
	Image   string   `json:"image"`
	Filter  FilterID `json:"filter"`
	Strokes []Stroke `json:"strokes"`
}
