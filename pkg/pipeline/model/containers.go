package model

// AnalogTimeSeries is a sampled signal.
type AnalogTimeSeries struct {
	Values []float32
	Times  []int64
}

// DigitalEventSeries is a sorted list of event times.
type DigitalEventSeries struct {
	Times []int64
}

// Interval is a closed time range.
type Interval struct {
	Start int64
	End   int64
}

// DigitalIntervalSeries is a list of time intervals.
type DigitalIntervalSeries struct {
	Intervals []Interval
}

// Point is a 2D coordinate.
type Point struct {
	X float32
	Y float32
}

// PointData holds points keyed by time.
type PointData struct {
	Points map[int64][]Point
}

// LineData holds polylines keyed by time.
type LineData struct {
	Lines map[int64][][]Point
}

// MaskData holds pixel masks keyed by time.
type MaskData struct {
	Width  int
	Height int
	Masks  map[int64][][]Point
}

// TensorData is a dense row-major tensor.
type TensorData struct {
	Shape  []int
	Values []float32
}
