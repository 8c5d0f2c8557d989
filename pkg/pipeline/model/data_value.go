package model

// DataValue is the value exchanged between steps and the external store.
// It holds exactly one container kind, or none. The zero value is None.
type DataValue struct {
	kind    Kind
	payload any
}

// None returns the "no data" value.
func None() DataValue { return DataValue{} }

func newValue[T any](kind Kind, c *T) DataValue {
	if c == nil {
		return DataValue{}
	}

	return DataValue{kind: kind, payload: c}
}

func Analog(c *AnalogTimeSeries) DataValue { return newValue(KindAnalogTimeSeries, c) }

func Events(c *DigitalEventSeries) DataValue { return newValue(KindDigitalEventSeries, c) }

func Intervals(c *DigitalIntervalSeries) DataValue { return newValue(KindDigitalIntervalSeries, c) }

func Points(c *PointData) DataValue { return newValue(KindPointData, c) }

func Lines(c *LineData) DataValue { return newValue(KindLineData, c) }

func Masks(c *MaskData) DataValue { return newValue(KindMaskData, c) }

func Tensor(c *TensorData) DataValue { return newValue(KindTensorData, c) }

// Kind returns the kind of the held container.
func (v DataValue) Kind() Kind { return v.kind }

// IsNone reports whether v holds no data.
func (v DataValue) IsNone() bool { return v.kind == KindNone }

func as[T any](v DataValue, kind Kind) (*T, bool) {
	if v.kind != kind {
		return nil, false
	}
	c, ok := v.payload.(*T)

	return c, ok
}

func (v DataValue) AsAnalog() (*AnalogTimeSeries, bool) {
	return as[AnalogTimeSeries](v, KindAnalogTimeSeries)
}

func (v DataValue) AsEvents() (*DigitalEventSeries, bool) {
	return as[DigitalEventSeries](v, KindDigitalEventSeries)
}

func (v DataValue) AsIntervals() (*DigitalIntervalSeries, bool) {
	return as[DigitalIntervalSeries](v, KindDigitalIntervalSeries)
}

func (v DataValue) AsPoints() (*PointData, bool) {
	return as[PointData](v, KindPointData)
}

func (v DataValue) AsLines() (*LineData, bool) {
	return as[LineData](v, KindLineData)
}

func (v DataValue) AsMasks() (*MaskData, bool) {
	return as[MaskData](v, KindMaskData)
}

func (v DataValue) AsTensor() (*TensorData, bool) {
	return as[TensorData](v, KindTensorData)
}
