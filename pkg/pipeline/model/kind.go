package model

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies the container held by a DataValue.
type Kind int

const (
	// KindNone is the "no data" alternative.
	KindNone Kind = iota
	KindAnalogTimeSeries
	KindDigitalEventSeries
	KindDigitalIntervalSeries
	KindPointData
	KindLineData
	KindMaskData
	KindTensorData
)

// Kinds returns every kind that can hold data, in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindAnalogTimeSeries,
		KindDigitalEventSeries,
		KindDigitalIntervalSeries,
		KindPointData,
		KindLineData,
		KindMaskData,
		KindTensorData,
	}
}
