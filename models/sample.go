package models

// RawSample is one record of a trial file: the three device ADC codes for
// the x, y and z accelerometer axes, exactly as logged by the wearable.
// Nominal range is [0, 63]; values outside it mean the sensor saturated
// upstream and are carried through unclamped.
type RawSample struct {
	X int
	Y int
	Z int
}

// PhysicalSample is one RawSample after unit conversion, in m/s² per axis.
type PhysicalSample struct {
	X float64
	Y float64
	Z float64
}
