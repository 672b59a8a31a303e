package models

import "gonum.org/v1/gonum/mat"

// Axis identifies one accelerometer axis for labelling and schema lookups.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var axisNames = [...]string{"x", "y", "z"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return "unknown"
	}
	return axisNames[a]
}

// AxisMatrices is the assembled dataset for one batch of trials: one dense
// matrix per axis, laid out sample-index × trial-index. Column j of every
// matrix belongs to the j-th trial file in directory enumeration order.
type AxisMatrices struct {
	X *mat.Dense
	Y *mat.Dense
	Z *mat.Dense

	Samples int // shared row count of all three matrices
	Trials  int // shared column count
}

// Matrix returns the matrix for a single axis.
func (m *AxisMatrices) Matrix(a Axis) *mat.Dense {
	switch a {
	case AxisX:
		return m.X
	case AxisY:
		return m.Y
	default:
		return m.Z
	}
}
