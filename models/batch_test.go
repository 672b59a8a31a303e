package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisString(t *testing.T) {
	assert.Equal(t, "x", AxisX.String())
	assert.Equal(t, "y", AxisY.String())
	assert.Equal(t, "z", AxisZ.String())

	// Out-of-range values on either side fall back instead of panicking.
	assert.Equal(t, "unknown", Axis(3).String())
	assert.Equal(t, "unknown", Axis(-1).String())
}
