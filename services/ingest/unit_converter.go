package ingest

import (
	"github.com/EmaroLab/hunger/models"
)

// Device calibration of the wearable accelerometer: a 6-bit ADC whose code
// range [0, 63] spans ±14.709 m/s² (±1.5 g). These are fixed hardware
// parameters, not runtime configuration.
const (
	fullScale = 14.709 // m/s², magnitude at either end of the code range
	maxCode   = 63.0
)

// ConvertAxis maps one raw ADC code to acceleration in m/s²:
//
//	physical = -14.709 + (v/63) * (2 * 14.709)
//
// The map is applied to any integer uncorrected; codes outside [0, 63]
// simply land outside ±14.709 and flag upstream saturation.
func ConvertAxis(v int) float64 {
	return -fullScale + (float64(v)/maxCode)*(2*fullScale)
}

// ConvertSample applies ConvertAxis to each axis of a raw sample.
func ConvertSample(s models.RawSample) models.PhysicalSample {
	return models.PhysicalSample{
		X: ConvertAxis(s.X),
		Y: ConvertAxis(s.Y),
		Z: ConvertAxis(s.Z),
	}
}

// ConvertTrial converts a decoded record sequence into a Trial with the
// three per-axis acceleration series laid out for matrix assembly.
func ConvertTrial(file string, raw []models.RawSample) *models.Trial {
	t := &models.Trial{
		File: file,
		X:    make([]float64, len(raw)),
		Y:    make([]float64, len(raw)),
		Z:    make([]float64, len(raw)),
	}
	for i, s := range raw {
		t.X[i] = ConvertAxis(s.X)
		t.Y[i] = ConvertAxis(s.Y)
		t.Z[i] = ConvertAxis(s.Z)
	}
	return t
}
