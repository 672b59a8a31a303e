package models

// Trial holds one recorded sensor session after unit conversion: the three
// per-axis acceleration sequences decoded from a single trial file. A Trial
// is transient — it exists between decode and matrix assembly, after which
// it becomes one column of each axis matrix.
type Trial struct {
	File string // source file path (identity for error reporting)

	X []float64 // m/s²
	Y []float64
	Z []float64
}

// Samples returns the number of records decoded from the trial file.
// The three axis slices always have identical length.
func (t *Trial) Samples() int {
	return len(t.X)
}

func (Trial) CSVHeader() []string {
	return []string{"sample", "accel_x", "accel_y", "accel_z"}
}

// CSVRow renders the i-th sample of the trial as a CSV row.
func (t *Trial) CSVRow(i int) []string {
	return []string{
		itoa(i),
		ftoa(t.X[i], 6), ftoa(t.Y[i], 6), ftoa(t.Z[i], 6),
	}
}
