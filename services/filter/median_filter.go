package filter

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/EmaroLab/hunger/models"
)

// Median applies a 1-D sliding-window median filter of odd size window down
// each column of m (along the sample axis, per trial) and returns a new
// matrix of identical shape. The input is never modified.
//
// Boundary policy: the window is conceptually slid over a zero-padded
// column, so the first and last (window-1)/2 outputs take their medians
// over a window that includes zeros beyond the array bounds. This matches
// the medfilt1-style default and keeps the filter well defined at every
// sample index.
//
// window must be a positive odd integer no larger than the row count;
// window == 1 returns an exact copy of the input.
func Median(m *mat.Dense, window int) (*mat.Dense, error) {
	rows, cols := m.Dims()

	if err := checkWindow(window, rows); err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, cols, nil)
	if window == 1 {
		out.Copy(m)
		return out, nil
	}

	half := (window - 1) / 2
	buf := make([]float64, window)

	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			fill(buf, m, i-half, j, rows)
			med, err := stats.Median(buf)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, med)
		}
	}
	return out, nil
}

// MedianColumn filters a single column vector; used by the diagnostics
// layer to compare filter orders on one trial without assembling a batch.
func MedianColumn(col []float64, window int) ([]float64, error) {
	m := mat.NewDense(len(col), 1, nil)
	for i, v := range col {
		m.Set(i, 0, v)
	}
	out, err := Median(m, window)
	if err != nil {
		return nil, err
	}
	filtered := make([]float64, len(col))
	mat.Col(filtered, 0, out)
	return filtered, nil
}

// fill copies window-many column values starting at row index lo into buf,
// substituting zero for indices outside [0, rows).
func fill(buf []float64, m *mat.Dense, lo, col, rows int) {
	for k := range buf {
		i := lo + k
		if i < 0 || i >= rows {
			buf[k] = 0
			continue
		}
		buf[k] = m.At(i, col)
	}
}

// CheckWindow validates the data-independent part of the window contract:
// the size must be a positive odd integer. The caller can reject a bad
// window before any file has been read; the row-count bound is rechecked
// once the batch size is known.
func CheckWindow(window int) error {
	switch {
	case window <= 0:
		return &models.ConfigError{Window: window, Reason: "must be positive"}
	case window%2 == 0:
		return &models.ConfigError{Window: window, Reason: "must be odd"}
	}
	return nil
}

func checkWindow(window, rows int) error {
	if err := CheckWindow(window); err != nil {
		return err
	}
	if window > rows {
		return &models.ConfigError{
			Window:  window,
			Samples: rows,
			Reason:  "exceeds sample count",
		}
	}
	return nil
}
