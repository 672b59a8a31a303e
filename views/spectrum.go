package views

import (
	"fmt"
	"math/cmplx"
	"strconv"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/EmaroLab/hunger/services/filter"
	"github.com/EmaroLab/hunger/utils"
)

// SpectrumComparison computes the normalised magnitude spectrum of one
// signal after median filtering at each of the given odd window sizes.
// Window 1 stands for the unfiltered signal, so including it shows how much
// high-frequency spike energy each larger order removes.
//
// This is a diagnostic over a copy of the data: nothing here feeds back
// into the pipeline.
type SpectrumComparison struct {
	Windows []int       // filter orders compared, e.g. 1, 3, 5
	Bins    int         // number of one-sided frequency bins (n/2 + 1)
	Mag     [][]float64 // Mag[w][bin], normalised to peak 1 per window
}

// CompareFilterOrders filters signal at every window size in windows and
// returns the one-sided magnitude spectra. Invalid window sizes for this
// signal length are reported per the filter engine's contract.
func CompareFilterOrders(signal []float64, windows []int) (*SpectrumComparison, error) {
	n := len(signal)
	if n == 0 {
		return nil, fmt.Errorf("spectrum comparison: empty signal")
	}

	bins := n/2 + 1
	cmp := &SpectrumComparison{
		Windows: windows,
		Bins:    bins,
		Mag:     make([][]float64, len(windows)),
	}

	for wi, window := range windows {
		filtered, err := filter.MedianColumn(signal, window)
		if err != nil {
			return nil, err
		}

		spectrum := fft.FFTReal(filtered)
		mag := make([]float64, bins)
		for i := 0; i < bins; i++ {
			mag[i] = cmplx.Abs(spectrum[i])
		}
		if peak := floats.Max(mag); peak > 0 {
			floats.Scale(1/peak, mag)
		}
		cmp.Mag[wi] = mag
	}

	return cmp, nil
}

// ExportSpectrum writes a spectrum comparison as CSV, one row per frequency
// bin and one magnitude column per filter order.
func ExportSpectrum(path string, cmp *SpectrumComparison, bufSizeBytes int, writeHeader bool) error {
	header := make([]string, 1+len(cmp.Windows))
	header[0] = "bin"
	for i, w := range cmp.Windows {
		header[i+1] = "order_" + strconv.Itoa(w)
	}

	cw, err := NewCSVWriter(path, bufSizeBytes, writeHeader, header)
	if err != nil {
		return err
	}

	row := make([]string, 1+len(cmp.Windows))
	for bin := 0; bin < cmp.Bins; bin++ {
		row[0] = strconv.Itoa(bin)
		for i := range cmp.Windows {
			row[i+1] = ftoa(cmp.Mag[i][bin])
		}
		cw.WriteRow(row)
	}

	if err := cw.Close(); err != nil {
		return err
	}
	utils.L().Info("spectrum comparison written  file=%s orders=%v", path, cmp.Windows)
	return nil
}
