package controller

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/EmaroLab/hunger/models"
	"github.com/EmaroLab/hunger/utils"
)

// BatchAligner folds converted trials into the three per-axis matrices.
// Column j of every matrix is trial j in enumeration order, so a trial's
// column index always matches the order in which its diagnostics were
// emitted. The aligner owns the matrices until Matrices() hands them to
// the caller.
//
// The first trial fixes the batch sample count; every later trial must
// match it exactly or Add fails with a models.AlignmentError.
type BatchAligner struct {
	trials []*models.Trial

	firstFile string
	samples   int
}

func NewBatchAligner() *BatchAligner {
	return &BatchAligner{}
}

// Add appends one trial to the batch, enforcing the equal-length invariant.
// A first trial with zero samples is rejected outright: it cannot seed a
// row count the matrices could be built from. Later zero-sample trials
// fail the ordinary count comparison instead.
func (a *BatchAligner) Add(t *models.Trial) error {
	if len(a.trials) == 0 {
		if t.Samples() == 0 {
			return fmt.Errorf("%w: %s", models.ErrEmptyTrial, t.File)
		}
		a.firstFile = t.File
		a.samples = t.Samples()
		a.trials = append(a.trials, t)
		return nil
	}

	if t.Samples() != a.samples {
		return &models.AlignmentError{
			File:      t.File,
			FirstFile: a.firstFile,
			Expected:  a.samples,
			Actual:    t.Samples(),
		}
	}
	a.trials = append(a.trials, t)
	return nil
}

// Matrices assembles and returns the sample×trial matrices for all three
// axes. Call after every trial has been added.
func (a *BatchAligner) Matrices() *models.AxisMatrices {
	k := len(a.trials)

	out := &models.AxisMatrices{
		X:       mat.NewDense(a.samples, k, nil),
		Y:       mat.NewDense(a.samples, k, nil),
		Z:       mat.NewDense(a.samples, k, nil),
		Samples: a.samples,
		Trials:  k,
	}
	for j, t := range a.trials {
		out.X.SetCol(j, t.X)
		out.Y.SetCol(j, t.Y)
		out.Z.SetCol(j, t.Z)
	}

	utils.L().Debug("aligner assembled %dx%d axis matrices", a.samples, k)
	return out
}
