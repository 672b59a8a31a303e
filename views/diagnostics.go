package views

import (
	"github.com/EmaroLab/hunger/models"
	"github.com/EmaroLab/hunger/utils"
)

// Sink is the diagnostics collaborator of the pipeline. It observes data at
// two points — once per decoded trial, once for the filtered batch — and
// never feeds anything back. A Sink implementation may plot, persist, or
// ignore what it receives; the pipeline does not depend on it.
type Sink interface {
	// TrialSeries receives one decoded trial with its per-axis
	// acceleration sequences. Calls arrive in trial enumeration order,
	// matching the trial's column index in the batch matrices.
	TrialSeries(title string, t *models.Trial)

	// BatchMatrices receives the filtered per-axis matrices for the batch.
	BatchMatrices(title string, m *models.AxisMatrices)
}

// Discard is the no-op Sink used when diagnostics are disabled.
type Discard struct{}

func (Discard) TrialSeries(string, *models.Trial)          {}
func (Discard) BatchMatrices(string, *models.AxisMatrices) {}

// Guard wraps a Sink so that a panicking implementation is logged and
// contained instead of aborting the pipeline. Diagnostics are best-effort
// observers; their failures are never fatal.
func Guard(s Sink) Sink {
	if s == nil {
		return Discard{}
	}
	return &guarded{inner: s}
}

type guarded struct {
	inner Sink
}

func (g *guarded) TrialSeries(title string, t *models.Trial) {
	defer recoverSink(title)
	g.inner.TrialSeries(title, t)
}

func (g *guarded) BatchMatrices(title string, m *models.AxisMatrices) {
	defer recoverSink(title)
	g.inner.BatchMatrices(title, m)
}

func recoverSink(title string) {
	if r := recover(); r != nil {
		utils.L().Warn("diagnostics sink failed for %q: %v (continuing)", title, r)
	}
}
