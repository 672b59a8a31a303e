package controller

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmaroLab/hunger/models"
)

// recordingSink captures diagnostics pushes for order assertions.
type recordingSink struct {
	trialTitles []string
	batchTitles []string
}

func (r *recordingSink) TrialSeries(title string, t *models.Trial) {
	r.trialTitles = append(r.trialTitles, title)
}

func (r *recordingSink) BatchMatrices(title string, m *models.AxisMatrices) {
	r.batchTitles = append(r.batchTitles, title)
}

// panickySink misbehaves on every push; the pipeline must shrug it off.
type panickySink struct{}

func (panickySink) TrialSeries(string, *models.Trial)          { panic("plot backend gone") }
func (panickySink) BatchMatrices(string, *models.AxisMatrices) { panic("plot backend gone") }

func writeBatch(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestProcessEndToEnd(t *testing.T) {
	dir := writeBatch(t, map[string]string{
		"trial_a.txt": "0\t32\t63\n",
		"trial_b.txt": "63\t0\t32\n",
	})

	pc := NewPipelineController(nil, nil)
	result, err := pc.Process(dir, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Samples)
	assert.Equal(t, 2, result.Trials)

	assert.InDelta(t, -14.709, result.X.At(0, 0), 1e-9)
	assert.InDelta(t, 14.709, result.X.At(0, 1), 1e-9)
	assert.InDelta(t, 0, result.Y.At(0, 0), 0.25)
	assert.InDelta(t, -14.709, result.Y.At(0, 1), 1e-9)
	assert.InDelta(t, 14.709, result.Z.At(0, 0), 1e-9)
	assert.InDelta(t, 0, result.Z.At(0, 1), 0.25)
}

func TestProcessFiltersSpikes(t *testing.T) {
	// One trial whose x axis rests at code 31 except a single saturated
	// sample: window 3 must flatten it back to the resting level.
	dir := writeBatch(t, map[string]string{
		"trial.txt": "31 31 31\n31 31 31\n63 31 31\n31 31 31\n31 31 31\n",
	})

	pc := NewPipelineController(nil, nil)
	result, err := pc.Process(dir, 3)
	require.NoError(t, err)

	rest := result.X.At(0, 0)
	for i := 0; i < result.Samples; i++ {
		assert.InDelta(t, rest, result.X.At(i, 0), 1e-9, "sample %d", i)
	}
}

func TestProcessAlignmentFailure(t *testing.T) {
	long := strings.Repeat("1 2 3\n", 100)
	short := strings.Repeat("1 2 3\n", 99)
	dir := writeBatch(t, map[string]string{
		"a_long.txt":  long,
		"b_short.txt": short,
	})

	pc := NewPipelineController(nil, nil)
	result, err := pc.Process(dir, 3)
	assert.Nil(t, result, "no matrices on alignment failure")

	var aerr *models.AlignmentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 100, aerr.Expected)
	assert.Equal(t, 99, aerr.Actual)
	assert.Contains(t, aerr.File, "b_short.txt")
	assert.Contains(t, aerr.FirstFile, "a_long.txt")
}

func TestProcessFormatFailure(t *testing.T) {
	dir := writeBatch(t, map[string]string{
		"good.txt": "1 2 3\n",
		"bad.txt":  "1 2 3\n1 2\n",
	})

	result, err := NewPipelineController(nil, nil).Process(dir, 1)
	assert.Nil(t, result)

	var ferr *models.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.File, "bad.txt")
	assert.Equal(t, 2, ferr.Record)
}

func TestProcessWindowValidation(t *testing.T) {
	dir := writeBatch(t, map[string]string{"a.txt": "1 2 3\n4 5 6\n"})
	pc := NewPipelineController(nil, nil)

	for _, window := range []int{0, -1, 2} {
		result, err := pc.Process(dir, window)
		assert.Nil(t, result)
		var cerr *models.ConfigError
		require.ErrorAs(t, err, &cerr, "window %d", window)
	}

	// Window larger than the decoded sample count fails only after decode.
	result, err := pc.Process(dir, 5)
	assert.Nil(t, result)
	var cerr *models.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Samples)
}

func TestProcessEmptyTrialFile(t *testing.T) {
	// A readable file holding only a newline decodes to zero records;
	// the batch must fail with an inspectable error, not panic.
	dir := writeBatch(t, map[string]string{"empty.txt": "\n"})

	result, err := NewPipelineController(nil, nil).Process(dir, 3)
	assert.Nil(t, result)
	require.ErrorIs(t, err, models.ErrEmptyTrial)
	assert.Contains(t, err.Error(), "empty.txt")
}

func TestProcessEmptyAndMissingDir(t *testing.T) {
	pc := NewPipelineController(nil, nil)

	_, err := pc.Process(filepath.Join(t.TempDir(), "missing"), 3)
	require.ErrorIs(t, err, os.ErrNotExist)

	dir := writeBatch(t, map[string]string{"notes.md": "not a trial"})
	_, err = pc.Process(dir, 3)
	require.ErrorIs(t, err, models.ErrNoTrialFiles)
}

func TestProcessDiagnosticsOrderMatchesColumns(t *testing.T) {
	dir := writeBatch(t, map[string]string{
		"c.txt": "3 3 3\n",
		"a.txt": "1 1 1\n",
		"b.txt": "2 2 2\n",
	})

	sink := &recordingSink{}
	pc := NewPipelineController(nil, sink)
	result, err := pc.Process(dir, 1)
	require.NoError(t, err)

	// Lexicographic enumeration: a, b, c — and the columns agree.
	require.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, sink.trialTitles)
	assert.Less(t, result.X.At(0, 0), result.X.At(0, 1))
	assert.Less(t, result.X.At(0, 1), result.X.At(0, 2))
	require.Len(t, sink.batchTitles, 1)
}

func TestProcessSurvivesPanickingSink(t *testing.T) {
	dir := writeBatch(t, map[string]string{"a.txt": "1 2 3\n"})

	pc := NewPipelineController(nil, panickySink{})
	result, err := pc.Process(dir, 1)
	require.NoError(t, err, "sink failures must not abort the pipeline")
	assert.Equal(t, 1, result.Samples)
}
