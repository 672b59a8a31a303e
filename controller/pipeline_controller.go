package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/EmaroLab/hunger/models"
	"github.com/EmaroLab/hunger/services/filter"
	"github.com/EmaroLab/hunger/services/ingest"
	"github.com/EmaroLab/hunger/utils"
	"github.com/EmaroLab/hunger/views"
)

// PipelineController runs one batch through the full preprocessing chain:
//
//	directory ──► TrialDecoder (per file) ──► unit conversion (per file)
//	            ──► BatchAligner ──► median filter ──► axis matrices
//
// Per-file decoding runs concurrently; everything order-sensitive
// (diagnostics emission, column assignment) is serialised afterwards over
// the sorted file list, so trial j is always column j.
//
// The controller holds no state between Process calls; each invocation is
// independent and idempotent for identical directory contents.
type PipelineController struct {
	cfg     *utils.PipelineConfig
	decoder *ingest.TrialDecoder
	sink    views.Sink
}

// NewPipelineController wires the pipeline. sink may be nil, which disables
// diagnostics; a non-nil sink is guarded so its failures cannot abort a run.
func NewPipelineController(cfg *utils.PipelineConfig, sink views.Sink) *PipelineController {
	if cfg == nil {
		cfg = utils.DefaultPipelineConfig()
	}
	return &PipelineController{
		cfg:     cfg,
		decoder: ingest.NewTrialDecoder(),
		sink:    views.Guard(sink),
	}
}

// Process decodes every trial file in dir, aligns the batch and median-
// filters each axis matrix with the given window size. It returns the
// filtered matrices together with the shared sample count; on any failure
// no partial result is returned.
func (pc *PipelineController) Process(dir string, windowSize int) (*models.AxisMatrices, error) {
	// Reject a malformed window before touching the filesystem. The
	// window-vs-sample-count bound is rechecked once the batch is decoded.
	if err := filter.CheckWindow(windowSize); err != nil {
		return nil, err
	}

	files, err := pc.discoverTrials(dir)
	if err != nil {
		return nil, err
	}
	utils.L().Info("batch %s: %d trial files, window=%d", dir, len(files), windowSize)

	trials, err := pc.decodeAll(files)
	if err != nil {
		return nil, err
	}

	// Serialised over the sorted file list: diagnostics order and column
	// order must both equal enumeration order.
	aligner := NewBatchAligner()
	for _, t := range trials {
		pc.sink.TrialSeries(filepath.Base(t.File), t)
		if err := aligner.Add(t); err != nil {
			return nil, err
		}
	}

	noisy := aligner.Matrices()

	filtered := &models.AxisMatrices{
		Samples: noisy.Samples,
		Trials:  noisy.Trials,
	}
	if filtered.X, err = filter.Median(noisy.X, windowSize); err != nil {
		return nil, err
	}
	if filtered.Y, err = filter.Median(noisy.Y, windowSize); err != nil {
		return nil, err
	}
	if filtered.Z, err = filter.Median(noisy.Z, windowSize); err != nil {
		return nil, err
	}

	pc.sink.BatchMatrices(fmt.Sprintf("filtered order=%d", windowSize), filtered)

	utils.L().Info("batch %s: %d samples x %d trials filtered", dir, filtered.Samples, filtered.Trials)
	return filtered, nil
}

// discoverTrials lists the trial files of dir in lexicographic order.
func (pc *PipelineController) discoverTrials(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}

	ext := pc.cfg.Ingest.TrialExtension
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (extension %s)", models.ErrNoTrialFiles, dir, ext)
	}
	return files, nil
}

// decodeAll decodes and converts every file concurrently. Results are
// index-addressed so the output slice follows enumeration order regardless
// of goroutine scheduling; on error the lowest-index failure is returned.
func (pc *PipelineController) decodeAll(files []string) ([]*models.Trial, error) {
	trials := make([]*models.Trial, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			raw, err := pc.decoder.DecodeFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			trials[i] = ingest.ConvertTrial(path, raw)
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	utils.L().Debug("decoded %d trials (%d samples total)", len(trials), pc.decoder.Decoded())
	return trials, nil
}
