package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/EmaroLab/hunger/models"
	"github.com/EmaroLab/hunger/utils"
)

// CSVWriter is a buffered CSV writer. The underlying bufio.Writer absorbs
// write syscall overhead; errors are surfaced on Close, which is enough for
// a batch exporter that writes each file exactly once.
type CSVWriter struct {
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter opens (or creates) a file and writes the CSV header row.
func NewCSVWriter(path string, bufSizeBytes int, writeHeader bool, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024 // 64 KB default
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	cw := csv.NewWriter(bw)

	w := &CSVWriter{
		file: f,
		buf:  bw,
		csv:  cw,
	}

	if writeHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row.
func (w *CSVWriter) WriteRow(row []string) {
	_ = w.csv.Write(row) // error is buffered; checked on Close
	w.rows++
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("csv flush: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("csv flush: %w", err)
	}
	return w.file.Close()
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	return w.rows
}

// ─── session sink ───────────────────────────────────────────────────────

// SessionSink persists everything the pipeline pushes at it into one
// session directory:
//
//	<base>/<prefix>_YYYYMMDD_HHMMSS/
//	    trial_000.csv ...   one CSV per decoded trial (noisy signal)
//	    filtered_x.csv      filtered axis matrices, row = sample,
//	    filtered_y.csv      column = trial
//	    filtered_z.csv
//
// It implements Sink, so CSV trouble inside it surfaces as a log line and
// never as a pipeline failure.
type SessionSink struct {
	sessionDir  string
	bufSize     int
	writeHeader bool

	trialIdx int
	firstX   []float64 // noisy x column of the first trial, kept for the spectrum diagnostic
}

// NewSessionSink creates the session directory tree.
func NewSessionSink(cfg *utils.DiagnosticsConfig) (*SessionSink, error) {
	sess := utils.SessionName(cfg.SessionPrefix)
	sessionDir := filepath.Join(cfg.BaseDir, sess)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	utils.L().Info("diagnostics session ready  dir=%s", sessionDir)
	return &SessionSink{
		sessionDir:  sessionDir,
		bufSize:     cfg.CSV.BufferSizeKB * 1024,
		writeHeader: cfg.CSV.WriteHeader,
	}, nil
}

// TrialSeries writes one trial's noisy per-axis signal to trial_NNN.csv.
func (s *SessionSink) TrialSeries(title string, t *models.Trial) {
	path := filepath.Join(s.sessionDir, fmt.Sprintf("trial_%03d.csv", s.trialIdx))
	if s.trialIdx == 0 {
		s.firstX = append([]float64(nil), t.X...)
	}
	s.trialIdx++

	w, err := NewCSVWriter(path, s.bufSize, s.writeHeader, t.CSVHeader())
	if err != nil {
		utils.L().Error("diagnostics %q: %v", title, err)
		return
	}
	for i := 0; i < t.Samples(); i++ {
		w.WriteRow(t.CSVRow(i))
	}
	if err := w.Close(); err != nil {
		utils.L().Error("diagnostics %q: %v", title, err)
	}
}

// BatchMatrices writes the filtered matrices, one CSV per axis.
func (s *SessionSink) BatchMatrices(title string, m *models.AxisMatrices) {
	for _, axis := range []models.Axis{models.AxisX, models.AxisY, models.AxisZ} {
		path := filepath.Join(s.sessionDir, fmt.Sprintf("filtered_%s.csv", axis))
		if err := ExportMatrix(path, m.Matrix(axis), s.bufSize, s.writeHeader); err != nil {
			utils.L().Error("diagnostics %q: %v", title, err)
		}
	}
}

// SessionDir returns the path to the active session directory.
func (s *SessionSink) SessionDir() string {
	return s.sessionDir
}

// FirstTrialX returns the unfiltered x-axis series of the first trial seen,
// or nil if no trial has been pushed yet.
func (s *SessionSink) FirstTrialX() []float64 {
	return s.firstX
}

// ExportMatrix writes one axis matrix as CSV: row = sample index, one
// column per trial, header "trial_0,trial_1,...".
func ExportMatrix(path string, m *mat.Dense, bufSizeBytes int, writeHeader bool) error {
	rows, cols := m.Dims()

	var header []string
	if writeHeader {
		header = make([]string, cols)
		for j := 0; j < cols; j++ {
			header[j] = "trial_" + strconv.Itoa(j)
		}
	}

	w, err := NewCSVWriter(path, bufSizeBytes, writeHeader, header)
	if err != nil {
		return err
	}

	row := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = ftoa(m.At(i, j))
		}
		w.WriteRow(row)
	}
	return w.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
