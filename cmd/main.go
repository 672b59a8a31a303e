package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/EmaroLab/hunger/controller"
	"github.com/EmaroLab/hunger/utils"
	"github.com/EmaroLab/hunger/views"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	dir := flag.String("dir", "", "directory containing trial .txt files (required)")
	window := flag.Int("window", 0, "median filter window size (odd, overrides config)")
	diagnostics := flag.Bool("diagnostics", false, "write noisy/filtered CSVs and spectrum comparison")
	configPath := flag.String("config", "", "optional pipeline.yaml path")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	flag.Parse()

	// ── Logger ───────────────────────────────────────────────────────
	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Accelerometer Trial Preprocessor")
	utils.L().Info("═══════════════════════════════════════════════════")

	if *dir == "" {
		flag.Usage()
		utils.L().Fatal("-dir is required")
	}

	// ── Load config ──────────────────────────────────────────────────
	cfg := utils.DefaultPipelineConfig()
	if *configPath != "" {
		var err error
		cfg, err = utils.LoadPipelineConfig(*configPath)
		if err != nil {
			utils.L().Fatal("load pipeline config: %v", err)
		}
	}
	if *window > 0 {
		cfg.Filter.WindowSize = *window
	}
	if *diagnostics {
		cfg.Diagnostics.Enabled = true
	}

	// ── Diagnostics sink ─────────────────────────────────────────────
	var sink views.Sink
	var session *views.SessionSink
	if cfg.Diagnostics.Enabled {
		var err error
		session, err = views.NewSessionSink(&cfg.Diagnostics)
		if err != nil {
			utils.L().Fatal("init diagnostics session: %v", err)
		}
		sink = session
	}

	// ── Pipeline ─────────────────────────────────────────────────────
	pc := controller.NewPipelineController(cfg, sink)
	result, err := pc.Process(*dir, cfg.Filter.WindowSize)
	if err != nil {
		utils.L().Error("pipeline failed: %v", err)
		os.Exit(1)
	}

	if session != nil {
		spectrumDiagnostic(cfg, session)
		utils.L().Info("diagnostics saved to: %s", session.SessionDir())
	}

	utils.L().Info("done: %d samples x %d trials per axis", result.Samples, result.Trials)
	fmt.Printf("\n✓ batch processed: %d samples x %d trials per axis\n", result.Samples, result.Trials)
}

// spectrumDiagnostic compares the configured filter orders on the noisy
// x column of the first trial and writes the magnitude spectra next to the
// session CSVs. Order 1 in the comparison is the unfiltered baseline.
func spectrumDiagnostic(cfg *utils.PipelineConfig, session *views.SessionSink) {
	col := session.FirstTrialX()
	if len(col) == 0 {
		return
	}

	cmp, err := views.CompareFilterOrders(col, cfg.Diagnostics.SpectrumWindows)
	if err != nil {
		utils.L().Warn("spectrum comparison skipped: %v", err)
		return
	}

	path := filepath.Join(session.SessionDir(), "spectrum_x.csv")
	if err := views.ExportSpectrum(path, cmp,
		cfg.Diagnostics.CSV.BufferSizeKB*1024, cfg.Diagnostics.CSV.WriteHeader); err != nil {
		utils.L().Warn("spectrum export failed: %v", err)
	}
}
