package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/EmaroLab/hunger/models"
)

// TrialDecoder parses raw trial files produced by the wearable device.
// Each record is one line of exactly three whitespace- or tab-delimited
// signed integers (the x, y, z ADC codes). Blank lines are tolerated so a
// trailing newline does not fail the trial; anything else that is not an
// integer triplet fails the whole file with a models.FormatError.
type TrialDecoder struct {
	decoded uint64
}

func NewTrialDecoder() *TrialDecoder {
	return &TrialDecoder{}
}

// DecodeFile reads one trial file and returns its raw samples in record
// order. The returned slice length equals the number of records in the file.
func (d *TrialDecoder) DecodeFile(path string) ([]models.RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trial %s: %w", path, err)
	}
	defer f.Close()

	var samples []models.RawSample

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue // blank line, usually a trailing newline
		}

		s, err := parseRecord(fields)
		if err != nil {
			return nil, &models.FormatError{File: path, Record: line, Err: err}
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trial %s: %w", path, err)
	}

	atomic.AddUint64(&d.decoded, uint64(len(samples)))
	return samples, nil
}

// parseRecord converts one tokenised line into a RawSample.
func parseRecord(fields []string) (models.RawSample, error) {
	if len(fields) != 3 {
		return models.RawSample{}, fmt.Errorf("want 3 integer fields, got %d", len(fields))
	}

	var codes [3]int
	for i, fld := range fields {
		v, err := strconv.Atoi(fld)
		if err != nil {
			return models.RawSample{}, fmt.Errorf("field %d %q: not an integer", i+1, fld)
		}
		codes[i] = v
	}
	return models.RawSample{X: codes[0], Y: codes[1], Z: codes[2]}, nil
}

// Decoded returns the total number of samples decoded by this instance.
func (d *TrialDecoder) Decoded() uint64 {
	return atomic.LoadUint64(&d.decoded)
}
