package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmaroLab/hunger/models"
)

func writeTrial(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecodeFile(t *testing.T) {
	path := writeTrial(t, "trial1.txt", "10\t20\t30\n0 63 31\n")

	d := NewTrialDecoder()
	samples, err := d.DecodeFile(path)
	require.NoError(t, err)

	require.Len(t, samples, 2)
	assert.Equal(t, models.RawSample{X: 10, Y: 20, Z: 30}, samples[0])
	assert.Equal(t, models.RawSample{X: 0, Y: 63, Z: 31}, samples[1])
	assert.Equal(t, uint64(2), d.Decoded())
}

func TestDecodeFileMixedDelimiters(t *testing.T) {
	// Tabs, runs of spaces and negative (saturated) codes all occur in
	// real device dumps.
	path := writeTrial(t, "trial.txt", " 1\t 2   3\n-1\t64\t5\n")

	samples, err := NewTrialDecoder().DecodeFile(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, models.RawSample{X: -1, Y: 64, Z: 5}, samples[1])
}

func TestDecodeFileSkipsBlankLines(t *testing.T) {
	path := writeTrial(t, "trial.txt", "1 2 3\n\n4 5 6\n\n")

	samples, err := NewTrialDecoder().DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestDecodeFileFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		record  int
	}{
		{"two fields", "1 2 3\n4 5\n", 2},
		{"four fields", "1 2 3 4\n", 1},
		{"non-integer", "1 2 3\n1 x 3\n", 2},
		{"float code", "1 2.5 3\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTrial(t, "bad.txt", tt.content)

			samples, err := NewTrialDecoder().DecodeFile(path)
			assert.Nil(t, samples, "no partial trial on malformed record")

			var ferr *models.FormatError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, path, ferr.File)
			assert.Equal(t, tt.record, ferr.Record)
		})
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := NewTrialDecoder().DecodeFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
