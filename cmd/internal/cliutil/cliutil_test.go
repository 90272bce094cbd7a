package cliutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClipboard replaces the system clipboard for the duration of a test.
func fakeClipboard(t *testing.T, unsupported bool, err error) *string {
	t.Helper()
	var got string
	prevUnsupported, prevWrite := clipboardUnsupported, writeClipboard
	clipboardUnsupported = func() bool { return unsupported }
	writeClipboard = func(s string) error {
		if err != nil {
			return err
		}
		got = s
		return nil
	}
	t.Cleanup(func() {
		clipboardUnsupported, writeClipboard = prevUnsupported, prevWrite
	})
	return &got
}

func TestPublishClipboard(t *testing.T) {
	copied := fakeClipboard(t, false, nil)
	var stdout bytes.Buffer

	p := &Publisher{Clipboard: true, Stdout: &stdout}
	require.NoError(t, p.Publish("metrics: []\n"))

	assert.Equal(t, "metrics: []\n", *copied)
	assert.Equal(t, ClipboardNotice+"\n", stdout.String())
}

func TestPublishFallsBackToStdout(t *testing.T) {
	tests := []struct {
		name        string
		clipboard   bool
		unsupported bool
		err         error
		wantWarning bool
	}{
		{name: "disabled", clipboard: false},
		{name: "unsupported", clipboard: true, unsupported: true},
		{name: "write fails", clipboard: true, err: errors.New("no display"), wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copied := fakeClipboard(t, tt.unsupported, tt.err)
			var stdout, stderr bytes.Buffer

			p := &Publisher{Clipboard: tt.clipboard, Stdout: &stdout, Stderr: &stderr}
			require.NoError(t, p.Publish("metrics: []\n"))

			assert.Empty(t, *copied)
			assert.Equal(t, "metrics: []\n", stdout.String())
			if tt.wantWarning {
				assert.Contains(t, stderr.String(), "no display")
			} else {
				assert.Empty(t, stderr.String())
			}
		})
	}
}

func TestPublishOutputFile(t *testing.T) {
	copied := fakeClipboard(t, false, nil)
	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "profile.yaml")

	p := &Publisher{OutputFile: path, Clipboard: true, Stdout: &stdout}
	require.NoError(t, p.Publish("metrics: []\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "metrics: []\n", string(data))
	assert.Empty(t, *copied)
	assert.Empty(t, stdout.String())
}

func TestPublishOutputFileError(t *testing.T) {
	p := &Publisher{OutputFile: filepath.Join(t.TempDir(), "missing", "profile.yaml")}
	assert.Error(t, p.Publish("metrics: []\n"))
}
