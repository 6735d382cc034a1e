package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRecorderCapturesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.webm")
	payload := []byte("RIFF fake audio")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	rec := newFileRecorder(path)
	ctx := context.Background()
	require.NoError(t, rec.StartCapture(ctx))

	got, err := rec.StopCapture(ctx)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestFileRecorderMissingFile(t *testing.T) {
	rec := newFileRecorder(filepath.Join(t.TempDir(), "gone.webm"))
	require.Error(t, rec.StartCapture(context.Background()))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := newFileRecorder("")
	payload := []byte{0x00, 0x01, 0xfe, 0xff}

	encoded := rec.Encode(payload)
	decoded, err := rec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestEstimateDurationScalesWithSize(t *testing.T) {
	rec := newFileRecorder("")
	require.Equal(t, 1.0, rec.EstimateDuration(make([]byte, voiceBytesPerSecond)))
	require.Equal(t, 2.5, rec.EstimateDuration(make([]byte, voiceBytesPerSecond*5/2)))
}
