package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
)

// voiceBytesPerSecond is the size heuristic for duration estimates,
// assuming a ~32 kbps voice encoding.
const voiceBytesPerSecond = 4000

// fileRecorder satisfies the recorder capability by reading a prepared
// audio file instead of capturing from a microphone. StartCapture checks the
// file, StopCapture reads it.
type fileRecorder struct {
	path string
}

func newFileRecorder(path string) *fileRecorder {
	return &fileRecorder{path: path}
}

func (r *fileRecorder) StartCapture(_ context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("audio file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("audio file is a directory: %s", r.path)
	}
	return nil
}

func (r *fileRecorder) StopCapture(_ context.Context) ([]byte, error) {
	return os.ReadFile(r.path)
}

func (r *fileRecorder) Encode(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

func (r *fileRecorder) Decode(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

func (r *fileRecorder) EstimateDuration(payload []byte) float64 {
	return float64(len(payload)) / voiceBytesPerSecond
}
