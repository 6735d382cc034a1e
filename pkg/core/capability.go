package core

import "context"

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier presents messages and decisions to the user. The engine treats it
// as a black box; the CLI ships a terminal implementation and tests use
// scripted ones.
type Notifier interface {
	// Confirm asks a yes/no question. false means the user declined.
	Confirm(ctx context.Context, prompt string) (bool, error)

	// ChooseOne asks the user to pick one of options. ok=false means the
	// user declined the choice entirely.
	ChooseOne(ctx context.Context, prompt string, options []string) (choice string, ok bool, err error)

	// Notify presents a transient message.
	Notify(ctx context.Context, message string, severity Severity)
}

// Recorder produces and transcodes audio payloads. Capture internals are out
// of the engine's scope; only the encoded text form is ever stored.
type Recorder interface {
	// StartCapture begins a recording session.
	StartCapture(ctx context.Context) error

	// StopCapture ends the session and returns the raw payload.
	StopCapture(ctx context.Context) ([]byte, error)

	// Encode converts a raw payload to its storable text representation.
	Encode(payload []byte) string

	// Decode reverses Encode.
	Decode(encoded string) ([]byte, error)

	// EstimateDuration guesses the clip length in seconds from payload size.
	EstimateDuration(payload []byte) float64
}
