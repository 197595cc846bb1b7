package api

import (
	"context"
	"io"
)

// TranscriptionRequest is one audio file to transcribe.
type TranscriptionRequest struct {
	// Filename is sent to the engine so it can infer the audio format.
	Filename string
	Audio    io.Reader

	// Language is an ISO-639-1 hint; empty lets the engine detect it.
	Language string
	Prompt   string
}

// TranscriptionResult is what the engine reports back. Duration is in
// seconds and is zero when the engine does not report it.
type TranscriptionResult struct {
	Text     string
	Duration float64
	Language string
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error)
}
