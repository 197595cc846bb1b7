package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"audioscribe/internal/app/api"
)

// AutoLanguage asks the engine to detect the spoken language
const AutoLanguage = "auto"

// RemoteTranscriber implements api.Transcriber using the OpenAI audio API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

var _ api.Transcriber = (*RemoteTranscriber)(nil)

// NewRemoteTranscriber creates a new RemoteTranscriber. An empty model
// selects whisper-1.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcribe sends the audio with a verbose_json response format so the
// duration comes back with the text.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, req api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	if req.Audio == nil {
		return nil, fmt.Errorf("audio is required")
	}

	filename := req.Filename
	if filename == "" {
		filename = "audio"
	}

	language := req.Language
	if language == AutoLanguage {
		language = ""
	}

	resp, err := rt.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    rt.model,
		FilePath: filename,
		Reader:   req.Audio,
		Prompt:   req.Prompt,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	detected := resp.Language
	if detected == "" {
		detected = language
	}

	return &api.TranscriptionResult{
		Text:     resp.Text,
		Duration: resp.Duration,
		Language: detected,
	}, nil
}
