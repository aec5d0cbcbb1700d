package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Transcriber turns short encoded audio clips into text via the Google
// Cloud Speech unary API. Clips here are one utterance each, so there
// is no streaming session to manage.
type Transcriber struct {
	client *speech.Client
}

func NewTranscriber(ctx context.Context) (*Transcriber, error) {
	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		return nil, errors.New("NewTranscriber(): GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		log.Printf("NewTranscriber(): failed to create speech client: %v", err)
		return nil, err
	}
	return &Transcriber{client: client}, nil
}

// Transcribe recognizes one clip of LINEAR16 16kHz mono audio. Any
// failure, including silence, surfaces as a transcription error since
// there is no safe fallback text.
func (t *Transcriber) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			AudioChannelCount: 1,
			LanguageCode:      "en-US",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("failed to transcribe audio: no speech recognized")
	}
	return strings.Join(parts, " "), nil
}

func (t *Transcriber) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
