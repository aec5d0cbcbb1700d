package llm

import (
	"context"
	"errors"
	"log"
	"os"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// Synthesizer converts assistant replies to audio.
type Synthesizer struct {
	client *texttospeech.Client
}

func NewSynthesizer(ctx context.Context) (*Synthesizer, error) {
	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errors.New("NewSynthesizer(): failed to create TTS client: " + err.Error())
	}
	return &Synthesizer{client: client}, nil
}

// SynthesizeSpeech converts text to LINEAR16 audio. The whole reply is
// synthesized before anything is returned.
func (s *Synthesizer) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         "en-US-Wavenet-D",
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: 16000,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		log.Printf("SynthesizeSpeech(): request failed: %v", err)
		return nil, err
	}
	return resp.AudioContent, nil
}

func (s *Synthesizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
