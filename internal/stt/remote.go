package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"hero/internal/audio"
)

const defaultRemoteModel = "whisper-1"

// Remote transcribes through the OpenAI audio transcription endpoint.
type Remote struct {
	client openai.Client
	opt    Options
}

func NewRemote(apiKey string, httpClient *http.Client, opt Options, extra ...option.RequestOption) (*Remote, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	if opt.Model == "" {
		opt.Model = defaultRemoteModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	opts = append(opts, extra...)

	return &Remote{client: openai.NewClient(opts...), opt: opt}, nil
}

func (r *Remote) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	if len(pcm) == 0 {
		return "", ErrNoAudio
	}

	wav, err := audio.EncodeWAV(pcm)
	if err != nil {
		return "", fmt.Errorf("encode wav: %w", err)
	}

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(wav), "utterance.wav", "audio/wav"),
		Model: openai.AudioModel(r.opt.Model),
	}
	if r.opt.Language != "" && r.opt.Language != "auto" {
		params.Language = openai.String(r.opt.Language)
	}
	if r.opt.InitialPrompt != "" {
		params.Prompt = openai.String(r.opt.InitialPrompt)
	}

	res, err := r.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}
