package stt_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero/internal/stt"
)

func TestRemote_Transcribe(t *testing.T) {
	var model, language, prompt, contentType string
	var audioHeader []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/audio/transcriptions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		model = r.FormValue("model")
		language = r.FormValue("language")
		prompt = r.FormValue("prompt")

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		contentType = fh.Header.Get("Content-Type")
		audioHeader, _ = io.ReadAll(io.LimitReader(f, 4))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":" Hero, open calculator. "}`)
	}))
	defer srv.Close()

	r, err := stt.NewRemote("test-key", srv.Client(), stt.Options{Language: "en", InitialPrompt: "hero open close"},
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)

	text, err := r.Transcribe(context.Background(), make([]float32, 1600))
	require.NoError(t, err)
	assert.Equal(t, "Hero, open calculator.", text)

	assert.Equal(t, "whisper-1", model)
	assert.Equal(t, "en", language)
	assert.Equal(t, "hero open close", prompt)
	assert.Equal(t, "audio/wav", contentType)
	assert.Equal(t, "RIFF", string(audioHeader))
}

func TestRemote_AutoLanguageIsOmitted(t *testing.T) {
	var sawLanguage bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, sawLanguage = r.MultipartForm.Value["language"]
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"open notepad"}`)
	}))
	defer srv.Close()

	r, err := stt.NewRemote("k", nil, stt.Options{Language: "auto", Model: "gpt-4o-mini-transcribe"},
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)

	text, err := r.Transcribe(context.Background(), []float32{0.1})
	require.NoError(t, err)
	assert.Equal(t, "open notepad", text)
	assert.False(t, sawLanguage)
}

func TestRemote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer srv.Close()

	r, err := stt.NewRemote("k", nil, stt.Options{}, option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = r.Transcribe(context.Background(), []float32{0.1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription")
}

func TestRemote_Validation(t *testing.T) {
	_, err := stt.NewRemote("", nil, stt.Options{})
	assert.Error(t, err)

	r, err := stt.NewRemote("k", nil, stt.Options{})
	require.NoError(t, err)
	_, err = r.Transcribe(context.Background(), nil)
	assert.ErrorIs(t, err, stt.ErrNoAudio)
}
