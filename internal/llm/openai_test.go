package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	var captured openaiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices":[{"message":{"content":"🥕 Овощи:\n• Лук — 1 кг"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAI("secret", srv.URL+"/", "gpt-4o-mini", "whisper-1")
	out, err := client.Complete(context.Background(), Request{
		SystemPrompt: "system",
		UserPrompt:   "лук 1 кг",
		JSON:         true,
	})

	require.NoError(t, err)
	assert.Equal(t, "🥕 Овощи:\n• Лук — 1 кг", out)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "лук 1 кг", captured.Messages[1].Content)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestOpenAIComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"api error object", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, "bad key"},
		{"non json body", http.StatusBadGateway, `<html>`, "decode response"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAI("k", srv.URL, "m", "w").Complete(context.Background(), Request{UserPrompt: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestOpenAITranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		f, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "voice.ogg", header.Filename)
			assert.Equal(t, "OggS", string(data))
		}

		w.Write([]byte(`{"text":" купил молоко за 12 тысяч "}`))
	}))
	defer srv.Close()

	text, err := NewOpenAI("k", srv.URL, "m", "whisper-1").Transcribe(context.Background(), "voice.ogg", strings.NewReader("OggS"))
	require.NoError(t, err)
	assert.Equal(t, "купил молоко за 12 тысяч", text)
}

func TestAudioMIMEType(t *testing.T) {
	assert.Equal(t, "audio/ogg", audioMIMEType("file_1.oga"))
	assert.Equal(t, "audio/ogg", audioMIMEType("voice"))
}
