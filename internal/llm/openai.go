package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI talks to any OpenAI compatible API.
type OpenAI struct {
	apiKey             string
	baseURL            string
	model              string
	transcriptionModel string
	client             *http.Client
}

type openaiRequest struct {
	Model          string          `json:"model"`
	Messages       []openaiMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openaiError struct {
	Message string `json:"message"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *openaiError `json:"error,omitempty"`
}

type transcriptionResponse struct {
	Text  string       `json:"text"`
	Error *openaiError `json:"error,omitempty"`
}

// NewOpenAI creates a client. An empty baseURL means the public OpenAI API.
func NewOpenAI(apiKey, baseURL, model, transcriptionModel string) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAI{
		apiKey:             apiKey,
		baseURL:            strings.TrimRight(baseURL, "/"),
		model:              model,
		transcriptionModel: transcriptionModel,
		client:             &http.Client{Timeout: 60 * time.Second},
	}
}

// Complete implements LLM using the chat completions endpoint.
func (o *OpenAI) Complete(ctx context.Context, r Request) (string, error) {
	var messages []openaiMessage
	if r.SystemPrompt != "" {
		messages = append(messages, openaiMessage{Role: "system", Content: r.SystemPrompt})
	}
	messages = append(messages, openaiMessage{Role: "user", Content: r.UserPrompt})

	reqBody := openaiRequest{
		Model:    o.model,
		Messages: messages,
	}
	if r.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := o.do(req)
	if err != nil {
		return "", err
	}

	var oaiResp openaiResponse
	if err := json.Unmarshal(body, &oaiResp); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", status, err)
	}

	if oaiResp.Error != nil {
		return "", fmt.Errorf("api error (status %d): %s", status, oaiResp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", status, string(body))
	}
	if len(oaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return oaiResp.Choices[0].Message.Content, nil
}

// Transcribe implements Transcriber using the audio transcriptions endpoint.
func (o *OpenAI) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("model", o.transcriptionModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create file field: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	body, status, err := o.do(req)
	if err != nil {
		return "", err
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("decode transcription (status %d): %w", status, err)
	}
	if tr.Error != nil {
		return "", fmt.Errorf("api error (status %d): %s", status, tr.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", status, string(body))
	}

	return strings.TrimSpace(tr.Text), nil
}

// Close implements Provider.
func (o *OpenAI) Close() error {
	o.client.CloseIdleConnections()
	return nil
}

func (o *OpenAI) do(req *http.Request) ([]byte, int, error) {
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}
