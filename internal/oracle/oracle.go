// Package oracle turns free text into structured input for the shopping list
// using a language model: list classification, purchase extraction, edit
// extraction and voice transcription.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/llm"
	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// ErrTranscriptionUnavailable is returned when no transcriber is configured.
var ErrTranscriptionUnavailable = errors.New("voice transcription is not configured")

// Oracle wraps a language model with the bot's prompts.
type Oracle struct {
	model       llm.LLM
	transcriber llm.Transcriber
}

// New creates an Oracle. transcriber may be nil.
func New(model llm.LLM, transcriber llm.Transcriber) *Oracle {
	return &Oracle{model: model, transcriber: transcriber}
}

// Classify returns the model's answer to a free-form message: a formatted list,
// a greeting or a refusal.
func (o *Oracle) Classify(ctx context.Context, text string) (string, error) {
	out, err := o.model.Complete(ctx, llm.Request{SystemPrompt: listPrompt, UserPrompt: text})
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("classify: empty response")
	}
	return out, nil
}

// ExtractPurchases returns the products from candidates that text reports as bought.
func (o *Oracle) ExtractPurchases(ctx context.Context, text string, candidates []string) ([]models.PurchaseMatch, error) {
	out, err := o.model.Complete(ctx, llm.Request{
		SystemPrompt: purchasePrompt,
		UserPrompt:   fmt.Sprintf(purchaseRequestTemplate, strings.Join(candidates, ", "), text),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("extract purchases: %w", err)
	}
	return decodePurchases(out)
}

// ExtractEdits returns the list changes requested by text.
func (o *Oracle) ExtractEdits(ctx context.Context, text string) ([]models.Change, error) {
	out, err := o.model.Complete(ctx, llm.Request{SystemPrompt: editPrompt, UserPrompt: text, JSON: true})
	if err != nil {
		return nil, fmt.Errorf("extract edits: %w", err)
	}
	return decodeChanges(out)
}

// Transcribe converts a voice message to text.
func (o *Oracle) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if o.transcriber == nil {
		return "", ErrTranscriptionUnavailable
	}
	text, err := o.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return text, nil
}

type purchasesPayload struct {
	Products []struct {
		Name  string    `json:"name"`
		Price flexPrice `json:"price"`
	} `json:"products"`
}

type changesPayload struct {
	Changes []models.Change `json:"changes"`
}

func decodePurchases(raw string) ([]models.PurchaseMatch, error) {
	var payload purchasesPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("decode purchases: %w", err)
	}

	out := make([]models.PurchaseMatch, 0, len(payload.Products))
	for _, p := range payload.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out = append(out, models.PurchaseMatch{Name: name, Price: int64(p.Price)})
	}
	return out, nil
}

func decodeChanges(raw string) ([]models.Change, error) {
	var payload changesPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}

	out := make([]models.Change, 0, len(payload.Changes))
	for _, ch := range payload.Changes {
		ch.Action = models.ChangeAction(strings.ToLower(strings.TrimSpace(string(ch.Action))))
		switch ch.Action {
		case models.ChangeAdd, models.ChangeRemove, models.ChangeReplace:
			out = append(out, ch)
		}
	}
	return out, nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// flexPrice accepts numbers, numeric strings ("12.000", "12000 сум") and null.
type flexPrice int64

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var digits strings.Builder
		for _, r := range s {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() == 0 {
			*p = 0
			return nil
		}
		v, err := strconv.ParseInt(digits.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*p = flexPrice(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f < 0 {
		f = 0
	}
	*p = flexPrice(math.Round(f))
	return nil
}
