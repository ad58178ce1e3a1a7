package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned for every request when the service was started
// without a Gemini credential. Its text is what users see in the chat.
var ErrNoAPIKey = errors.New("assistant is unavailable: no Gemini API key is configured")

const systemPreamble = `You are an inventory catalog assistant. Users have uploaded a product
spreadsheet and ask questions about what is in it.

Rules:
- Answer only from the inventory list included with the question. Never invent
  items, prices, or stock levels.
- Quote item IDs, descriptions, and prices exactly as they appear in the list.
- If the requested item is not in the list, say it is not in the current catalog
  and suggest the closest items that are.
- Keep answers short and factual.`

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// disabledClient stands in when no API key is configured, so the rest of the
// system starts normally and only the chat surface degrades.
type disabledClient struct{}

func (disabledClient) GenerateReply(ctx context.Context, userText string, history []entity.Message) (string, error) {
	return "", ErrNoAPIKey
}

// NewClient creates the Gemini-backed AIRepository. An empty apiKey yields a
// client whose every call fails with ErrNoAPIKey.
func NewClient(ctx context.Context, apiKey, modelID string, maxOutputTokens int32) (repository.AIRepository, error) {
	if apiKey == "" {
		return disabledClient{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPreamble)},
	}

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // at most 3 in-flight requests
		delay:  350 * time.Millisecond, // minimum spacing between requests
	}, nil
}

// GenerateReply sends the conversation to the model and returns the single
// assistant message from the response.
func (g *geminiClient) GenerateReply(ctx context.Context, userText string, history []entity.Message) (string, error) {
	release := g.acquire()
	defer release()

	var parts []genai.Part
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Customer: %s", msg.Text)))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("You: %s", msg.Response)))
		}
	}
	parts = append(parts, genai.Text(userText))

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// extractText flattens the candidate parts into one reply string.
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			result.WriteString(fmt.Sprintf("%v", part))
		}
	}
	return result.String()
}

// acquire enforces the concurrency cap and minimum spacing.
func (g *geminiClient) acquire() func() {
	g.sem <- struct{}{}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	g.last = now

	return func() { <-g.sem }
}

// Close releases the underlying client.
func (g *geminiClient) Close() error {
	return g.client.Close()
}
