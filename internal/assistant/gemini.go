package assistant

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API. The client is created on first use so a
// missing key only fails the calls that need it.
type Gemini struct {
	apiKey string
	model  string

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGemini returns a Gemini provider for model.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	if g.apiKey == "" {
		return nil, ErrNotConfigured
	}
	g.once.Do(func() {
		g.client, g.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if g.clientErr != nil {
			g.clientErr = fmt.Errorf("failed to create GenAI client: %w", g.clientErr)
		}
	})
	return g.client, g.clientErr
}

func (g *Gemini) Classify(ctx context.Context, data []byte, mime, instruction string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func geminiSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(analysisFields))
	for _, field := range analysisFields {
		s := &genai.Schema{Type: genai.TypeString, Description: fieldDescriptions[field]}
		if field == "tags" {
			s = &genai.Schema{
				Type:        genai.TypeArray,
				Description: fieldDescriptions[field],
				Items:       &genai.Schema{Type: genai.TypeString},
			}
		}
		props[field] = s
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         analysisFields,
		PropertyOrdering: analysisFields,
	}
}
