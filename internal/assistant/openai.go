package assistant

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	openaischema "github.com/sashabaranov/go-openai/jsonschema"

	"github.com/erazemk/shouna/internal/imaging"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client     *openai.Client
	model      string
	configured bool
}

// NewOpenAI returns an OpenAI provider. An empty baseURL uses the public
// API.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	return newOpenAI(apiKey, baseURL, model, nil)
}

func newOpenAI(apiKey, baseURL, model string, hc *http.Client) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if hc != nil {
		cfg.HTTPClient = hc
	}
	return &OpenAI{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		configured: apiKey != "",
	}
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Classify(ctx context.Context, data []byte, mime, instruction string) (string, error) {
	if !p.configured {
		return "", ErrNotConfigured
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imaging.EncodeDataURL(data, mime),
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "item_analysis",
				Schema: openaiSchema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return firstChoice(resp), nil
}

func (p *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if !p.configured {
		return "", ErrNotConfigured
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return firstChoice(resp), nil
}

func firstChoice(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

func openaiSchema() *openaischema.Definition {
	props := make(map[string]openaischema.Definition, len(analysisFields))
	for _, field := range analysisFields {
		d := openaischema.Definition{Type: openaischema.String, Description: fieldDescriptions[field]}
		if field == "tags" {
			d = openaischema.Definition{
				Type:        openaischema.Array,
				Description: fieldDescriptions[field],
				Items:       &openaischema.Definition{Type: openaischema.String},
			}
		}
		props[field] = d
	}
	return &openaischema.Definition{
		Type:                 openaischema.Object,
		Properties:           props,
		Required:             analysisFields,
		AdditionalProperties: false,
	}
}
