// Package gemini implements ai.Model on top of the Gemini API SDK.
package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/atscv/internal/client/ai"
)

const jsonMIMEType = "application/json"

// Model creates its SDK client on first use so that a missing key is
// reported by the gateway rather than at startup.
type Model struct {
	apiKey string

	mu     sync.Mutex
	client *genai.Client
}

func New(apiKey string) *Model {
	return &Model{apiKey: apiKey}
}

func (m *Model) Generate(ctx context.Context, req ai.Request) (string, error) {
	client, err := m.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = ai.DefaultModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), generateConfig(req.Schema))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

func (m *Model) getClient(ctx context.Context) (*genai.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	m.client = c
	return c, nil
}

func generateConfig(s *ai.Schema) *genai.GenerateContentConfig {
	if s == nil {
		return nil
	}
	return &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   toGenaiSchema(s),
	}
}

func toGenaiSchema(s *ai.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Items:       toGenaiSchema(s.Items),
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenaiSchema(p)
		}
	}
	return out
}

func toGenaiType(t ai.Type) genai.Type {
	switch t {
	case ai.TypeObject:
		return genai.TypeObject
	case ai.TypeArray:
		return genai.TypeArray
	case ai.TypeString:
		return genai.TypeString
	case ai.TypeNumber:
		return genai.TypeNumber
	case ai.TypeInteger:
		return genai.TypeInteger
	case ai.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
