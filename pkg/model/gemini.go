package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured for the Gemini provider.
const DefaultGeminiModel = "gemini-1.5-pro-latest"

// GeminiProvider talks to Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini client for apiKey.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, extra ...option.ClientOption) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is not set", ErrAuth)
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultGeminiModel
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: modelName}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (Response, error) {
	history, last, err := toGeminiHistory(req.History)
	if err != nil {
		return Response{}, err
	}

	gm := p.client.GenerativeModel(p.model)
	if strings.TrimSpace(req.System) != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if len(req.Tools) > 0 {
		gm.Tools = toGeminiTools(req.Tools)
	}

	session := gm.StartChat()
	session.History = history
	resp, err := session.SendMessage(ctx, last...)
	if err != nil {
		return Response{}, Classify(err)
	}
	return fromGeminiResponse(resp)
}

// toGeminiHistory splits the history into prior contents and the parts of the
// final turn, which must come from the user or from a function result.
func toGeminiHistory(turns []Turn) ([]*genai.Content, []genai.Part, error) {
	if len(turns) == 0 {
		return nil, nil, errors.New("history is empty")
	}
	contents := make([]*genai.Content, 0, len(turns))
	for i, turn := range turns {
		content, err := toGeminiContent(turn)
		if err != nil {
			return nil, nil, fmt.Errorf("turn %d: %w", i, err)
		}
		contents = append(contents, content)
	}
	last := contents[len(contents)-1]
	if last.Role != "user" {
		return nil, nil, fmt.Errorf("last turn must be user or function, got %q", turns[len(turns)-1].Role)
	}
	return contents[:len(contents)-1], last.Parts, nil
}

func toGeminiContent(turn Turn) (*genai.Content, error) {
	switch turn.Role {
	case RoleUser:
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(turn.Content)}}, nil
	case RoleModel:
		if turn.ToolCall != nil {
			return &genai.Content{Role: "model", Parts: []genai.Part{genai.FunctionCall{
				Name: turn.ToolCall.Name,
				Args: turn.ToolCall.Args,
			}}}, nil
		}
		return &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(turn.Content)}}, nil
	case RoleFunction:
		payload := map[string]any{}
		if err := json.Unmarshal([]byte(turn.Content), &payload); err != nil {
			// Non-object results are still forwarded.
			payload = map[string]any{"result": turn.Content}
		}
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.FunctionResponse{
			Name:     turn.ToolName,
			Response: payload,
		}}}, nil
	default:
		return nil, fmt.Errorf("invalid turn role %q", turn.Role)
	}
}

func toGeminiTools(defs []ToolDefinition) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  toGeminiSchema(def.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// toGeminiSchema converts a JSON-schema map into genai.Schema. Unknown keywords are dropped.
func toGeminiSchema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}
	s := &genai.Schema{}
	if t, ok := m["type"].(string); ok {
		s.Type = geminiType(t)
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				s.Properties[name] = toGeminiSchema(child)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = toGeminiSchema(items)
	}
	switch req := m["required"].(type) {
	case []string:
		s.Required = append([]string(nil), req...)
	case []any:
		for _, v := range req {
			if name, ok := v.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	return s
}

func geminiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "string":
		return genai.TypeString
	case "array":
		return genai.TypeArray
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Response{}, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return Response{}, fmt.Errorf("%w: candidate without content", ErrMalformedResponse)
	}

	var out Response
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			text.WriteString(string(v))
		case genai.FunctionCall:
			if out.ToolCall != nil {
				continue
			}
			args := v.Args
			if args == nil {
				args = map[string]any{}
			}
			out.ToolCall = &ToolCall{Name: v.Name, Args: args}
		}
	}
	out.Text = strings.TrimSpace(text.String())
	return out, nil
}
