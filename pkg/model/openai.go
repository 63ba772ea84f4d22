package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model is configured for the OpenAI provider.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider talks to an OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider builds a provider. Extra request options are appended after
// the ones derived from apiKey and baseURL.
func NewOpenAIProvider(apiKey, baseURL, modelName string, extra ...option.RequestOption) (*OpenAIProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key is not set", ErrAuth)
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, extra...)
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  modelName,
	}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (Response, error) {
	messages, err := toOpenAIMessages(req.System, req.History)
	if err != nil {
		return Response{}, err
	}
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}
	if len(req.Tools) > 0 {
		params.Tools = toOpenAITools(req.Tools)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, Classify(err)
	}
	if len(completion.Choices) == 0 {
		return Response{}, fmt.Errorf("%w: empty completion choices", ErrMalformedResponse)
	}
	return fromOpenAIMessage(completion.Choices[0].Message)
}

func toOpenAITools(defs []ToolDefinition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        def.Name,
				Description: openai.String(def.Description),
				Parameters:  openai.FunctionParameters(def.Parameters),
			},
		})
	}
	return out
}

func toOpenAIMessages(system string, history []Turn) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if strings.TrimSpace(system) != "" {
		out = append(out, openai.SystemMessage(system))
	}
	for i, turn := range history {
		switch turn.Role {
		case RoleUser:
			out = append(out, openai.UserMessage(turn.Content))
		case RoleModel:
			if turn.ToolCall == nil {
				out = append(out, openai.AssistantMessage(turn.Content))
				continue
			}
			args, err := json.Marshal(turn.ToolCall.Args)
			if err != nil {
				return nil, fmt.Errorf("encode tool call arguments at turn %d: %w", i, err)
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					ToolCalls: []openai.ChatCompletionMessageToolCallParam{{
						ID: turn.ToolCall.ID,
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      turn.ToolCall.Name,
							Arguments: string(args),
						},
					}},
				},
			})
		case RoleFunction:
			out = append(out, openai.ToolMessage(turn.Content, turn.CallID))
		default:
			return nil, fmt.Errorf("invalid turn role at index %d: %q", i, turn.Role)
		}
	}
	return out, nil
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) (Response, error) {
	if len(msg.ToolCalls) == 0 {
		return Response{Text: strings.TrimSpace(msg.Content)}, nil
	}
	call := msg.ToolCalls[0]
	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return Response{}, fmt.Errorf("%w: tool call arguments: %w", ErrMalformedResponse, err)
		}
	}
	if call.Function.Name == "" {
		return Response{}, fmt.Errorf("%w: %w", ErrMalformedResponse, errors.New("tool call without function name"))
	}
	return Response{
		Text: strings.TrimSpace(msg.Content),
		ToolCall: &ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		},
	}, nil
}
