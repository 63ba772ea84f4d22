package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minhyannv/bookchat-go/pkg/catalog"
	loggerpkg "github.com/minhyannv/bookchat-go/pkg/logger"
	"github.com/minhyannv/bookchat-go/pkg/model"
)

type tool interface {
	definition() model.ToolDefinition
	execute(session *Session, args map[string]any) (any, error)
	name() string
}

// Session carries per-conversation context threaded through tool calls.
type Session struct {
	// LastTitle is the most recently referenced book title.
	LastTitle string
}

// Reset forgets the conversation context.
func (s *Session) Reset() {
	s.LastTitle = ""
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger injects a logger.
func WithLogger(l loggerpkg.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerbose enables debug logging of tool calls.
func WithVerbose(v bool) Option {
	return func(r *Registry) {
		r.verbose = v
	}
}

// Registry holds the catalog tools and dispatches model tool calls to them.
type Registry struct {
	registry map[string]tool
	params   []model.ToolDefinition
	logger   loggerpkg.Logger
	verbose  bool
}

type toolResponse struct {
	OK   bool   `json:"ok"`
	Tool string `json:"tool,omitempty"`
	Data any    `json:"data,omitempty"`
	Err  string `json:"error,omitempty"`
}

// New builds a registry with the catalog tools.
func New(cat *catalog.Catalog, opts ...Option) *Registry {
	r := &Registry{
		registry: make(map[string]tool),
		logger:   loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.register(&bookDetailsTool{catalog: cat})
	r.register(&storesTool{catalog: cat})
	return r
}

func (r *Registry) register(t tool) {
	r.registry[t.name()] = t
	r.params = append(r.params, t.definition())
	loggerpkg.Debug(r.verbose, r.logger, "tool registered", loggerpkg.Fields{"name": t.name()})
}

// Definitions returns the tool declarations sent to the model.
func (r *Registry) Definitions() []model.ToolDefinition {
	return r.params
}

// Dispatch runs the tool named by call and returns its JSON result.
// Tool failures, including unknown names, are reported inside the result;
// the returned error is reserved for encoding failures.
func (r *Registry) Dispatch(ctx context.Context, session *Session, call model.ToolCall) (string, error) {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return marshalToolResponse(call.Name, nil, ctx.Err())
		default:
		}
	}
	if session == nil {
		session = &Session{}
	}

	t, ok := r.registry[call.Name]
	if !ok {
		loggerpkg.Warn(r.logger, "unknown tool requested", loggerpkg.Fields{"name": call.Name})
		return marshalToolResponse(call.Name, nil, fmt.Errorf("unknown tool: %s", call.Name))
	}

	loggerpkg.Debug(r.verbose, r.logger, "tool call", loggerpkg.Fields{
		"name":       call.Name,
		"args":       call.Args,
		"last_title": session.LastTitle,
	})
	data, err := t.execute(session, call.Args)
	if err != nil {
		loggerpkg.Debug(r.verbose, r.logger, "tool call failed", loggerpkg.Fields{"name": call.Name, "error": err.Error()})
	}
	return marshalToolResponse(call.Name, data, err)
}

func marshalToolResponse(toolName string, data any, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: toolName,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

// stringArg reads an optional argument as trimmed text. Scalars of other
// types are formatted; missing, null and blank values report false.
func stringArg(args map[string]any, key string) (string, bool) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", false
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64, int, int64, bool:
		s = fmt.Sprint(v)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
