// Package agent drives the conversation between the user, the model and the catalog tools.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	loggerpkg "github.com/minhyannv/bookchat-go/pkg/logger"
	"github.com/minhyannv/bookchat-go/pkg/model"
	"github.com/minhyannv/bookchat-go/pkg/tools"
)

// Loop holds one conversation session.
type Loop struct {
	provider      model.Provider
	tools         *tools.Registry
	systemPrompt  string
	maxToolRounds int

	history []model.Turn
	session tools.Session

	logger  loggerpkg.Logger
	verbose bool
}

// New builds a Loop over provider and registry.
func New(provider model.Provider, registry *tools.Registry, opts ...Option) (*Loop, error) {
	if provider == nil {
		return nil, errors.New("provider is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	deps := loopDeps{logger: loggerpkg.NopLogger{}, maxToolRounds: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}
	if deps.maxToolRounds <= 0 {
		deps.maxToolRounds = 1
	}

	loggerpkg.Debug(deps.verbose, deps.logger, "agent loop init", loggerpkg.Fields{
		"provider":        provider.Name(),
		"tools":           len(registry.Definitions()),
		"max_tool_rounds": deps.maxToolRounds,
		"system_bytes":    len(deps.systemPrompt),
	})
	return &Loop{
		provider:      provider,
		tools:         registry,
		systemPrompt:  deps.systemPrompt,
		maxToolRounds: deps.maxToolRounds,
		logger:        deps.logger,
		verbose:       deps.verbose,
	}, nil
}

// Run processes one user input and returns the model's final text.
// On error the history and session are restored to their state before the call.
func (l *Loop) Run(ctx context.Context, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", errors.New("user input is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	previousLen := len(l.history)
	previousSession := l.session
	rollback := func() {
		l.history = l.history[:previousLen]
		l.session = previousSession
	}

	l.history = append(l.history, model.UserTurn(userInput))
	for round := 0; ; round++ {
		l.debug("model request", loggerpkg.Fields{"round": round, "turns": len(l.history)})
		resp, err := l.provider.Generate(ctx, model.Request{
			System:  l.systemPrompt,
			History: l.history,
			Tools:   l.tools.Definitions(),
		})
		if err != nil {
			rollback()
			return "", fmt.Errorf("%s: %w", l.provider.Name(), err)
		}

		if resp.ToolCall == nil {
			l.answer(resp.Text)
			l.debug("model answered", loggerpkg.Fields{"round": round, "bytes": len(resp.Text)})
			return resp.Text, nil
		}

		if round >= l.maxToolRounds {
			// Out of tool rounds: answer with whatever text came along the call.
			loggerpkg.Warn(l.logger, "tool call ignored after last tool round", loggerpkg.Fields{
				"tool":            resp.ToolCall.Name,
				"max_tool_rounds": l.maxToolRounds,
			})
			l.answer(resp.Text)
			return resp.Text, nil
		}

		call := *resp.ToolCall
		if call.ID == "" {
			call.ID = fmt.Sprintf("call_%d", len(l.history))
		}
		l.history = append(l.history, model.ToolCallTurn(call))

		result, err := l.tools.Dispatch(ctx, &l.session, call)
		if err != nil {
			rollback()
			return "", fmt.Errorf("dispatch %s: %w", call.Name, err)
		}
		l.debug("tool result", loggerpkg.Fields{"name": call.Name, "result": result})
		l.history = append(l.history, model.FunctionTurn(call, result))
	}
}

// answer records the model's final text. Empty answers are not kept since
// providers reject empty content parts on the next request.
func (l *Loop) answer(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	l.history = append(l.history, model.ModelTurn(text))
}

// Reset clears the conversation history and the session context.
func (l *Loop) Reset() {
	l.history = nil
	l.session.Reset()
}

// History returns a copy of the conversation so far.
func (l *Loop) History() []model.Turn {
	return append([]model.Turn(nil), l.history...)
}

// LastTitle reports the most recently referenced book title.
func (l *Loop) LastTitle() string {
	return l.session.LastTitle
}

func (l *Loop) debug(msg string, fields loggerpkg.Fields) {
	loggerpkg.Debug(l.verbose, l.logger, msg, fields)
}
