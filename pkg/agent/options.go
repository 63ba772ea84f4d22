package agent

import loggerpkg "github.com/minhyannv/bookchat-go/pkg/logger"

// Option configures optional runtime dependencies for Loop.
type Option func(*loopDeps)

type loopDeps struct {
	logger        loggerpkg.Logger
	systemPrompt  string
	maxToolRounds int
	verbose       bool
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *loopDeps) {
		d.logger = l
	}
}

// WithSystemPrompt sets the instruction sent with every request.
func WithSystemPrompt(p string) Option {
	return func(d *loopDeps) {
		d.systemPrompt = p
	}
}

// WithMaxToolRounds bounds how many tool calls are served before the model
// must answer with text. Values below 1 are treated as 1.
func WithMaxToolRounds(n int) Option {
	return func(d *loopDeps) {
		d.maxToolRounds = n
	}
}

// WithVerbose enables debug logging of each turn.
func WithVerbose(v bool) Option {
	return func(d *loopDeps) {
		d.verbose = v
	}
}
