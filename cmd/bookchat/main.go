// Package main runs the Elo editorial assistant: a catalog self-test followed
// by an interactive chat that answers book questions through model tool calls.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/minhyannv/bookchat-go/pkg/agent"
	"github.com/minhyannv/bookchat-go/pkg/catalog"
	configpkg "github.com/minhyannv/bookchat-go/pkg/config"
	loggerpkg "github.com/minhyannv/bookchat-go/pkg/logger"
	"github.com/minhyannv/bookchat-go/pkg/model"
	"github.com/minhyannv/bookchat-go/pkg/prompt"
	"github.com/minhyannv/bookchat-go/pkg/tools"
)

// main is the program entry point.
func main() {
	config, err := parseCLIConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, config, newProvider, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// providerFactory builds the model provider selected by cfg and its cleanup func.
type providerFactory func(ctx context.Context, cfg configpkg.Config) (model.Provider, func(), error)

// run executes the self-test and, when credentials exist, the chat. It returns the exit code.
func run(ctx context.Context, cfg configpkg.Config, connect providerFactory, in io.Reader, out, errOut io.Writer) int {
	appLogger := loggerpkg.NewWriterLogger(errOut)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	loggerpkg.Debug(cfg.Verbose, appLogger, "catalog loaded", loggerpkg.Fields{
		"path":  cfg.CatalogPath,
		"books": cat.Len(),
	})

	runSelfTest(out, cat)

	if cfg.APIKey() == "" {
		_, _ = fmt.Fprintf(out, "\n[%s] API key não encontrada. Defina %s no arquivo .env.\n", cfg.Provider, cfg.APIKeyEnv())
		return 0
	}

	if connect == nil {
		connect = newProvider
	}
	provider, closeProvider, err := connect(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintln(out, describeError(cfg.Provider, err))
		return 1
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	registry := tools.New(cat, tools.WithLogger(appLogger), tools.WithVerbose(cfg.Verbose))
	loop, err := agent.New(provider, registry,
		agent.WithLogger(appLogger),
		agent.WithVerbose(cfg.Verbose),
		agent.WithMaxToolRounds(cfg.MaxToolRounds),
		agent.WithSystemPrompt(prompt.BuildSystemPrompt(cat.Titles(0))),
	)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	if err := runREPL(ctx, loop, replOptions{
		ExitWord: cfg.ExitWord,
		Verbose:  cfg.Verbose,
		Logger:   appLogger,
	}, in, out); err != nil {
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(out, describeError(cfg.Provider, err))
			return 130
		}
		loggerpkg.Error(appLogger, "chat loop failed", loggerpkg.Fields{"error": err.Error()})
		_, _ = fmt.Fprintln(out, describeError(cfg.Provider, err))
		return 1
	}
	return 0
}

// newProvider is the providerFactory for the real APIs.
func newProvider(ctx context.Context, cfg configpkg.Config) (model.Provider, func(), error) {
	switch cfg.Provider {
	case configpkg.ProviderGemini:
		p, err := model.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	case configpkg.ProviderOpenAI:
		p, err := model.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.BaseURL, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, configpkg.ProviderGemini, configpkg.ProviderOpenAI)
	}
}
