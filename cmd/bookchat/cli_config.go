package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/bookchat-go/pkg/config"
)

// parseCLIConfig loads env + flags into runtime config.
func parseCLIConfig(args []string, errOut io.Writer) (configpkg.Config, error) {
	_ = godotenv.Load()

	defaults := configpkg.DefaultConfig()
	if v := strings.TrimSpace(os.Getenv("BOOKCHAT_PROVIDER")); v != "" {
		defaults.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("BOOKCHAT_CATALOG")); v != "" {
		defaults.CatalogPath = v
	}

	fs := flag.NewFlagSet("bookchat", flag.ContinueOnError)
	fs.SetOutput(errOut)
	catalogPath := fs.String("catalog", defaults.CatalogPath, "Path to the book catalog (.json, .yaml or .yml)")
	provider := fs.String("provider", defaults.Provider, "Model provider: gemini or openai")
	model := fs.String("model", strings.TrimSpace(os.Getenv("BOOKCHAT_MODEL")), "Model name (empty = provider default)")
	maxToolRounds := fs.Int("max_tool_rounds", defaults.MaxToolRounds, "Tool calls served per user message before the model must answer")
	exitWord := fs.String("exit_word", defaults.ExitWord, "Word that ends the chat (case-insensitive)")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose turn and tool-call logging")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}

	cfg := defaults
	cfg.CatalogPath = *catalogPath
	cfg.Provider = *provider
	cfg.Model = *model
	cfg.MaxToolRounds = *maxToolRounds
	cfg.ExitWord = *exitWord
	cfg.Verbose = *verbose
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
	return configpkg.Normalize(cfg), nil
}
