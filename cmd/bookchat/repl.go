package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/bookchat-go/pkg/logger"
	"github.com/minhyannv/bookchat-go/pkg/model"
)

// chatter is the part of agent.Loop the REPL needs.
type chatter interface {
	Run(ctx context.Context, input string) (string, error)
	Reset()
}

// replOptions configures REPL behavior.
type replOptions struct {
	ExitWord string
	Verbose  bool
	Logger   loggerpkg.Logger
}

// runREPL reads lines from in until the exit word, a quit command or EOF.
// A failed model exchange ends the session and is returned to the caller.
func runREPL(ctx context.Context, app chatter, opts replOptions, in io.Reader, out io.Writer) error {
	if app == nil {
		return fmt.Errorf("agent loop is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	exitWord := strings.TrimSpace(opts.ExitWord)
	if exitWord == "" {
		exitWord = "sair"
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", loggerpkg.Fields{"exit_word": exitWord})

	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(readCtx, in)
	printWelcome(out, exitWord)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, "Você: ")

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			line = l
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, exitWord) {
			_, _ = fmt.Fprintln(out, "Até logo!")
			return nil
		}

		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := handleCommand(input, app, out, exitWord)
			if shouldQuit {
				return nil
			}
			if handled {
				continue
			}
		}

		answer, err := app.Run(ctx, input)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Assistente: %s\n", answer)
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The goroutine exits at EOF or once ctx is done; readErr
// receives the scanner error before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

func printWelcome(out io.Writer, exitWord string) {
	_, _ = fmt.Fprintf(out, "\nBem-vindo ao Assistente Editorial Elo! Digite '%s' para encerrar.\n\n", exitWord)
}

func handleCommand(input string, app chatter, out io.Writer, exitWord string) (bool, bool) {
	cmd := strings.ToLower(input)
	switch cmd {
	case "/help", "/h":
		printHelp(out, exitWord)
		return true, false
	case "/clear", "/c":
		app.Reset()
		_, _ = fmt.Fprintln(out, "Histórico da conversa apagado.")
		return true, false
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Até logo!")
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Comando desconhecido: %s. Digite /help para ver os comandos.\n", input)
		return true, false
	}
}

func printHelp(out io.Writer, exitWord string) {
	_, _ = fmt.Fprintln(out, "Comandos:")
	_, _ = fmt.Fprintln(out, "  /help  - Mostra esta ajuda")
	_, _ = fmt.Fprintln(out, "  /clear - Apaga o histórico da conversa")
	_, _ = fmt.Fprintf(out, "  /quit  - Encerra o programa (ou digite '%s')\n", exitWord)
}

// describeError renders a loop failure for the user according to its kind.
func describeError(provider string, err error) string {
	tag := fmt.Sprintf("[ERRO %s]: %v", strings.ToUpper(provider), err)
	switch {
	case errors.Is(err, model.ErrRateLimited):
		return tag + "\n[AVISO]: Você atingiu o limite da API. Tente novamente mais tarde."
	case errors.Is(err, model.ErrAuth):
		return tag + "\n[AVISO]: A chave de API foi recusada. Verifique o arquivo .env."
	case errors.Is(err, model.ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return tag + "\n[AVISO]: Falha de rede ao falar com o modelo. Verifique sua conexão."
	case errors.Is(err, model.ErrMalformedResponse):
		return tag + "\n[AVISO]: O modelo devolveu uma resposta inesperada."
	case errors.Is(err, context.Canceled):
		return "\nConversa interrompida."
	default:
		return tag
	}
}
