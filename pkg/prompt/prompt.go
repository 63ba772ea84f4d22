// Package prompt assembles the system instruction sent with every model request.
package prompt

import (
	"fmt"
	"strings"
)

// maxListedTitles bounds how many titles are embedded in the instruction.
const maxListedTitles = 50

// BuildSystemPrompt constructs the assistant instruction, including the known catalog titles.
func BuildSystemPrompt(titles []string) string {
	var sb strings.Builder
	sb.WriteString("Você é o Assistente Editorial Elo, que responde perguntas sobre o catálogo de livros da editora.")
	sb.WriteString("\nUse get_book_details para autor, selo, data de lançamento e sinopse.")
	sb.WriteString("\nUse find_stores_selling_book para onde comprar; sem cidade, informe as lojas online.")
	sb.WriteString("\nResponda em português e não invente livros que não estão no catálogo.")

	if md := TitlesMarkdown(titles); md != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md)
	}
	return strings.TrimSpace(sb.String())
}

// TitlesMarkdown renders a markdown listing of catalog titles.
func TitlesMarkdown(titles []string) string {
	if len(titles) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## Catálogo\n")
	listed := 0
	for _, title := range titles {
		title = sanitizeMarkdown(title)
		if title == "" {
			continue
		}
		if listed == maxListedTitles {
			sb.WriteString(fmt.Sprintf("- ... e mais %d título(s)\n", len(titles)-listed))
			break
		}
		sb.WriteString(fmt.Sprintf("- %s\n", title))
		listed++
	}
	if listed == 0 {
		return ""
	}
	return strings.TrimSpace(sb.String())
}

// sanitizeMarkdown keeps markdown fields single-line and trimmed.
func sanitizeMarkdown(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.TrimSpace(value)
}
