package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/minhyannv/bookchat-go/pkg/catalog"
)

const (
	sampleTitle  = "A Abelha"
	sampleCity   = "São Paulo"
	listedTitles = 5
)

// runSelfTest prints the catalog size, the first titles and sample lookups.
func runSelfTest(out io.Writer, cat *catalog.Catalog) {
	_, _ = fmt.Fprintf(out, "Total de livros encontrados: %d\n", cat.Len())
	for _, title := range cat.Titles(listedTitles) {
		_, _ = fmt.Fprintf(out, "- %s\n", title)
	}

	_, _ = fmt.Fprintln(out, "\n--- Teste buscar detalhes do livro ---")
	if details, ok := cat.GetBookDetails(sampleTitle); ok {
		_, _ = fmt.Fprintln(out, toJSON(details))
	} else {
		_, _ = fmt.Fprintf(out, "livro não encontrado: %s\n", sampleTitle)
	}

	_, _ = fmt.Fprintf(out, "\n--- Teste buscar lojas (%s) ---\n", sampleCity)
	stores, _ := cat.FindStoresSellingBook(sampleTitle, sampleCity)
	_, _ = fmt.Fprintln(out, toJSON(stores))

	_, _ = fmt.Fprintln(out, "\n--- Teste buscar lojas (Online) ---")
	stores, _ = cat.FindStoresSellingBook(sampleTitle, "")
	_, _ = fmt.Fprintln(out, toJSON(stores))
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
