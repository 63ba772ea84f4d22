package tools

import (
	"errors"

	"github.com/minhyannv/bookchat-go/pkg/catalog"
	"github.com/minhyannv/bookchat-go/pkg/model"
)

const (
	GetBookDetailsName        = "get_book_details"
	FindStoresSellingBookName = "find_stores_selling_book"
)

var errTitleRequired = errors.New("book_title is required")

type bookDetailsTool struct {
	catalog *catalog.Catalog
}

func (t *bookDetailsTool) name() string {
	return GetBookDetailsName
}

func (t *bookDetailsTool) definition() model.ToolDefinition {
	return model.ToolDefinition{
		Name:        GetBookDetailsName,
		Description: "Obter detalhes de um livro pelo título.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"book_title": map[string]any{
					"type":        "string",
					"description": "Título do livro",
				},
			},
			"required": []string{"book_title"},
		},
	}
}

type bookDetailsResult struct {
	Found bool                 `json:"found"`
	Book  *catalog.BookDetails `json:"book"`
}

func (t *bookDetailsTool) execute(session *Session, args map[string]any) (any, error) {
	title, ok := stringArg(args, "book_title")
	if !ok {
		return nil, errTitleRequired
	}
	session.LastTitle = title

	details, found := t.catalog.GetBookDetails(title)
	if !found {
		return bookDetailsResult{Found: false}, nil
	}
	return bookDetailsResult{Found: true, Book: &details}, nil
}

type storesTool struct {
	catalog *catalog.Catalog
}

func (t *storesTool) name() string {
	return FindStoresSellingBookName
}

func (t *storesTool) definition() model.ToolDefinition {
	return model.ToolDefinition{
		Name:        FindStoresSellingBookName,
		Description: "Encontrar livrarias que vendem o livro, pelo título e cidade (opcional). Se a cidade não for informada, retornar lojas online.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"book_title": map[string]any{
					"type":        "string",
					"description": "Título do livro",
				},
				"city": map[string]any{
					"type":        "string",
					"description": "Nome da cidade",
				},
			},
			"required": []string{"book_title"},
		},
	}
}

type storesResult struct {
	BookTitle string   `json:"book_title"`
	City      string   `json:"city,omitempty"`
	Found     bool     `json:"found"`
	Stores    []string `json:"stores"`
}

func (t *storesTool) execute(session *Session, args map[string]any) (any, error) {
	title, ok := stringArg(args, "book_title")
	if !ok {
		title = session.LastTitle
	}
	if title == "" {
		return nil, errTitleRequired
	}
	session.LastTitle = title

	city, _ := stringArg(args, "city")
	stores, found := t.catalog.FindStoresSellingBook(title, city)
	return storesResult{
		BookTitle: title,
		City:      city,
		Found:     found,
		Stores:    stores,
	}, nil
}
