// Tests for catalog loading and title lookups.
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const abelhaJSON = `{"books":[{"title":"A Abelha","author":"X","imprint":"Y","release_date":"2020","synopsis":"S","availability":{"São Paulo":["Livraria A"],"Online":["LojaX"]}}]}`

func mustParse(t *testing.T, doc string) *Catalog {
	t.Helper()
	cat, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cat
}

// TestAbelhaEndToEnd covers the documented sample catalog.
func TestAbelhaEndToEnd(t *testing.T) {
	cat := mustParse(t, abelhaJSON)

	details, ok := cat.GetBookDetails("a abelha")
	if !ok {
		t.Fatal("expected book to be found")
	}
	want := BookDetails{Title: "A Abelha", Author: "X", Imprint: "Y", ReleaseDate: "2020", Synopsis: "S"}
	if details != want {
		t.Fatalf("unexpected details: %+v", details)
	}

	stores, found := cat.FindStoresSellingBook("A Abelha", "São Paulo")
	if !found || !reflect.DeepEqual(stores, []string{"Livraria A"}) {
		t.Fatalf("unexpected São Paulo stores: %v found=%v", stores, found)
	}

	stores, found = cat.FindStoresSellingBook("A Abelha", "")
	if !found || !reflect.DeepEqual(stores, []string{"LojaX"}) {
		t.Fatalf("unexpected online stores: %v found=%v", stores, found)
	}
}

func TestGetBookDetailsAnyCase(t *testing.T) {
	cat := New([]Book{
		{Title: "Dom Casmurro", Author: "Machado de Assis"},
		{Title: "Grande Sertão: Veredas", Author: "Guimarães Rosa"},
	})
	for _, title := range []string{"dom casmurro", "DOM CASMURRO", "Dom Casmurro", "  dom casmurro "} {
		details, ok := cat.GetBookDetails(title)
		if !ok || details.Author != "Machado de Assis" {
			t.Fatalf("lookup %q: got %+v ok=%v", title, details, ok)
		}
	}
	if _, ok := cat.GetBookDetails("grande sertão: veredas"); !ok {
		t.Fatal("expected accented title to match case-insensitively")
	}
}

func TestGetBookDetailsTrimsOnlyQuery(t *testing.T) {
	cat := New([]Book{{Title: " A Abelha", Author: "padded"}, {Title: "A Abelha", Author: "X"}})

	details, ok := cat.GetBookDetails(" a abelha ")
	if !ok || details.Author != "X" {
		t.Fatalf("expected exact stored title to match trimmed query, got %+v ok=%v", details, ok)
	}

	padded := New([]Book{{Title: " A Abelha"}})
	if _, ok := padded.GetBookDetails("A Abelha"); ok {
		t.Fatal("stored title with surrounding spaces must not match")
	}
	if _, ok := padded.FindStoresSellingBook("A Abelha", ""); ok {
		t.Fatal("stored title with surrounding spaces must not match store lookups")
	}
}

func TestGetBookDetailsNoPartialMatch(t *testing.T) {
	cat := mustParse(t, abelhaJSON)
	for _, title := range []string{"Abelha", "A Abelha 2", "", "A"} {
		if _, ok := cat.GetBookDetails(title); ok {
			t.Fatalf("expected %q to be not found", title)
		}
	}
}

func TestGetBookDetailsFirstMatchWins(t *testing.T) {
	cat := New([]Book{
		{Title: "Duplicado", Author: "first"},
		{Title: "duplicado", Author: "second"},
	})
	details, ok := cat.GetBookDetails("DUPLICADO")
	if !ok || details.Author != "first" {
		t.Fatalf("expected first match, got %+v", details)
	}
}

func TestFindStoresSellingBook(t *testing.T) {
	cat := New([]Book{
		{Title: "Com Cidade", Availability: map[string][]string{
			"Rio de Janeiro": {"Livraria R1", "Livraria R2"},
			OnlineLocation:   {"LojaOnline"},
		}},
		{Title: "Só Física", Availability: map[string][]string{
			"Recife": {"Livraria Recife"},
		}},
		{Title: "Sem Lojas"},
	})

	tests := []struct {
		name      string
		title     string
		location  string
		want      []string
		wantFound bool
	}{
		{"location present", "com cidade", "Rio de Janeiro", []string{"Livraria R1", "Livraria R2"}, true},
		{"location absent falls back to online", "Com Cidade", "Curitiba", []string{"LojaOnline"}, true},
		{"no location uses online", "Com Cidade", "", []string{"LojaOnline"}, true},
		{"no location and no online", "Só Física", "", []string{}, true},
		{"unknown location and no online", "Só Física", "Natal", []string{}, true},
		{"nil availability", "Sem Lojas", "Recife", []string{}, true},
		{"book absent", "Inexistente", "Recife", []string{}, false},
		{"book absent without location", "Inexistente", "", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := cat.FindStoresSellingBook(tt.title, tt.location)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("stores = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFindStoresReturnsCopy(t *testing.T) {
	cat := mustParse(t, abelhaJSON)
	stores, _ := cat.FindStoresSellingBook("A Abelha", "São Paulo")
	stores[0] = "mutated"
	again, _ := cat.FindStoresSellingBook("A Abelha", "São Paulo")
	if again[0] != "Livraria A" {
		t.Fatalf("catalog was mutated through returned slice: %v", again)
	}
}

func TestLoadJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(jsonPath, []byte(abelhaJSON), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	yamlPath := filepath.Join(dir, "catalog.yaml")
	yamlDoc := `books:
  - title: A Abelha
    author: X
    imprint: Y
    release_date: "2020"
    synopsis: S
    availability:
      São Paulo: [Livraria A]
      Online: [LojaX]
`
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		cat, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if cat.Len() != 1 {
			t.Fatalf("Load(%s): expected 1 book, got %d", path, cat.Len())
		}
		stores, _ := cat.FindStoresSellingBook("a abelha", "São Paulo")
		if !reflect.DeepEqual(stores, []string{"Livraria A"}) {
			t.Fatalf("Load(%s): unexpected stores %v", path, stores)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}

	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"books": [`), 0o644); err != nil {
		t.Fatalf("write bad json: %v", err)
	}
	_, err = Load(badPath)
	if !errors.Is(err, ErrCatalogParse) {
		t.Fatalf("expected ErrCatalogParse, got %v", err)
	}
}

func TestTitles(t *testing.T) {
	cat := New([]Book{{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}, {Title: "5"}, {Title: "6"}})
	if got := cat.Titles(5); !reflect.DeepEqual(got, []string{"1", "2", "3", "4", "5"}) {
		t.Fatalf("unexpected titles: %v", got)
	}
	if got := cat.Titles(0); len(got) != 6 {
		t.Fatalf("expected all titles, got %v", got)
	}
	if got := New(nil).Titles(5); len(got) != 0 {
		t.Fatalf("expected no titles, got %v", got)
	}
}
