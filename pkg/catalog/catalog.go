// Package catalog loads the book catalog and answers title lookups over it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OnlineLocation is the reserved availability key for online stores.
const OnlineLocation = "Online"

var (
	// ErrCatalogNotFound is returned when the catalog file does not exist.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrCatalogParse is returned when the catalog document is malformed.
	ErrCatalogParse = errors.New("catalog parse error")
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Book is one catalog record.
type Book struct {
	Title        string              `json:"title" yaml:"title"`
	Author       string              `json:"author" yaml:"author"`
	Imprint      string              `json:"imprint" yaml:"imprint"`
	ReleaseDate  string              `json:"release_date" yaml:"release_date"`
	Synopsis     string              `json:"synopsis" yaml:"synopsis"`
	Availability map[string][]string `json:"availability" yaml:"availability"`
}

// document mirrors the on-disk layout: a single top-level "books" array.
type document struct {
	Books []Book `json:"books" yaml:"books"`
}

// Catalog is the in-memory, read-only collection of books.
type Catalog struct {
	books []Book
}

// New builds a catalog from already decoded books.
func New(books []Book) *Catalog {
	return &Catalog{books: append([]Book(nil), books...)}
}

// Load reads and parses the catalog file at path.
// The format is chosen from the file extension; anything but .yaml/.yml is read as JSON.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrCatalogNotFound, path, err)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// FormatFromPath picks the catalog format for a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a catalog document.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON, "":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrCatalogParse, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogParse, err)
	}
	return &Catalog{books: doc.Books}, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.books)
}

// Titles returns up to n titles in file order. n <= 0 returns all of them.
func (c *Catalog) Titles(n int) []string {
	if c == nil {
		return nil
	}
	if n <= 0 || n > len(c.books) {
		n = len(c.books)
	}
	out := make([]string, 0, n)
	for _, b := range c.books[:n] {
		out = append(out, b.Title)
	}
	return out
}
