package catalog

import "strings"

// BookDetails is the descriptive part of a Book, without availability.
type BookDetails struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Imprint     string `json:"imprint"`
	ReleaseDate string `json:"release_date"`
	Synopsis    string `json:"synopsis"`
}

// find returns the first book whose title matches case-insensitively.
func (c *Catalog) find(title string) (*Book, bool) {
	if c == nil {
		return nil, false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}
	for i := range c.books {
		if strings.EqualFold(c.books[i].Title, title) {
			return &c.books[i], true
		}
	}
	return nil, false
}

// GetBookDetails looks a book up by exact title, ignoring case.
func (c *Catalog) GetBookDetails(title string) (BookDetails, bool) {
	book, ok := c.find(title)
	if !ok {
		return BookDetails{}, false
	}
	return BookDetails{
		Title:       book.Title,
		Author:      book.Author,
		Imprint:     book.Imprint,
		ReleaseDate: book.ReleaseDate,
		Synopsis:    book.Synopsis,
	}, true
}

// FindStoresSellingBook returns the stores carrying a book in location.
// When location is empty or unknown for the book, the online stores are returned.
// The bool reports whether the book exists; a known book may still have no stores.
func (c *Catalog) FindStoresSellingBook(title, location string) ([]string, bool) {
	book, ok := c.find(title)
	if !ok {
		return []string{}, false
	}
	location = strings.TrimSpace(location)
	if location != "" {
		if stores, ok := book.Availability[location]; ok {
			return copyStores(stores), true
		}
	}
	if stores, ok := book.Availability[OnlineLocation]; ok {
		return copyStores(stores), true
	}
	return []string{}, true
}

func copyStores(stores []string) []string {
	out := make([]string, len(stores))
	copy(out, stores)
	return out
}
