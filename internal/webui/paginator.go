package webui

import "fmt"

// Paginator adapts the API's paginated listing envelope for the index view's
// pagination widget.
type Paginator struct {
	Items       []any
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	Path        string
}

// NewPaginator wraps the decoded API payload, tolerating missing fields the
// same way the index page tolerates an empty listing.
func NewPaginator(payload any, path string) Paginator {
	p := Paginator{CurrentPage: 1, LastPage: 1, PerPage: 20, Path: path}

	doc, ok := payload.(map[string]any)
	if !ok {
		return p
	}

	if data, ok := doc["data"].([]any); ok {
		p.Items = data
	}
	p.Total = asInt(doc["total"], 0)
	p.PerPage = asInt(doc["per_page"], 20)
	p.CurrentPage = asInt(doc["current_page"], 1)
	p.LastPage = asInt(doc["last_page"], 1)
	if p.LastPage < 1 {
		p.LastPage = 1
	}
	return p
}

func asInt(value any, def int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func (p Paginator) IsEmpty() bool {
	return len(p.Items) == 0
}

func (p Paginator) HasPages() bool {
	return p.LastPage > 1
}

func (p Paginator) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Paginator) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

func (p Paginator) URL(page int) string {
	return fmt.Sprintf("%s?page=%d", p.Path, page)
}

func (p Paginator) PrevURL() string {
	return p.URL(p.CurrentPage - 1)
}

func (p Paginator) NextURL() string {
	return p.URL(p.CurrentPage + 1)
}

type PageLink struct {
	Number int
	URL    string
	Active bool
}

// Pages lists the page links to render, one per page. Listings here are small
// enough that a windowed widget isn't worth it.
func (p Paginator) Pages() []PageLink {
	links := make([]PageLink, 0, p.LastPage)
	for n := 1; n <= p.LastPage; n++ {
		links = append(links, PageLink{Number: n, URL: p.URL(n), Active: n == p.CurrentPage})
	}
	return links
}
