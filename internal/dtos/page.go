package dtos

import "fmt"

// Page is the paginated listing envelope returned by the jobs index endpoint.
type Page struct {
	CurrentPage  int     `json:"current_page"`
	Data         any     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         int     `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           int     `json:"to"`
	Total        int64   `json:"total"`
}

func NewPage(data any, count int, total int64, perPage, currentPage int, path string) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (currentPage-1)*perPage + 1
		to = from + count - 1
	}

	pageURL := func(n int) string { return fmt.Sprintf("%s?page=%d", path, n) }

	page := Page{
		CurrentPage:  currentPage,
		Data:         data,
		FirstPageURL: pageURL(1),
		From:         from,
		LastPage:     lastPage,
		LastPageURL:  pageURL(lastPage),
		Path:         path,
		PerPage:      perPage,
		To:           to,
		Total:        total,
	}
	if currentPage < lastPage {
		next := pageURL(currentPage + 1)
		page.NextPageURL = &next
	}
	if currentPage > 1 {
		prev := pageURL(currentPage - 1)
		page.PrevPageURL = &prev
	}
	return page
}
