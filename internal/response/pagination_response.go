package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page of pageSize items out of totalItems. From and
// To are 1-based and both zero when the page is empty.
func NewPagination(page, pageSize, totalItems int) *Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(totalPages),
		TotalItems: int64(totalItems),
		HasMore:    page < totalPages,
	}
	if totalItems == 0 || pageSize <= 0 {
		return p
	}

	p.From = (page-1)*pageSize + 1
	p.To = page * pageSize
	if p.To > totalItems {
		p.To = totalItems
	}
	if p.From > totalItems {
		p.From, p.To = 0, 0
	}
	return p
}
