package app

// PageCursor addresses one page of the history listing.
type PageCursor struct {
	Index int // zero-based page index
	Size  int // records per page, > 0
}

// TotalPages returns how many pages the given record count spans.
func (c PageCursor) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + c.Size - 1) / c.Size
}

// Clamp moves the cursor back into [0, lastPage] for the given record
// count. A store that shrank below the current page must show the last
// valid page, never an empty one.
func (c *PageCursor) Clamp(total int) {
	if c.Index < 0 {
		c.Index = 0
	}
	last := c.TotalPages(total) - 1
	if last < 0 {
		last = 0
	}
	if c.Index > last {
		c.Index = last
	}
}

// Offset returns the record offset of the cursor's page.
func (c PageCursor) Offset() int {
	return c.Index * c.Size
}

// HasNext reports whether a page exists after the cursor for the given
// record count.
func (c PageCursor) HasNext(total int) bool {
	return c.Index+1 < c.TotalPages(total)
}
