package tui

import (
	"sync"

	"alpr_gateway/internal/historybrowser"
)

// page is what the screen shows for the last successful load.
type page struct {
	rows       []historybrowser.HistoryRow
	summary    string
	pagination historybrowser.Pagination
}

// pageView is the historybrowser.View the browser renders into. Loads run
// inside tea commands, so the model reads it back through snapshot.
type pageView struct {
	mu   sync.Mutex
	page page
}

func (v *pageView) RenderRows(rows []historybrowser.HistoryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page.rows = rows
}

func (v *pageView) SetSummary(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page.summary = s
}

func (v *pageView) SetPagination(p historybrowser.Pagination) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page.pagination = p
}

func (v *pageView) snapshot() page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}
