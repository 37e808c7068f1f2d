package store

import "github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"

// lineRange is the [start, start+length) byte range of one journal line.
type lineRange struct {
	start  int64
	length int64
}

// fileIndex keeps byte-offset bookmarks for every line of each sale so that
// SaleLog can read them back with file.ReadAt instead of scanning the file.
type fileIndex struct {
	order  []int               // sale ids in first-seen order
	lines  map[int][]lineRange // sale id → journal lines
	latest map[int]SaleSummary // sale id → latest state
}

func newFileIndex() *fileIndex {
	return &fileIndex{
		lines:  make(map[int][]lineRange),
		latest: make(map[int]SaleSummary),
	}
}

// onAppend records a line that has just been written.
func (idx *fileIndex) onAppend(ev sale.Event, lineOffset, lineLen int64) {
	if _, seen := idx.lines[ev.SaleID]; !seen {
		idx.order = append(idx.order, ev.SaleID)
	}
	idx.lines[ev.SaleID] = append(idx.lines[ev.SaleID], lineRange{start: lineOffset, length: lineLen})

	s := idx.latest[ev.SaleID]
	s.ID = ev.SaleID
	s.Status = ev.Sale.Status
	s.Items = len(ev.Sale.Items)
	s.Total = ev.Sale.Total
	s.Events++
	s.LastAt = ev.Timestamp
	idx.latest[ev.SaleID] = s
}

// summaries returns the latest state of every sale in first-seen order.
func (idx *fileIndex) summaries() []SaleSummary {
	out := make([]SaleSummary, len(idx.order))
	for i, id := range idx.order {
		out[i] = idx.latest[id]
	}
	return out
}
