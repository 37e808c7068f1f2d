package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// maxLine bounds a single journal line when replaying.
const maxLine = 4 << 20

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized sale.Event. The file is synced after every Append so a
// sale is never reported as committed before it is on disk.
//
// Session identity: "<unix-timestamp>-<pid>.jsonl", so names sort in
// chronological order.
type JSONL struct {
	file      *os.File
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
	log       zerolog.Logger
}

// NewJSONL creates a session journal in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJSONL(dir string, log zerolog.Logger) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%d", now.Unix(), os.Getpid())
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: seek: %w", err)
	}
	return &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: sessionID,
		startedAt: now,
		pos:       pos,
		log:       log,
	}, nil
}

// Path returns the journal file path.
func (j *JSONL) Path() string {
	return j.file.Name()
}

// Append serializes ev as a JSON line, writes it to the file, and syncs.
// It is safe to call from multiple goroutines.
func (j *JSONL) Append(ev sale.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	lineLen := int64(len(data))
	j.pos += lineLen
	j.idx.onAppend(ev, lineOffset, lineLen)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Sales returns the latest state of every sale touched in this session.
func (j *JSONL) Sales() ([]SaleSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.idx.summaries(), nil
}

// SaleLog returns every event journaled for sale id in this session, read
// back from disk through the byte-offset index.
func (j *JSONL) SaleLog(id int) ([]sale.Event, error) {
	j.mu.Lock()
	ranges := append([]lineRange(nil), j.idx.lines[id]...)
	j.mu.Unlock()
	if len(ranges) == 0 {
		return nil, fmt.Errorf("store: sale %d not found", id)
	}

	events := make([]sale.Event, 0, len(ranges))
	for _, r := range ranges {
		buf := make([]byte, r.length)
		if _, err := j.file.ReadAt(buf, r.start); err != nil {
			return nil, fmt.Errorf("store: read sale %d: %w", id, err)
		}
		var ev sale.Event
		if err := json.Unmarshal(bytes.TrimSpace(buf), &ev); err != nil {
			j.log.Warn().Err(err).Int("sale", id).Msg("store: skipping malformed line")
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// SessionSummary returns totals for the current session.
func (j *JSONL) SessionSummary() (SessionSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	sum := SessionSummary{
		SessionID: j.sessionID,
		StartedAt: j.startedAt,
	}
	for _, s := range j.idx.summaries() {
		sum.Sales++
		switch s.Status {
		case sale.StatusCompleted:
			sum.Completed++
			sum.Revenue += s.Total
		case sale.StatusCanceled:
			sum.Canceled++
		}
	}
	return sum, nil
}

// journalFiles returns the .jsonl files in dir sorted oldest first.
func journalFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files) // timestamp-prefixed names sort chronologically
	return files, nil
}

// Replay reads every journal in dir, oldest first, and returns the latest
// snapshot of each sale ordered by id. Malformed lines are skipped.
func Replay(dir string, log zerolog.Logger) ([]*sale.Sale, error) {
	latest := make(map[int]*sale.Sale)
	err := scanDir(dir, log, func(ev sale.Event) {
		if ev.SaleID == 0 {
			return
		}
		snap := ev.Sale
		latest[ev.SaleID] = &snap
	})
	if err != nil {
		return nil, err
	}

	out := make([]*sale.Sale, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// StockMoves returns every stock movement journaled in dir, oldest first.
func StockMoves(dir string, log zerolog.Logger) ([]sale.StockMove, error) {
	var moves []sale.StockMove
	err := scanDir(dir, log, func(ev sale.Event) {
		moves = append(moves, ev.Moves...)
	})
	if err != nil {
		return nil, err
	}
	return moves, nil
}

// scanDir calls fn for every event in the journals in dir, oldest first.
func scanDir(dir string, log zerolog.Logger, fn func(sale.Event)) error {
	files, err := journalFiles(dir)
	if err != nil {
		return err
	}
	for _, name := range files {
		if err := scanFile(filepath.Join(dir, name), log, fn); err != nil {
			return err
		}
	}
	return nil
}

func scanFile(path string, log zerolog.Logger, fn func(sale.Event)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("store: open %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev sale.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			log.Warn().Err(err).Str("file", path).Int("line", lineNo).Msg("store: skipping malformed line")
			continue
		}
		fn(ev)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("store: scan %q: %w", path, err)
	}
	return nil
}

// highestSaleID returns the largest sale id journaled in path.
func highestSaleID(path string) (int, error) {
	high := 0
	err := scanFile(path, zerolog.Nop(), func(ev sale.Event) {
		if ev.SaleID > high {
			high = ev.SaleID
		}
	})
	return high, err
}

// EnforceRetention removes the oldest journal files in dir, keeping at most
// maxKeep files. If maxKeep is 0, no files are removed. Returns nil if dir
// does not exist or is empty.
//
// The newest file holding the highest sale id is never removed, even past
// maxKeep, so a replay always sees the last id handed out.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	files, err := journalFiles(dir)
	if err != nil {
		return err
	}
	toDelete := len(files) - maxKeep
	if toDelete <= 0 {
		return nil
	}

	highs := make([]int, len(files))
	for i, name := range files {
		if highs[i], err = highestSaleID(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	kept := 0
	for _, h := range highs[toDelete:] {
		kept = max(kept, h)
	}
	pinned := -1
	for i := toDelete - 1; i >= 0; i-- {
		if highs[i] > kept && (pinned < 0 || highs[i] > highs[pinned]) {
			pinned = i
		}
	}

	for i := 0; i < toDelete; i++ {
		if i == pinned {
			continue
		}
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}
