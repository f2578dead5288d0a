package books

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/bookgrab/bookgrab/internal/model"
)

// Issue is the response body of one discovery API round. The API
// returns an entry for every page of the document; only the requested
// page and a handful of its neighbors carry a resolved image source.
type Issue struct {
	Page []PageEntry `json:"page"`
}

// PageEntry is one page of an issue as reported by the discovery API.
type PageEntry struct {
	// Pid is the stable page identifier.
	Pid string `json:"pid"`

	// Src is the resolved image source URL, nil until the page has
	// been requested (or resolved incidentally with a neighbor).
	Src *string `json:"src"`

	// AdditionalInfo carries the tile descriptor for pages served
	// as tile grids instead of single images.
	AdditionalInfo *AdditionalInfo `json:"additional_info,omitempty"`
}

// AdditionalInfo wraps the newspaper-specific page block.
type AdditionalInfo struct {
	NewspaperInfo *NewspaperPageInfo `json:"[NewspaperJSONPageInfo],omitempty"`
}

// NewspaperPageInfo describes the tile grid of a newspaper page.
type NewspaperPageInfo struct {
	// TileRes lists the available resolutions, ordered lowest to
	// highest. The last entry is the full-resolution geometry.
	TileRes []TileRes `json:"tileres"`

	// ScanjobCoordinates are passed through on every tile request.
	ScanjobCoordinates ScanCoordinates `json:"page_scanjob_coordinates"`
}

// TileRes is one available tile resolution.
type TileRes struct {
	H int `json:"h"`
	W int `json:"w"`
	Z int `json:"z"`
}

// ScanCoordinates are a page's scan-job coordinates.
type ScanCoordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParseIssue decodes a discovery API response body.
func ParseIssue(data []byte) (*Issue, error) {
	var issue Issue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, fmt.Errorf("%w: discovery response: %v", ErrParse, err)
	}
	return &issue, nil
}

// TileGeometry returns the full-resolution tile geometry for the
// entry, or nil when the page is not served as tiles. The signing
// token is taken from the sig query parameter of the resolved source.
func (p *PageEntry) TileGeometry() *model.TileGeometry {
	if p.Src == nil || p.AdditionalInfo == nil || p.AdditionalInfo.NewspaperInfo == nil {
		return nil
	}
	info := p.AdditionalInfo.NewspaperInfo
	if len(info.TileRes) == 0 {
		return nil
	}

	src, err := url.Parse(*p.Src)
	if err != nil {
		return nil
	}
	sig := src.Query().Get("sig")
	if sig == "" {
		return nil
	}

	full := info.TileRes[len(info.TileRes)-1]
	return &model.TileGeometry{
		Width:  full.W,
		Height: full.H,
		Zoom:   full.Z,
		X:      info.ScanjobCoordinates.X,
		Y:      info.ScanjobCoordinates.Y,
		Sig:    sig,
	}
}

// ResolvedPage is a page whose image source has been resolved,
// handed to the acquisition callback exactly once.
type ResolvedPage struct {
	// Pid is the page identifier.
	Pid string

	// Seq is the 1-based sequence number assigned in
	// first-discovery order.
	Seq int

	// Src is the resolved image source URL.
	Src string

	// Entry is the full discovery entry, for tile geometry.
	Entry PageEntry
}

// BatchFunc fetches one discovery round for the page pid, with
// firstPage as the lpg context parameter.
type BatchFunc func(ctx context.Context, firstPage, pid string) (*Issue, error)

// PageHandler acquires the image of one resolved page.
type PageHandler func(ctx context.Context, page ResolvedPage) error

// Engine drives the multi-round page discovery protocol.
//
// The seed round reveals the document's pages indirectly: every entry
// without a resolved source is a page that still must be requested.
// The drain loop then requests pages one at a time; each response may
// also resolve neighboring pages, which are consumed immediately so
// no pid is ever fetched twice.
type Engine struct {
	queue     []string
	done      map[string]struct{}
	seq       map[string]int
	firstPage string
	nextSeq   int
	logger    *slog.Logger
}

// NewEngine returns an engine ready for seeding.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		done:      make(map[string]struct{}),
		seq:       make(map[string]int),
		firstPage: "1",
		nextSeq:   1,
		logger:    logger,
	}
}

// Seed numbers the pages of the seed-round response and fills the
// work queue. Entries that already carry a source are not enqueued;
// the pid with sequence number 1 becomes the lpg context value for
// every subsequent discovery round.
func (e *Engine) Seed(issue *Issue) {
	for _, page := range issue.Page {
		if page.Src != nil {
			continue
		}
		if _, seen := e.seq[page.Pid]; seen {
			continue
		}
		e.seq[page.Pid] = e.nextSeq
		if e.nextSeq == 1 {
			e.firstPage = page.Pid
		}
		e.nextSeq++
		e.queue = append(e.queue, page.Pid)
	}
}

// FirstPage returns the lpg context value chosen during seeding.
func (e *Engine) FirstPage() string {
	return e.firstPage
}

// PageCount returns the number of pages discovered so far.
func (e *Engine) PageCount() int {
	return e.nextSeq - 1
}

// Sequence returns the sequence number for pid, assigning the next
// free number when the pid was never seen in the seed round. Pages
// numbered this way land after every known page, which may not match
// their true position; the discovery API gives no better signal.
func (e *Engine) Sequence(pid string) int {
	if n, ok := e.seq[pid]; ok {
		return n
	}
	n := e.nextSeq
	e.nextSeq++
	e.seq[pid] = n
	e.logger.Warn("page missing from seed round, appending", "pid", pid, "seq", n)
	return n
}

// Run drains the work queue. For each queued pid one discovery round
// is fetched, and every entry of the response that now carries a
// source and has not been handled yet is passed to handle and marked
// done. The completed set guarantees each pid is handled at most once
// no matter how many batches it reappears in.
func (e *Engine) Run(ctx context.Context, fetch BatchFunc, handle PageHandler) error {
	for len(e.queue) > 0 {
		pid := e.queue[0]
		e.queue = e.queue[1:]
		if _, ok := e.done[pid]; ok {
			continue
		}

		issue, err := fetch(ctx, e.firstPage, pid)
		if err != nil {
			return fmt.Errorf("discovering page %s: %w", pid, err)
		}

		for _, page := range issue.Page {
			if page.Src == nil {
				continue
			}
			if _, ok := e.done[page.Pid]; ok {
				continue
			}

			resolved := ResolvedPage{
				Pid:   page.Pid,
				Seq:   e.Sequence(page.Pid),
				Src:   *page.Src,
				Entry: page,
			}
			if err := handle(ctx, resolved); err != nil {
				return fmt.Errorf("acquiring page %s: %w", page.Pid, err)
			}
			e.done[page.Pid] = struct{}{}
		}
	}
	return nil
}
