package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/bookgrab/bookgrab/internal/archive"
	"github.com/bookgrab/bookgrab/internal/assemble"
	"github.com/bookgrab/bookgrab/internal/books"
	"github.com/bookgrab/bookgrab/internal/config"
	"github.com/bookgrab/bookgrab/internal/fsutil"
	"github.com/bookgrab/bookgrab/internal/imaging"
	"github.com/bookgrab/bookgrab/internal/model"
	"github.com/bookgrab/bookgrab/internal/transport"
)

// Status is the outcome of one issue download.
type Status int

const (
	// StatusComplete means the issue was downloaded and assembled.
	StatusComplete Status = iota

	// StatusSkipped means the issue had already been downloaded,
	// either per the archive ledger or per its output files on disk.
	StatusSkipped
)

func (s Status) String() string {
	if s == StatusSkipped {
		return "skipped"
	}
	return "complete"
}

// Result reports the outcome of one issue download. Meta is nil when
// the issue was skipped before its landing page was fetched.
type Result struct {
	Status Status
	Meta   *model.BookMetadata
}

// manifest holds the per-issue output paths derived from metadata.
type manifest struct {
	imageDir string
	pdfPath  string
	cbzPath  string
}

// Manager coordinates issue downloads.
type Manager struct {
	settings *config.Settings
	formats  model.FormatSet
	client   *transport.Client
	archive  *archive.Archive
	logger   *slog.Logger
}

// NewManager creates a download Manager. The archive ledger must
// already be loaded; the client carries the retry policy used for
// every network fetch.
func NewManager(settings *config.Settings, client *transport.Client, arch *archive.Archive, logger *slog.Logger) (*Manager, error) {
	formats, err := settings.FormatSet()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		settings: settings,
		formats:  formats,
		client:   client,
		archive:  arch,
		logger:   logger,
	}, nil
}

// DownloadIssue downloads the single issue at the given address and
// assembles the requested output formats.
//
// Issues recorded in the archive ledger are skipped before any
// network I/O. Output formats already present on disk are not
// regenerated; when nothing is left to produce the issue is skipped
// after the landing-page fetch needed to derive its output paths.
func (m *Manager) DownloadIssue(ctx context.Context, rawURL string) (*Result, error) {
	id, err := books.ResolveID(rawURL)
	if err != nil {
		return nil, err
	}

	if m.archive.Contains(id) {
		m.logger.Info("skipping already downloaded issue", "id", id)
		return &Result{Status: StatusSkipped}, nil
	}

	m.logger.Info("identifying issue", "id", id)

	body, err := m.client.GetString(ctx, books.CanonicalURL(id))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing landing page for %s: %w", id, err)
	}

	meta, err := books.ExtractMetadata(id, doc)
	if err != nil {
		return nil, err
	}
	m.logger.Info("found issue", "title", meta.FullTitle(), "type", meta.Type.String())

	paths := m.buildManifest(meta)

	// Formats already on disk are not regenerated.
	formats := m.formats.Clone()
	if fsutil.FileExists(paths.pdfPath) {
		formats.Remove(model.FormatPDF)
	}
	if fsutil.FileExists(paths.cbzPath) {
		formats.Remove(model.FormatCBZ)
	}
	if formats.Empty() {
		m.logger.Info("all requested formats already exist", "id", id)
		return &Result{Status: StatusSkipped, Meta: meta}, nil
	}

	titles := books.ExtractTOC(doc)
	if len(titles) > 0 {
		m.logger.Info("parsed table of contents", "entries", len(titles))
	}

	seed, err := m.fetchBatch(ctx, id, "1", "1")
	if err != nil {
		return nil, err
	}
	engine := books.NewEngine(m.logger)
	engine.Seed(seed)
	m.logger.Info("discovered pages", "id", id, "count", engine.PageCount())

	if m.settings.SkipImageDownload {
		return &Result{Status: StatusComplete, Meta: meta}, nil
	}

	imageDirExisted := fsutil.DirExists(paths.imageDir)
	if err := fsutil.EnsureDir(paths.imageDir); err != nil {
		return nil, err
	}

	toc := model.NewTableOfContents()
	handle := func(ctx context.Context, page books.ResolvedPage) error {
		return m.acquirePage(ctx, id, paths.imageDir, page, titles, toc)
	}
	fetch := func(ctx context.Context, firstPage, pid string) (*books.Issue, error) {
		return m.fetchBatch(ctx, id, firstPage, pid)
	}
	if err := engine.Run(ctx, fetch, handle); err != nil {
		return nil, err
	}

	if formats.Contains(model.FormatPDF) {
		m.logger.Info("generating PDF", "path", paths.pdfPath)
		if err := assemble.WritePDF(paths.imageDir, paths.pdfPath, toc, m.logger); err != nil {
			return nil, err
		}
	}
	if formats.Contains(model.FormatCBZ) {
		m.logger.Info("generating CBZ", "path", paths.cbzPath)
		if err := assemble.WriteCBZ(paths.imageDir, paths.cbzPath); err != nil {
			return nil, err
		}
	}

	// A directory that existed before this run may hold images the
	// user wants kept, so only freshly created ones are cleaned up.
	if !m.settings.KeepImages && !imageDirExisted {
		if err := os.RemoveAll(paths.imageDir); err != nil {
			return nil, err
		}
	}

	if err := m.archive.Record(id); err != nil {
		m.logger.Warn("recording completed issue failed", "id", id, "error", err)
	}

	return &Result{Status: StatusComplete, Meta: meta}, nil
}

// DownloadPeriod downloads every issue in the selected period of the
// page at the given address. Per-issue failures are reported and do
// not abort the remaining issues; issues run through a worker pool
// bounded by the configured concurrency.
func (m *Manager) DownloadPeriod(ctx context.Context, rawURL string) error {
	doc, err := m.fetchDocument(ctx, rawURL)
	if err != nil {
		return err
	}

	issueURLs := books.IssueURLs(doc)
	m.logger.Info("found issues in period", "url", rawURL, "count", len(issueURLs))

	g, ctx := errgroup.WithContext(ctx)
	limit := m.settings.MaxConcurrentIssues
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, issueURL := range issueURLs {
		g.Go(func() error {
			if _, err := m.DownloadIssue(ctx, issueURL); err != nil {
				m.logger.Error("issue download failed", "url", issueURL, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// DownloadSeries downloads every issue of every period of the series
// the given address belongs to. Per-period failures are reported and
// do not abort the remaining periods.
func (m *Manager) DownloadSeries(ctx context.Context, rawURL string) error {
	doc, err := m.fetchDocument(ctx, rawURL)
	if err != nil {
		return err
	}

	periodURLs := books.PeriodURLs(doc, rawURL)
	m.logger.Info("found periods in series", "url", rawURL, "count", len(periodURLs))

	for _, periodURL := range periodURLs {
		if err := m.DownloadPeriod(ctx, periodURL); err != nil {
			m.logger.Error("period download failed", "url", periodURL, "error", err)
		}
	}
	return nil
}

// buildManifest derives the issue's output paths. Periodical issues
// are filed under a directory named after their series.
func (m *Manager) buildManifest(meta *model.BookMetadata) manifest {
	combined := fsutil.SanitizeFileName(fmt.Sprintf("%s [%s]", meta.FullTitle(), meta.ID))

	dest := m.settings.Dest
	if meta.Type.Periodical() {
		dest = filepath.Join(dest, fsutil.SanitizeFileName(meta.SeriesName))
	}

	imageDir := filepath.Join(dest, combined)
	return manifest{
		imageDir: imageDir,
		pdfPath:  imageDir + ".pdf",
		cbzPath:  imageDir + ".cbz",
	}
}

// fetchBatch runs one round of the page-discovery protocol.
func (m *Manager) fetchBatch(ctx context.Context, id, firstPage, pid string) (*books.Issue, error) {
	data, err := m.client.Get(ctx, books.DiscoveryURL(id, firstPage, pid))
	if err != nil {
		return nil, err
	}
	return books.ParseIssue(data)
}

func (m *Manager) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := m.client.GetString(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, nil
}

// acquirePage downloads one resolved page into the image directory
// and associates any matching outline entry with its filename. Pages
// carrying tile geometry are reconstructed from their tile grid; all
// others are a single fetch at the maximum available width.
func (m *Manager) acquirePage(ctx context.Context, id, imageDir string, page books.ResolvedPage, titles map[string]model.TocEntry, toc *model.TableOfContents) error {
	var filename string

	if g := page.Entry.TileGeometry(); g != nil {
		name, err := m.acquireTiled(ctx, id, imageDir, page, *g)
		if err != nil {
			return err
		}
		filename = name
	} else {
		name, err := m.acquireStandard(ctx, imageDir, page)
		if err != nil {
			return err
		}
		filename = name
	}

	if entry, ok := titles[page.Pid]; ok {
		toc.AddPage(filename, entry)
	}

	m.logger.Debug("downloaded page", "pid", page.Pid, "file", filename)
	return nil
}

// acquireStandard fetches the page image in a single request.
func (m *Manager) acquireStandard(ctx context.Context, imageDir string, page books.ResolvedPage) (string, error) {
	data, contentType, err := m.client.GetTyped(ctx, page.Src+"&w=10000")
	if err != nil {
		return "", err
	}

	ext := imaging.ExtFromContentType(contentType)
	if ext == "png" {
		data, err = imaging.EnsureRGB(data)
		if err != nil {
			return "", fmt.Errorf("page %s: %w", page.Pid, err)
		}
	}

	filename := fmt.Sprintf("%05d-%s.%s", page.Seq, page.Pid, ext)
	path := filepath.Join(imageDir, filename)
	if fsutil.FileExists(path) {
		return filename, nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// acquireTiled reconstructs a segmented page from its tile grid.
func (m *Manager) acquireTiled(ctx context.Context, id, imageDir string, page books.ResolvedPage, g model.TileGeometry) (string, error) {
	fetch := func(ctx context.Context, tid int, _ imaging.TileRect) ([]byte, error) {
		return m.client.Get(ctx, books.TileURL(id, page.Pid, g, tid))
	}

	img, format, err := imaging.AssembleTiles(ctx, g.Width, g.Height, fetch)
	if err != nil {
		return "", fmt.Errorf("page %s: %w", page.Pid, err)
	}

	filename := fmt.Sprintf("%05d-%s.%s", page.Seq, page.Pid, format)
	path := filepath.Join(imageDir, filename)
	if fsutil.FileExists(path) {
		return filename, nil
	}
	if err := imaging.SaveImage(path, img, format); err != nil {
		return "", err
	}
	return filename, nil
}
