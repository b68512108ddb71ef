package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pagescope/backend/stats"
)

// ErrEmptyURL is returned before any fetch is attempted when the
// request carries no URL.
var ErrEmptyURL = errors.New("url is required")

// RecordStore accepts assembled analysis records for persistence.
type RecordStore interface {
	Save(ctx context.Context, record *ScrapedRecord) error
}

// Analyzer runs the fetch-extract-analyze-score pipeline for one URL
// per call. Requests share no mutable state; every call re-fetches and
// re-analyzes from scratch.
type Analyzer struct {
	fetcher *Fetcher
	text    *TextEngine
	store   RecordStore // nil when persistence is not configured
	usage   *stats.Usage
	log     *zap.Logger
}

func New(fetcher *Fetcher, text *TextEngine, store RecordStore, usage *stats.Usage, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		fetcher: fetcher,
		text:    text,
		store:   store,
		usage:   usage,
		log:     log,
	}
}

// Analyze fetches rawURL and assembles the full ScrapedRecord. The
// returned bool reports whether a persistence write was dispatched;
// the write itself is best-effort and never fails the response.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*ScrapedRecord, bool, error) {
	start := time.Now()

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, false, ErrEmptyURL
	}
	rawURL = defaultScheme(rawURL)

	html, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		a.recordUsage(1, 1, 0, 0)
		return nil, false, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		a.recordUsage(1, 1, 0, 0)
		return nil, false, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	// Resource counts and the structural pass need the intact tree;
	// VisibleText strips script/style nodes afterwards.
	perf := SampleResources(doc, len(html))
	content := ExtractContent(doc, rawURL)
	metrics := a.text.Metrics(VisibleText(doc), len(content.Paragraphs))

	perf.LoadTimeMs = time.Since(start).Milliseconds()
	seo := ScoreSEO(content, metrics, perf)

	record := &ScrapedRecord{
		URL:             rawURL,
		Title:           content.Meta.Title,
		Description:     content.Meta.Description,
		Content:         content,
		Performance:     perf,
		ContentAnalysis: metrics,
		Seo:             seo,
	}

	saved := false
	if a.store != nil {
		saved = true
		go a.persist(record)
	}
	a.recordUsage(1, 0, boolToInt(saved), 0)

	a.log.Info("analyzed page",
		zap.String("url", rawURL),
		zap.Int("seoScore", seo.Score),
		zap.Int("wordCount", metrics.WordCount),
		zap.Int64("loadTimeMs", perf.LoadTimeMs))

	return record, saved, nil
}

// persist writes the record outside the request path. Failures are
// logged and counted; they are never visible to the caller.
func (a *Analyzer) persist(record *ScrapedRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.store.Save(ctx, record); err != nil {
		a.log.Error("failed to persist analysis record",
			zap.String("url", record.URL),
			zap.Error(err))
		a.recordUsage(0, 0, 0, 1)
	}
}

func (a *Analyzer) recordUsage(analyses, fetchErrors, storeWrites, storeErrors int) {
	if a.usage != nil {
		a.usage.Record(analyses, fetchErrors, storeWrites, storeErrors)
	}
}

// defaultScheme prepends https:// to scheme-less inputs. Inputs that
// already carry a scheme pass through unchanged; a non-http one then
// fails at fetch time instead of being mangled into a bogus URL.
func defaultScheme(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Scheme != "" {
		return rawURL
	}
	return "https://" + rawURL
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
