package data

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"

	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// DefaultHeadlines are shown when no feed has ever loaded
var DefaultHeadlines = []string{
	"Breaking news updates coming soon...",
	"Stay tuned for the latest headlines",
	"News feed temporarily unavailable",
}

// NewsProvider collects headline titles from RSS and Atom feeds
type NewsProvider struct {
	parser       *gofeed.Parser
	sources      []types.FeedSource
	maxHeadlines int
	maxLength    int
	perSource    int
	logger       *log.Logger
}

// NewNewsProvider returns a provider reading cfg.Sources in order
func NewNewsProvider(client *http.Client, cfg types.NewsConfig, logger *log.Logger) *NewsProvider {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &NewsProvider{
		parser:       parser,
		sources:      cfg.Sources,
		maxHeadlines: cfg.MaxHeadlines,
		maxLength:    cfg.MaxLength,
		perSource:    cfg.PerSource,
		logger:       logger,
	}
}

// Fetch reads every source until maxHeadlines titles are collected. Sources
// that fail are logged and skipped; the call fails only when nothing loads.
func (p *NewsProvider) Fetch(ctx context.Context) (types.NewsData, error) {
	var headlines []string
	for _, src := range p.sources {
		if p.maxHeadlines > 0 && len(headlines) >= p.maxHeadlines {
			break
		}
		titles, err := p.fetchSource(ctx, src)
		if err != nil {
			p.logger.Warn("failed to fetch feed", "source", src.Name, "err", err)
			continue
		}
		p.logger.Debug("fetched feed", "source", src.Name, "headlines", len(titles))
		headlines = append(headlines, titles...)
	}

	if len(headlines) == 0 {
		return types.NewsData{}, fmt.Errorf("news: no headlines from %d sources", len(p.sources))
	}
	if p.maxHeadlines > 0 && len(headlines) > p.maxHeadlines {
		headlines = headlines[:p.maxHeadlines]
	}
	return types.NewsData{Headlines: headlines, UpdatedAt: time.Now()}, nil
}

func (p *NewsProvider) fetchSource(ctx context.Context, src types.FeedSource) ([]string, error) {
	feed, err := p.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src.URL, err)
	}
	return p.titles(feed), nil
}

func (p *NewsProvider) titles(feed *gofeed.Feed) []string {
	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := CleanTitle(item.Title, p.maxLength)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if p.perSource > 0 && len(titles) >= p.perSource {
			break
		}
	}
	return titles
}

// CleanTitle unescapes entities, collapses whitespace and truncates to
// maxLength runes with a trailing "...".
func CleanTitle(title string, maxLength int) string {
	title = html.UnescapeString(title)
	title = strings.Join(strings.Fields(title), " ")

	runes := []rune(title)
	if maxLength > 3 && len(runes) > maxLength {
		title = string(runes[:maxLength-3]) + "..."
	}
	return title
}
