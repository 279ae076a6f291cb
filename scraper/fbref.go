package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxAttempts = 5
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	ErrTableNotFound = errors.New("schedule table not found")
	ErrNoMatches     = errors.New("schedule table has no matches")
	ErrBlocked       = errors.New("schedule source kept refusing requests")
	ErrBadStatus     = errors.New("unexpected response status")
)

// Fetcher scrapes fbref schedule pages.
type Fetcher struct {
	client      *http.Client
	logger      *slog.Logger
	maxAttempts int
	// backoff returns the wait before the next attempt; status is 0 for transport errors.
	backoff func(attempt, status int) time.Duration
}

func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{
		client:      client,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
		backoff: func(attempt, status int) time.Duration {
			if status == 0 {
				return time.Duration(3*attempt) * time.Second
			}
			return time.Duration(5*attempt) * time.Second
		},
	}
}

// Fetch downloads and parses one league schedule. 429 and 403 responses and
// transport errors are retried with a growing wait.
func (f *Fetcher) Fetch(ctx context.Context, src models.LeagueSource) (models.Schedule, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		schedule, status, err := f.fetchOnce(ctx, src)
		if err == nil {
			return schedule, nil
		}
		if status != 0 && status != http.StatusTooManyRequests && status != http.StatusForbidden {
			return nil, err
		}
		lastErr = err

		wait := f.backoff(attempt, status)
		f.logger.Warn("schedule fetch retry",
			slog.String("league", src.Code),
			slog.Int("status", status),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		if attempt == f.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrBlocked, src.Code, f.maxAttempts, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, src models.LeagueSource) (models.Schedule, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("failed to build request for %s: %w", src.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://fbref.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, -1, ctx.Err()
		}
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, fmt.Errorf("%w: %s returned %d", ErrBadStatus, src.URL, resp.StatusCode)
	}

	schedule, err := ParseSchedule(resp.Body, src.TableID)
	if err != nil {
		return nil, -1, fmt.Errorf("%s: %w", src.Code, err)
	}
	f.logger.Info("schedule scraped",
		slog.String("league", src.Code),
		slog.Int("matchdays", len(schedule)),
		slog.Int("played", CountPlayed(schedule)))
	return schedule, resp.StatusCode, nil
}

// FetchAll scrapes several leagues concurrently, at most two at a time.
func (f *Fetcher) FetchAll(ctx context.Context, sources []models.LeagueSource) (map[string]models.Schedule, error) {
	results := make([]models.Schedule, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			schedule, err := f.Fetch(gctx, src)
			if err != nil {
				return err
			}
			results[i] = schedule
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]models.Schedule, len(sources))
	for i, src := range sources {
		out[src.Code] = results[i]
	}
	return out, nil
}

// ParseSchedule reads an fbref schedule page. fbref sometimes ships tables
// inside HTML comments, so those are searched when the table is not in the DOM.
func ParseSchedule(r io.Reader, tableID string) (models.Schedule, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule HTML: %w", err)
	}

	table := findTable(doc, tableID)
	if table == nil {
		for _, c := range commentsContaining(doc, tableID) {
			inner, err := goquery.NewDocumentFromReader(strings.NewReader(c))
			if err != nil {
				continue
			}
			if table = findTable(inner, tableID); table != nil {
				break
			}
		}
	}
	if table == nil {
		return nil, fmt.Errorf("%w: #%s", ErrTableNotFound, tableID)
	}

	schedule := make(models.Schedule)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("spacer") || row.HasClass("thead") {
			return
		}
		matchday := strings.TrimSpace(row.Find(`th[data-stat="gameweek"]`).Text())
		if matchday == "" {
			return
		}

		m := models.ScheduledMatch{
			Home: strings.TrimSpace(row.Find(`td[data-stat="home_team"] a`).First().Text()),
			Away: strings.TrimSpace(row.Find(`td[data-stat="away_team"] a`).First().Text()),
		}
		if date := strings.TrimSpace(row.Find(`td[data-stat="date"]`).Text()); date != "" {
			m.Date = &date
		}
		if home, away, ok := parseScore(row.Find(`td[data-stat="score"]`).Text()); ok {
			m.HomeScore, m.AwayScore, m.Played = &home, &away, true
		}
		schedule[matchday] = append(schedule[matchday], m)
	})

	if len(schedule) == 0 {
		return nil, ErrNoMatches
	}
	return schedule, nil
}

func findTable(doc *goquery.Document, tableID string) *goquery.Selection {
	sel := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == tableID
	})
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

func commentsContaining(doc *goquery.Document, needle string) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode && strings.Contains(n.Data, needle) {
			out = append(out, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return out
}

// parseScore accepts "2–1", "2-1" and "2—1". Penalty notes like "(4) 1–1 (3)" are
// reduced to the regulation score.
func parseScore(text string) (int, int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, false
	}
	text = strings.NewReplacer("–", "-", "—", "-").Replace(text)
	if i := strings.Index(text, ")"); strings.HasPrefix(text, "(") && i > 0 {
		text = text[i+1:]
	}
	if i := strings.LastIndex(text, "("); i > 0 {
		text = text[:i]
	}
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	home, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	away, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || home < 0 || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}

// CountPlayed returns how many scheduled matches have a result.
func CountPlayed(s models.Schedule) int {
	n := 0
	for _, day := range s {
		for _, m := range day {
			if m.Played {
				n++
			}
		}
	}
	return n
}
