package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/matchday-predictor/brackets"
	"github.com/Dosada05/matchday-predictor/models"
)

// ScheduleSource downloads league schedules. scraper.Fetcher implements it.
type ScheduleSource interface {
	Fetch(ctx context.Context, src models.LeagueSource) (models.Schedule, error)
	FetchAll(ctx context.Context, sources []models.LeagueSource) (map[string]models.Schedule, error)
}

// LeagueService serves the league predictor: schedules, tables and predictions.
type LeagueService interface {
	Leagues() []models.LeagueSource
	Overview(ctx context.Context, league string) (*models.LeagueOverview, error)
	Predict(ctx context.Context, league, matchday string, predictions map[string]string, progress models.Progress) (*models.PredictionResult, error)
	Table(ctx context.Context, league string, progress models.Progress) ([]models.LeagueTableRow, error)
	Refresh(ctx context.Context, league string) (*models.RefreshResult, error)
	RefreshAll(ctx context.Context) error
	Status(ctx context.Context, league string) (*models.LeagueStatus, error)
}

type cachedSchedule struct {
	schedule  models.Schedule
	fetchedAt time.Time
	cid       string
}

type leagueService struct {
	sources   map[string]models.LeagueSource
	order     []string
	fetcher   ScheduleSource
	snapshots SnapshotService
	logger    *slog.Logger
	maxAge    time.Duration
	now       func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedSchedule
}

func NewLeagueService(sources []models.LeagueSource, fetcher ScheduleSource, snapshots SnapshotService, maxAge time.Duration, logger *slog.Logger) LeagueService {
	s := &leagueService{
		sources:   make(map[string]models.LeagueSource, len(sources)),
		fetcher:   fetcher,
		snapshots: snapshots,
		logger:    logger,
		maxAge:    maxAge,
		now:       time.Now,
		cache:     make(map[string]cachedSchedule),
	}
	for _, src := range sources {
		code := strings.ToUpper(src.Code)
		s.sources[code] = src
		s.order = append(s.order, code)
	}
	return s
}

func (s *leagueService) Leagues() []models.LeagueSource {
	out := make([]models.LeagueSource, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.sources[code])
	}
	return out
}

func (s *leagueService) source(league string) (models.LeagueSource, error) {
	src, ok := s.sources[strings.ToUpper(league)]
	if !ok {
		return models.LeagueSource{}, fmt.Errorf("%w: %s", ErrUnknownLeague, league)
	}
	return src, nil
}

func (s *leagueService) Overview(ctx context.Context, league string) (*models.LeagueOverview, error) {
	src, err := s.source(league)
	if err != nil {
		return nil, err
	}
	entry, err := s.schedule(ctx, src)
	if err != nil {
		return nil, err
	}

	played := PlayedResults(entry.schedule)
	table, err := LeagueTable(entry.schedule, played)
	if err != nil {
		return nil, err
	}

	next := make(models.Schedule)
	playedDays := 0
	for day, matches := range entry.schedule {
		if matchdayPlayed(matches) {
			playedDays++
			continue
		}
		next[day] = matches
	}

	var first *string
	if days := SortedMatchdays(next); len(days) > 0 {
		first = &days[0]
	}

	return &models.LeagueOverview{
		League:                src.Code,
		CompletedTable:        table,
		NextMatchdays:         next,
		FirstUnplayedMatchday: first,
		PlayedResults:         played,
		TotalMatchdays:        len(entry.schedule),
		PlayedMatchdays:       playedDays,
		CID:                   entry.cid,
		FetchedAt:             entry.fetchedAt,
	}, nil
}

// Predict applies a matchday of predictions on top of the caller's progress.
// Real results always win over predicted ones; fixtures without a prediction
// are left out.
func (s *leagueService) Predict(ctx context.Context, league, matchday string, predictions map[string]string, progress models.Progress) (*models.PredictionResult, error) {
	src, err := s.source(league)
	if err != nil {
		return nil, err
	}
	entry, err := s.schedule(ctx, src)
	if err != nil {
		return nil, err
	}

	matches, ok := entry.schedule[matchday]
	if !ok {
		return nil, fmt.Errorf("%w: %s matchday %s", ErrMatchdayNotFound, src.Code, matchday)
	}
	if matchdayPlayed(matches) {
		return nil, fmt.Errorf("%w: %s matchday %s", ErrMatchdayPlayed, src.Code, matchday)
	}

	merged, err := mergeProgress(entry.schedule, progress)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.Played {
			continue
		}
		key := models.ProgressKey(m.Home, m.Away)
		raw, ok := predictions[key]
		if !ok {
			continue
		}
		score, err := ParsePrediction(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		merged[key] = score
	}

	table, err := LeagueTable(entry.schedule, merged)
	if err != nil {
		return nil, err
	}
	return &models.PredictionResult{
		League:   src.Code,
		Matchday: matchday,
		Table:    table,
		Progress: merged,
	}, nil
}

func (s *leagueService) Table(ctx context.Context, league string, progress models.Progress) ([]models.LeagueTableRow, error) {
	src, err := s.source(league)
	if err != nil {
		return nil, err
	}
	entry, err := s.schedule(ctx, src)
	if err != nil {
		return nil, err
	}
	merged, err := mergeProgress(entry.schedule, progress)
	if err != nil {
		return nil, err
	}
	return LeagueTable(entry.schedule, merged)
}

// Refresh scrapes the league regardless of cache age and stores the result.
func (s *leagueService) Refresh(ctx context.Context, league string) (*models.RefreshResult, error) {
	src, err := s.source(league)
	if err != nil {
		return nil, err
	}
	schedule, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScheduleUnavailable, src.Code, err)
	}
	entry, err := s.store(ctx, src, schedule)
	if err != nil {
		return nil, err
	}
	return &models.RefreshResult{
		League:        src.Code,
		Message:       "schedule refreshed",
		CID:           entry.cid,
		SnapshotURL:   s.snapshots.URL(entry.cid),
		PlayedMatches: len(PlayedResults(schedule)),
	}, nil
}

// RefreshAll is run by the background scheduler.
func (s *leagueService) RefreshAll(ctx context.Context) error {
	schedules, err := s.fetcher.FetchAll(ctx, s.Leagues())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScheduleUnavailable, err)
	}
	var errs []error
	for _, code := range s.order {
		src := s.sources[code]
		schedule, ok := schedules[src.Code]
		if !ok {
			continue
		}
		if _, err := s.store(ctx, src, schedule); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *leagueService) Status(ctx context.Context, league string) (*models.LeagueStatus, error) {
	src, err := s.source(league)
	if err != nil {
		return nil, err
	}
	status := &models.LeagueStatus{League: src.Code}

	s.mu.RLock()
	entry, cached := s.cache[src.Code]
	s.mu.RUnlock()
	if cached {
		fetched := entry.fetchedAt
		status.FetchedAt = &fetched
		status.TotalMatchdays = len(entry.schedule)
		status.PlayedMatches = len(PlayedResults(entry.schedule))
	}

	ref, err := s.snapshots.Latest(ctx, src.SnapshotName)
	switch {
	case err == nil:
		status.LatestCID = ref.CID
		status.SnapshotURL = s.snapshots.URL(ref.CID)
		updated := ref.UpdatedAt
		status.SnapshotUpdated = &updated
	case errors.Is(err, ErrNotFound):
	default:
		return nil, err
	}
	return status, nil
}

// schedule returns a fresh schedule from memory, then from the snapshot
// store, then from the web. When scraping fails, stale data is served.
func (s *leagueService) schedule(ctx context.Context, src models.LeagueSource) (cachedSchedule, error) {
	s.mu.RLock()
	entry, cached := s.cache[src.Code]
	s.mu.RUnlock()
	if cached && s.fresh(entry.fetchedAt) {
		return entry, nil
	}

	var snap models.LeagueSnapshot
	ref, loadErr := s.snapshots.Load(ctx, src.SnapshotName, &snap)
	if loadErr == nil && len(snap.MatchesByDay) > 0 {
		stored := cachedSchedule{schedule: snap.MatchesByDay, fetchedAt: snap.Timestamp, cid: ref.CID}
		if !cached || stored.fetchedAt.After(entry.fetchedAt) {
			entry, cached = stored, true
			s.put(src.Code, entry)
		}
		if s.fresh(entry.fetchedAt) {
			return entry, nil
		}
	} else if loadErr != nil && !errors.Is(loadErr, ErrNotFound) {
		s.logger.Warn("schedule snapshot unavailable", slog.String("league", src.Code), slog.Any("error", loadErr))
	}

	schedule, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		if cached {
			s.logger.Warn("serving stale schedule",
				slog.String("league", src.Code),
				slog.Time("fetched_at", entry.fetchedAt),
				slog.Any("error", err))
			return entry, nil
		}
		return cachedSchedule{}, fmt.Errorf("%w: %s: %w", ErrScheduleUnavailable, src.Code, err)
	}

	fresh, err := s.store(ctx, src, schedule)
	if err != nil {
		// Данные уже скачаны, отдаём их даже без снапшота.
		s.logger.Error("schedule snapshot save failed", slog.String("league", src.Code), slog.Any("error", err))
		fresh = cachedSchedule{schedule: schedule, fetchedAt: s.now().UTC()}
		s.put(src.Code, fresh)
	}
	return fresh, nil
}

func (s *leagueService) store(ctx context.Context, src models.LeagueSource, schedule models.Schedule) (cachedSchedule, error) {
	snap := models.LeagueSnapshot{
		League:        src.Code,
		MatchesByDay:  schedule,
		PlayedResults: PlayedResults(schedule),
		Timestamp:     s.now().UTC(),
	}
	cid, err := s.snapshots.Save(ctx, src.SnapshotName, models.SnapshotKindSchedule, snap)
	if err != nil {
		return cachedSchedule{}, err
	}
	entry := cachedSchedule{schedule: schedule, fetchedAt: snap.Timestamp, cid: cid}
	s.put(src.Code, entry)
	return entry, nil
}

func (s *leagueService) put(code string, entry cachedSchedule) {
	s.mu.Lock()
	s.cache[code] = entry
	s.mu.Unlock()
}

func (s *leagueService) fresh(fetchedAt time.Time) bool {
	return s.now().Sub(fetchedAt) <= s.maxAge
}

// PlayedResults collects the real results of a schedule keyed by "Home_vs_Away".
func PlayedResults(schedule models.Schedule) models.Progress {
	out := make(models.Progress)
	for _, matches := range schedule {
		for _, m := range matches {
			if m.Played && m.HomeScore != nil && m.AwayScore != nil {
				out[models.ProgressKey(m.Home, m.Away)] = models.Score{*m.HomeScore, *m.AwayScore}
			}
		}
	}
	return out
}

// LeagueTable ranks every team of the schedule by points, goal difference and
// goals scored, counting only fixtures present in progress.
func LeagueTable(schedule models.Schedule, progress models.Progress) ([]models.LeagueTableRow, error) {
	table := make(models.GroupTable)
	for _, matches := range schedule {
		for _, m := range matches {
			for _, team := range []string{m.Home, m.Away} {
				if _, ok := table[team]; !ok {
					table[team] = &models.StandingRow{}
				}
			}
			score, ok := progress[models.ProgressKey(m.Home, m.Away)]
			if !ok {
				continue
			}
			if score[0] < 0 || score[1] < 0 {
				return nil, fmt.Errorf("%w: %s %d-%d", ErrInvalidPrediction, models.ProgressKey(m.Home, m.Away), score[0], score[1])
			}
			brackets.ApplyResult(table, m.Home, m.Away, score[0], score[1])
		}
	}

	ranked := brackets.Rank(table)
	rows := make([]models.LeagueTableRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, models.LeagueTableRow{
			Team:   r.Team,
			Points: r.Points,
			GD:     r.GoalDifference,
			GF:     r.GoalsFor,
			Played: r.Played,
			Won:    r.Won,
			Draw:   r.Drawn,
			Lost:   r.Lost,
		})
	}
	return rows, nil
}

// ParsePrediction reads a "home-away" scoreline such as "2-1".
func ParsePrediction(raw string) (models.Score, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return models.Score{}, fmt.Errorf("%w: %q", ErrInvalidPrediction, raw)
	}
	var score models.Score
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return models.Score{}, fmt.Errorf("%w: %q", ErrInvalidPrediction, raw)
		}
		score[i] = n
	}
	return score, nil
}

// SortedMatchdays returns matchday ids in numeric order; non-numeric ids go last.
func SortedMatchdays(schedule models.Schedule) []string {
	days := make([]string, 0, len(schedule))
	for d := range schedule {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		a, errA := strconv.Atoi(days[i])
		b, errB := strconv.Atoi(days[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return days[i] < days[j]
		}
	})
	return days
}

func matchdayPlayed(matches []models.ScheduledMatch) bool {
	for _, m := range matches {
		if !m.Played {
			return false
		}
	}
	return true
}

// mergeProgress copies the caller's progress, rejecting keys that are not
// fixtures of the schedule, and then lays the real results over it.
func mergeProgress(schedule models.Schedule, progress models.Progress) (models.Progress, error) {
	known := make(map[string]bool)
	for _, matches := range schedule {
		for _, m := range matches {
			known[models.ProgressKey(m.Home, m.Away)] = true
		}
	}

	merged := make(models.Progress, len(progress))
	for key, score := range progress {
		if !known[key] {
			return nil, fmt.Errorf("%w: unknown fixture %s", ErrValidationFailed, key)
		}
		if score[0] < 0 || score[1] < 0 {
			return nil, fmt.Errorf("%w: %s %d-%d", ErrInvalidPrediction, key, score[0], score[1])
		}
		merged[key] = score
	}
	for key, score := range PlayedResults(schedule) {
		merged[key] = score
	}
	return merged, nil
}
