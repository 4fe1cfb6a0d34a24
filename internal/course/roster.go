package course

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RosterService builds roster rows for every enrolled student: providers ->
// aggregator -> letter mapper, with per-student and per-category reads fanned
// out concurrently.
type RosterService struct {
	store     Store
	providers ProviderSet
	cache     *Cache
	log       zerolog.Logger
	workers   int
}

func NewRosterService(store Store, cache *Cache, log zerolog.Logger, workers int) *RosterService {
	if workers <= 0 {
		workers = 8
	}
	if cache == nil {
		cache = NewCache()
	}
	return &RosterService{
		store:     store,
		providers: NewProviderSet(store),
		cache:     cache,
		log:       log,
		workers:   workers,
	}
}

func (s *RosterService) Cache() *Cache { return s.cache }

// Roster returns one row per enrolled student, sorted by current percent
// descending. Ties keep enrollment order. A failing category read degrades
// that category to zero and marks it unavailable; it does not drop the row.
func (s *RosterService) Roster(ctx context.Context, courseID string) ([]RosterRow, error) {
	enrollments, err := s.store.ListEnrollments(ctx, courseID)
	if err != nil {
		return nil, err
	}

	version, err := s.store.DataVersion(ctx, courseID)
	if err != nil {
		// A broken version read only disables memoization.
		s.log.Warn().Err(err).Str("course_id", courseID).Msg("data version unavailable, bypassing cache")
		version = -1
	}

	rows := make([]RosterRow, len(enrollments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, e := range enrollments {
		i, e := i, e
		g.Go(func() error {
			row, err := s.buildRow(gctx, courseID, e, version)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Aggregate.CurrentPercent > rows[j].Aggregate.CurrentPercent
	})
	return rows, nil
}

// GetRosterRow computes the derived grade for a single enrolled student.
func (s *RosterService) GetRosterRow(ctx context.Context, courseID, studentID string) (RosterRow, error) {
	enrollments, err := s.store.ListEnrollments(ctx, courseID)
	if err != nil {
		return RosterRow{}, err
	}
	for _, e := range enrollments {
		if e.StudentID != studentID {
			continue
		}
		version, err := s.store.DataVersion(ctx, courseID)
		if err != nil {
			s.log.Warn().Err(err).Str("course_id", courseID).Msg("data version unavailable, bypassing cache")
			version = -1
		}
		return s.buildRow(ctx, courseID, e, version)
	}
	return RosterRow{}, ErrNotEnrolled
}

// buildRow runs the five providers concurrently and aggregates. The only
// error it returns is context cancellation; provider failures degrade to
// unavailable categories.
func (s *RosterService) buildRow(ctx context.Context, courseID string, e Enrollment, version int64) (RosterRow, error) {
	if version >= 0 {
		if row, ok := s.cache.get(e.StudentID, version); ok {
			return row, nil
		}
	}

	row := RosterRow{
		StudentID: e.StudentID,
		FullName:  e.FullName,
		Email:     e.Email,
		Scores:    make(map[Category]CategoryScore, len(Categories)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range Categories {
		cat := cat
		g.Go(func() error {
			score, err := s.providers.Score(gctx, cat, courseID, e.StudentID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Error().Err(err).
					Str("student_id", e.StudentID).
					Str("category", string(cat)).
					Msg("category read failed")
				row.Unavailable = append(row.Unavailable, cat)
				row.Scores[cat] = CategoryScore{}
				return nil
			}
			row.Scores[cat] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RosterRow{}, err
	}

	sort.Slice(row.Unavailable, func(i, j int) bool {
		return row.Unavailable[i] < row.Unavailable[j]
	})
	row.Aggregate = Aggregate(row.Scores)

	if version >= 0 && len(row.Unavailable) == 0 {
		s.cache.put(e.StudentID, version, row)
	}
	return row, nil
}

// FilterRows keeps rows whose name or email contains the term,
// case-insensitively. An empty term keeps everything.
func FilterRows(rows []RosterRow, term string) []RosterRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]RosterRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.FullName), term) ||
			strings.Contains(strings.ToLower(r.Email), term) {
			out = append(out, r)
		}
	}
	return out
}
