package course

import (
	"context"
	"strings"
)

// ProviderSet computes the five category scores for one student. Each provider
// is a pure read: no data found yields a zero-valued score and a nil error.
type ProviderSet struct {
	store Store
}

func NewProviderSet(store Store) ProviderSet { return ProviderSet{store: store} }

// Score dispatches to the provider for the given category.
func (p ProviderSet) Score(ctx context.Context, cat Category, courseID, studentID string) (CategoryScore, error) {
	switch cat {
	case CategoryJournals:
		return p.Journals(ctx, courseID, studentID)
	case CategoryGroupProject:
		return p.GroupProject(ctx, courseID, studentID)
	case CategoryMidterm:
		return p.MidtermExam(ctx, courseID, studentID)
	case CategoryParticipation:
		return p.Participation(ctx, courseID, studentID)
	case CategoryFinalEssay:
		return p.FinalEssay(ctx, courseID, studentID)
	}
	return CategoryScore{}, nil
}

// Journals sums all recorded journal scores; possible grows by 20 per record.
func (p ProviderSet) Journals(ctx context.Context, courseID, studentID string) (CategoryScore, error) {
	scores, err := p.store.JournalScores(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	var s CategoryScore
	for _, v := range scores {
		s.Earned += v
	}
	s.Possible = float64(len(scores)) * journalMaxScore
	return s, nil
}

// GroupProject sums grades on submissions whose names match any project
// pattern, capped at the category weight.
func (p ProviderSet) GroupProject(ctx context.Context, courseID, studentID string) (CategoryScore, error) {
	subs, err := p.store.Submissions(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	var s CategoryScore
	matched := false
	for _, sub := range subs {
		if !matchesAny(sub.Name, groupProjectPatterns) {
			continue
		}
		matched = true
		if sub.Grade != nil {
			s.Earned += *sub.Grade
		}
	}
	if !matched {
		return CategoryScore{}, nil
	}
	if s.Earned > groupProjectMaxPoints {
		s.Earned = groupProjectMaxPoints
	}
	s.Possible = groupProjectMaxPoints
	return s, nil
}

// MidtermExam rescales the stored score from its 90-point basis to the
// category's 100-point weight. Unsubmitted or ungraded midterms are absence.
func (p ProviderSet) MidtermExam(ctx context.Context, courseID, studentID string) (CategoryScore, error) {
	m, ok, err := p.store.Midterm(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	if !ok || !m.Submitted || m.Score == nil {
		return CategoryScore{}, nil
	}
	return CategoryScore{
		Earned:   *m.Score / midtermRawBasis * midtermMaxPoints,
		Possible: midtermMaxPoints,
	}, nil
}

// Participation blends the tracked points record with the poll response rate:
// 70% points, 30% polls, over the 50-point category weight.
func (p ProviderSet) Participation(ctx context.Context, courseID, studentID string) (CategoryScore, error) {
	rec, ok, err := p.store.Participation(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	if !ok {
		return CategoryScore{}, nil
	}
	answered, offered, err := p.store.PollCounts(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	possible := rec.PointsPossible
	if possible <= 0 {
		possible = participationDefaultPossible
	}
	pollRate := 0.0
	if offered > 0 {
		pollRate = float64(answered) / float64(offered)
	}
	base := rec.PointsEarned / possible
	earned := (participationPointsWeight*base + participationPollWeight*pollRate) * participationMaxPoints
	return CategoryScore{Earned: earned, Possible: participationMaxPoints}, nil
}

// FinalEssay takes the grade of the one submission matching the final
// reflection patterns.
func (p ProviderSet) FinalEssay(ctx context.Context, courseID, studentID string) (CategoryScore, error) {
	subs, err := p.store.Submissions(ctx, courseID, studentID)
	if err != nil {
		return CategoryScore{}, err
	}
	for _, sub := range subs {
		if !matchesAny(sub.Name, finalEssayPatterns) {
			continue
		}
		if sub.Grade == nil {
			return CategoryScore{}, nil
		}
		return CategoryScore{Earned: *sub.Grade, Possible: finalEssayMaxPoints}, nil
	}
	return CategoryScore{}, nil
}

func matchesAny(name string, patterns []string) bool {
	low := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(low, p) {
			return true
		}
	}
	return false
}
