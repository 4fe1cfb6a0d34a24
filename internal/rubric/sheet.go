package rubric

import "math"

// Section is one of the four fixed, independently-capped components of the
// midterm exam score.
type Section string

const (
	SectionTerms        Section = "terms"         // 2 pts each x 5 terms
	SectionShortAnswers Section = "short_answers" // 5 pts each x 4 questions
	SectionExcerpts     Section = "excerpts"      // 15 pts each x 2 excerpts
	SectionEssay        Section = "essay"
)

var Sections = []Section{SectionTerms, SectionShortAnswers, SectionExcerpts, SectionEssay}

const (
	maxTerms        = 10.0
	maxShortAnswers = 20.0
	maxExcerpts     = 30.0
	maxEssay        = 40.0

	sheetMaxTotal = 100.0
)

func SectionMax(sec Section) float64 {
	switch sec {
	case SectionTerms:
		return maxTerms
	case SectionShortAnswers:
		return maxShortAnswers
	case SectionExcerpts:
		return maxExcerpts
	case SectionEssay:
		return maxEssay
	}
	return 0
}

// Sheet holds the four subsection scores. Each is clamped to its own range on
// write, so the total is in [0,100] by construction.
type Sheet struct {
	Terms        float64 `json:"terms"`
	ShortAnswers float64 `json:"short_answers"`
	Excerpts     float64 `json:"excerpts"`
	Essay        float64 `json:"essay"`
}

func (s Sheet) Total() float64 {
	return s.Terms + s.ShortAnswers + s.Excerpts + s.Essay
}

func (s *Sheet) Set(sec Section, v float64) {
	v = clamp(v, SectionMax(sec))
	switch sec {
	case SectionTerms:
		s.Terms = v
	case SectionShortAnswers:
		s.ShortAnswers = v
	case SectionExcerpts:
		s.Excerpts = v
	case SectionEssay:
		s.Essay = v
	}
}

// SplitTotal reverse-derives subsection values from a stored total by
// splitting it proportionally across the subsection maximums. The breakdown
// itself is not persisted, so this is an approximation: the reconstructed
// values may differ from the split that was originally entered, but they
// always sum back to the stored total.
func SplitTotal(score float64) Sheet {
	terms := math.Round(score / sheetMaxTotal * maxTerms)
	short := math.Round(score / sheetMaxTotal * maxShortAnswers)
	excerpts := math.Round(score / sheetMaxTotal * maxExcerpts)
	essay := score - terms - short - excerpts
	if essay < 0 {
		essay = 0
	}
	return Sheet{
		Terms:        terms,
		ShortAnswers: short,
		Excerpts:     excerpts,
		Essay:        essay,
	}
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
