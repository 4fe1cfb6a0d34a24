package course

// Aggregate folds the five category scores into the derived grade. Pure; run
// once per student per roster read.
//
// The projection is the optimistic ceiling: every point not yet on the books
// is assumed earned in full, so it is always >= the current percentage, and a
// student with no scored categories projects to 100.
func Aggregate(scores map[Category]CategoryScore) AggregateGrade {
	var g AggregateGrade
	for _, s := range scores {
		g.CurrentEarned += s.Earned
		g.CurrentPossible += s.Possible
	}
	if g.CurrentPossible > 0 {
		g.CurrentPercent = g.CurrentEarned / g.CurrentPossible * 100
	}
	remaining := CourseTotalPoints - g.CurrentPossible
	g.ProjectedPercent = (g.CurrentEarned + remaining) / CourseTotalPoints * 100
	g.LetterGrade = LetterGrade(g.CurrentPercent)
	return g
}
