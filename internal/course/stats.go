package course

// ClassStats summarizes a roster: average current percent, share of students
// at or above the passing line, and the letter distribution bucketed by band.
type ClassStats struct {
	Students     int            `json:"students"`
	AveragePct   float64        `json:"average_pct"`
	PassingRate  float64        `json:"passing_rate"`
	Distribution map[string]int `json:"distribution"`
}

const passingPercent = 70.0

func ComputeClassStats(rows []RosterRow) ClassStats {
	stats := ClassStats{
		Students:     len(rows),
		Distribution: map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0},
	}
	if len(rows) == 0 {
		return stats
	}
	passing := 0
	for _, r := range rows {
		stats.AveragePct += r.Aggregate.CurrentPercent
		if r.Aggregate.CurrentPercent >= passingPercent {
			passing++
		}
		stats.Distribution[r.Aggregate.LetterGrade[:1]]++
	}
	stats.AveragePct /= float64(len(rows))
	stats.PassingRate = float64(passing) / float64(len(rows)) * 100
	return stats
}
