package course

// letterBands maps inclusive lower bounds to letters, highest first.
var letterBands = []struct {
	min    float64
	letter string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// LetterGrade maps a percentage to its letter. This is the single shared
// mapper for both the roster and the rubric workflow.
func LetterGrade(percent float64) string {
	for _, b := range letterBands {
		if percent >= b.min {
			return b.letter
		}
	}
	return "F"
}
