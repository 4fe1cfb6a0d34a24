package course

type Enrollment struct {
	CourseID  string `json:"course_id"`
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Status    string `json:"status"` // enrolled|withdrawn
}

// CategoryScore is one student's normalized contribution for one category.
// Possible is 0 when the category has not been attempted, or the category's
// full weight once at least one scored item exists.
type CategoryScore struct {
	Earned   float64 `json:"earned"`
	Possible float64 `json:"possible"`
}

// AggregateGrade is derived on every read; it is never persisted.
type AggregateGrade struct {
	CurrentEarned    float64 `json:"current_earned"`
	CurrentPossible  float64 `json:"current_possible"`
	CurrentPercent   float64 `json:"current_percent"`
	ProjectedPercent float64 `json:"projected_percent"`
	LetterGrade      string  `json:"letter_grade"`
}

type RosterRow struct {
	StudentID string                     `json:"student_id"`
	FullName  string                     `json:"full_name"`
	Email     string                     `json:"email"`
	Scores    map[Category]CategoryScore `json:"scores"`
	Aggregate AggregateGrade             `json:"aggregate"`

	// Unavailable lists categories whose source read failed. Those categories
	// score zero in the aggregate but are surfaced distinctly from absence.
	Unavailable []Category `json:"unavailable,omitempty"`
}

// Submission is the generic assignment-submission view the group-project and
// final-essay providers match against by name.
type Submission struct {
	ID    string
	Name  string
	Grade *float64 // nil until graded
}

type MidtermSubmission struct {
	ID        string
	StudentID string
	Score     *float64 // rubric total, nil until graded
	Submitted bool
}

type ParticipationRecord struct {
	PointsEarned   float64
	PointsPossible float64
}
