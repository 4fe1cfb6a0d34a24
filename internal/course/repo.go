package course

import "context"

// Store reads the per-category source records for one course. Lookups report
// absence via their bool return, never via error; errors are reserved for
// data-store failures.
type Store interface {
	ListEnrollments(ctx context.Context, courseID string) ([]Enrollment, error)

	JournalScores(ctx context.Context, courseID, studentID string) ([]float64, error)
	Submissions(ctx context.Context, courseID, studentID string) ([]Submission, error)
	Midterm(ctx context.Context, courseID, studentID string) (MidtermSubmission, bool, error)
	Participation(ctx context.Context, courseID, studentID string) (ParticipationRecord, bool, error)
	// PollCounts returns the number of distinct polls the student answered and
	// the total number of polls offered in the course.
	PollCounts(ctx context.Context, courseID, studentID string) (answered, offered int, err error)

	// DataVersion is a marker derived from every contributing record source;
	// it changes whenever any of them does. Cache entries compare it for
	// equality, nothing orders it.
	DataVersion(ctx context.Context, courseID string) (int64, error)
}
