package rubric

import (
	"context"
	"time"
)

// ExamSubmission is one student's submitted midterm as listed for grading.
// Score and Feedback come from the submission's grade record when present.
type ExamSubmission struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"course_id"`
	StudentID   string   `json:"student_id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Score       *float64 `json:"score,omitempty"`
	Feedback    string   `json:"feedback,omitempty"`
	Submitted   bool     `json:"submitted"`
	SubmittedAt int64    `json:"submitted_at"`
	GradedBy    string   `json:"graded_by,omitempty"`
	GradedAt    int64    `json:"graded_at,omitempty"`
}

// GradeRecord is the persisted outcome of a grading action for one
// submission. Saves overwrite; there is no history of prior grades.
type GradeRecord struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	Score        float64   `json:"score"`
	Feedback     string    `json:"feedback"`
	GradedBy     string    `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
}

type Store interface {
	// ListSubmissions returns submitted midterms for a course, newest first.
	ListSubmissions(ctx context.Context, courseID string) ([]ExamSubmission, error)
	GetSubmission(ctx context.Context, id string) (ExamSubmission, error)
	// SaveGrade inserts the record, or fully overwrites an existing one for
	// the same submission. Concurrent saves are not coordinated; the later
	// write is the final state.
	SaveGrade(ctx context.Context, rec GradeRecord) error
}
