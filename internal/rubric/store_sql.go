package rubric

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gwplatform/gradeboard/internal/eventlog"
)

type SQLStore struct {
	db     *sql.DB
	events *eventlog.Repo
}

func NewSQLStore(db *sql.DB, events *eventlog.Repo) *SQLStore {
	return &SQLStore{db: db, events: events}
}

func (s *SQLStore) ListSubmissions(ctx context.Context, courseID string) ([]ExamSubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ms.id, ms.course_id, ms.student_id, e.full_name, e.email,
		        gr.score, COALESCE(gr.feedback,''), ms.is_submitted,
		        COALESCE(ms.submitted_at,0), COALESCE(gr.graded_by,''), COALESCE(gr.graded_at,0)
		   FROM midterm_submissions ms
		   LEFT JOIN grade_records gr ON gr.submission_id = ms.id
		   JOIN enrollments e ON e.course_id = ms.course_id AND e.student_id = ms.student_id
		  WHERE ms.course_id=$1 AND ms.is_submitted
		  ORDER BY ms.submitted_at DESC`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExamSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (ExamSubmission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT ms.id, ms.course_id, ms.student_id, e.full_name, e.email,
		        gr.score, COALESCE(gr.feedback,''), ms.is_submitted,
		        COALESCE(ms.submitted_at,0), COALESCE(gr.graded_by,''), COALESCE(gr.graded_at,0)
		   FROM midterm_submissions ms
		   LEFT JOIN grade_records gr ON gr.submission_id = ms.id
		   JOIN enrollments e ON e.course_id = ms.course_id AND e.student_id = ms.student_id
		  WHERE ms.id=$1`,
		id)
	sub, err := scanSubmission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return ExamSubmission{}, fmt.Errorf("submission %q not found", id)
	}
	return sub, err
}

// SaveGrade upserts on submission_id: insert on first save, full overwrite on
// regrade. Appends a GradeSaved event so roster caches see a new version.
func (s *SQLStore) SaveGrade(ctx context.Context, rec GradeRecord) error {
	sub, err := s.GetSubmission(ctx, rec.SubmissionID)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO grade_records (id, submission_id, score, feedback, graded_by, graded_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (submission_id) DO UPDATE SET
		   score=EXCLUDED.score,
		   feedback=EXCLUDED.feedback,
		   graded_by=EXCLUDED.graded_by,
		   graded_at=EXCLUDED.graded_at`,
		rec.ID, rec.SubmissionID, rec.Score, rec.Feedback, rec.GradedBy, rec.GradedAt.Unix())
	if err != nil {
		return err
	}

	data, _ := json.Marshal(map[string]interface{}{
		"student_id": sub.StudentID,
		"score":      rec.Score,
		"graded_by":  rec.GradedBy,
	})
	return s.events.Append(ctx, eventlog.Event{
		CourseID: sub.CourseID,
		Type:     eventlog.TypeGradeSaved,
		Key:      rec.SubmissionID,
		DataJSON: string(data),
	})
}

func scanSubmission(scan func(...interface{}) error) (ExamSubmission, error) {
	var sub ExamSubmission
	var score sql.NullFloat64
	if err := scan(&sub.ID, &sub.CourseID, &sub.StudentID, &sub.FullName, &sub.Email,
		&score, &sub.Feedback, &sub.Submitted, &sub.SubmittedAt, &sub.GradedBy, &sub.GradedAt); err != nil {
		return ExamSubmission{}, err
	}
	if score.Valid {
		v := score.Float64
		sub.Score = &v
	}
	return sub, nil
}
