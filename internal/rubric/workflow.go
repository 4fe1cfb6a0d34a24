package rubric

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gwplatform/gradeboard/internal/course"
)

type State string

const (
	StateUnopened State = "unopened"
	StateSelected State = "selected"
	StateEditing  State = "editing"
	StateSaved    State = "saved"
)

var (
	ErrNoSelection     = errors.New("no submission selected")
	ErrNotSubmitted    = errors.New("submission not finalized")
	ErrMissingIdentity = errors.New("grader identity required")
)

// Workflow grades one exam submission at a time. An instructor selects a
// submission, edits the four subsection scores, and saves; the save writes
// the summed total with feedback and audit fields, overwriting any prior
// grade for the submission.
type Workflow struct {
	store Store
	now   func() time.Time

	state      State
	submission ExamSubmission
	sheet      Sheet
	feedback   string
}

func NewWorkflow(store Store) *Workflow {
	return &Workflow{store: store, now: time.Now, state: StateUnopened}
}

func (w *Workflow) State() State               { return w.state }
func (w *Workflow) Submission() ExamSubmission { return w.submission }
func (w *Workflow) Sheet() Sheet               { return w.sheet }
func (w *Workflow) Feedback() string           { return w.feedback }

// Select loads a submission for grading. An already-graded submission has its
// stored total split back across the subsections and its feedback preloaded;
// otherwise the sheet starts at zero.
func (w *Workflow) Select(ctx context.Context, submissionID string) error {
	sub, err := w.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	if !sub.Submitted {
		return ErrNotSubmitted
	}
	w.submission = sub
	if sub.Score != nil {
		w.sheet = SplitTotal(*sub.Score)
		w.feedback = sub.Feedback
	} else {
		w.sheet = Sheet{}
		w.feedback = ""
	}
	w.state = StateSelected
	return nil
}

// SetSection records a subsection score, clamped to the section's range.
func (w *Workflow) SetSection(sec Section, v float64) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.sheet.Set(sec, v)
	w.state = StateEditing
	return nil
}

func (w *Workflow) SetFeedback(text string) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.feedback = text
	w.state = StateEditing
	return nil
}

// Preview returns the live total and its letter grade.
func (w *Workflow) Preview() (float64, string) {
	total := w.sheet.Total()
	return total, course.LetterGrade(total)
}

// Save persists the summed total with audit metadata. A zero score with no
// feedback is a valid save. The selection stays open for regrading with the
// stored record reloaded (its subsection split is reconstructed, see
// SplitTotal), so a further edit moves back to editing and a later save
// overwrites.
func (w *Workflow) Save(ctx context.Context, gradedBy string) (GradeRecord, error) {
	if w.state == StateUnopened {
		return GradeRecord{}, ErrNoSelection
	}
	if gradedBy == "" {
		return GradeRecord{}, ErrMissingIdentity
	}
	rec := GradeRecord{
		ID:           uuid.NewString(),
		SubmissionID: w.submission.ID,
		Score:        w.sheet.Total(),
		Feedback:     w.feedback,
		GradedBy:     gradedBy,
		GradedAt:     w.now(),
	}
	if err := w.store.SaveGrade(ctx, rec); err != nil {
		return GradeRecord{}, err
	}
	score := rec.Score
	w.submission.Score = &score
	w.submission.Feedback = rec.Feedback
	w.submission.GradedBy = rec.GradedBy
	w.submission.GradedAt = rec.GradedAt.Unix()
	w.sheet = SplitTotal(rec.Score)
	w.state = StateSaved
	return rec, nil
}

func (w *Workflow) editable() error {
	if w.state == StateUnopened {
		return ErrNoSelection
	}
	return nil
}
