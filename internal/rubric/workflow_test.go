package rubric

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRubricStore struct {
	subs   map[string]ExamSubmission
	grades map[string]GradeRecord // keyed by submission ID
	saves  int
}

func newFakeRubricStore() *fakeRubricStore {
	return &fakeRubricStore{
		subs:   map[string]ExamSubmission{},
		grades: map[string]GradeRecord{},
	}
}

func (f *fakeRubricStore) ListSubmissions(ctx context.Context, courseID string) ([]ExamSubmission, error) {
	var out []ExamSubmission
	for _, s := range f.subs {
		if s.CourseID == courseID {
			out = append(out, f.withGrade(s))
		}
	}
	return out, nil
}

func (f *fakeRubricStore) GetSubmission(ctx context.Context, id string) (ExamSubmission, error) {
	s, ok := f.subs[id]
	if !ok {
		return ExamSubmission{}, errors.New("submission not found")
	}
	return f.withGrade(s), nil
}

func (f *fakeRubricStore) SaveGrade(ctx context.Context, rec GradeRecord) error {
	f.saves++
	f.grades[rec.SubmissionID] = rec
	return nil
}

func (f *fakeRubricStore) withGrade(s ExamSubmission) ExamSubmission {
	if g, ok := f.grades[s.ID]; ok {
		score := g.Score
		s.Score = &score
		s.Feedback = g.Feedback
		s.GradedBy = g.GradedBy
		s.GradedAt = g.GradedAt.Unix()
	}
	return s
}

func submittedFixture() *fakeRubricStore {
	f := newFakeRubricStore()
	f.subs["m1"] = ExamSubmission{
		ID: "m1", CourseID: "c1", StudentID: "s1",
		FullName: "Ada Lovelace", Submitted: true, SubmittedAt: 1700000000,
	}
	f.subs["m2"] = ExamSubmission{
		ID: "m2", CourseID: "c1", StudentID: "s2",
		FullName: "Blaise Pascal", Submitted: false,
	}
	return f
}

func TestWorkflowGradeAndSave(t *testing.T) {
	f := submittedFixture()
	w := NewWorkflow(f)
	fixed := time.Unix(1700001234, 0)
	w.now = func() time.Time { return fixed }
	ctx := context.Background()

	if w.State() != StateUnopened {
		t.Fatalf("initial state = %s", w.State())
	}
	if err := w.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if w.State() != StateSelected {
		t.Fatalf("state after select = %s", w.State())
	}

	for sec, v := range map[Section]float64{
		SectionTerms: 8, SectionShortAnswers: 16, SectionExcerpts: 24, SectionEssay: 32,
	} {
		if err := w.SetSection(sec, v); err != nil {
			t.Fatal(err)
		}
	}
	if w.State() != StateEditing {
		t.Fatalf("state after edits = %s", w.State())
	}
	if err := w.SetFeedback("Strong excerpt analysis."); err != nil {
		t.Fatal(err)
	}

	total, letter := w.Preview()
	if total != 80 || letter != "B-" {
		t.Errorf("preview = %v %q, want 80 B-", total, letter)
	}

	rec, err := w.Save(ctx, "instructor-1")
	if err != nil {
		t.Fatal(err)
	}
	if w.State() != StateSaved {
		t.Errorf("state after save = %s", w.State())
	}
	if rec.Score != 80 || rec.SubmissionID != "m1" || rec.GradedBy != "instructor-1" {
		t.Errorf("record = %+v", rec)
	}
	if !rec.GradedAt.Equal(fixed) {
		t.Errorf("GradedAt = %v, want %v", rec.GradedAt, fixed)
	}
	if rec.ID == "" {
		t.Error("record ID not assigned")
	}

	// The selection stays open with the stored grade reloaded.
	if sub := w.Submission(); sub.Score == nil || *sub.Score != 80 || sub.GradedBy != "instructor-1" {
		t.Errorf("submission not refreshed after save: %+v", w.Submission())
	}
	if got := w.Sheet(); got != SplitTotal(80) {
		t.Errorf("sheet after save = %+v, want %+v", got, SplitTotal(80))
	}

	// A further edit regrades in place, no new selection needed.
	if err := w.SetSection(SectionEssay, 10); err != nil {
		t.Fatalf("edit after save: %v", err)
	}
	if w.State() != StateEditing {
		t.Errorf("state after post-save edit = %s", w.State())
	}
	rec2, err := w.Save(ctx, "instructor-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec2.Score != 58 { // 8+16+24+10
		t.Errorf("regraded score = %v, want 58", rec2.Score)
	}
	if f.saves != 2 {
		t.Errorf("saves = %d, want 2", f.saves)
	}
}

func TestWorkflowSaveRequiresSelection(t *testing.T) {
	w := NewWorkflow(submittedFixture())
	if _, err := w.Save(context.Background(), "instructor-1"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if err := w.SetSection(SectionTerms, 5); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
}

func TestWorkflowRejectsUnsubmitted(t *testing.T) {
	w := NewWorkflow(submittedFixture())
	if err := w.Select(context.Background(), "m2"); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("err = %v, want ErrNotSubmitted", err)
	}
}

func TestWorkflowSaveRequiresIdentity(t *testing.T) {
	w := NewWorkflow(submittedFixture())
	ctx := context.Background()
	if err := w.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Save(ctx, ""); !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("err = %v, want ErrMissingIdentity", err)
	}
}

func TestWorkflowReselectReloadsStoredGrade(t *testing.T) {
	f := submittedFixture()
	ctx := context.Background()

	w := NewWorkflow(f)
	if err := w.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	_ = w.SetSection(SectionTerms, 8)
	_ = w.SetSection(SectionShortAnswers, 16)
	_ = w.SetSection(SectionExcerpts, 24)
	_ = w.SetSection(SectionEssay, 32)
	_ = w.SetFeedback("Solid work.")
	if _, err := w.Save(ctx, "instructor-1"); err != nil {
		t.Fatal(err)
	}

	// A fresh selection reconstructs the sheet from the stored total.
	w2 := NewWorkflow(f)
	if err := w2.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if got := w2.Sheet(); got != SplitTotal(80) {
		t.Errorf("reloaded sheet = %+v, want %+v", got, SplitTotal(80))
	}
	if w2.Feedback() != "Solid work." {
		t.Errorf("reloaded feedback = %q", w2.Feedback())
	}
	total, _ := w2.Preview()
	if total != 80 {
		t.Errorf("reloaded total = %v, want 80", total)
	}
}

func TestWorkflowRegradeOverwrites(t *testing.T) {
	f := submittedFixture()
	ctx := context.Background()

	w := NewWorkflow(f)
	if err := w.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	_ = w.SetSection(SectionEssay, 40)
	if _, err := w.Save(ctx, "instructor-1"); err != nil {
		t.Fatal(err)
	}

	w2 := NewWorkflow(f)
	if err := w2.Select(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	_ = w2.SetSection(SectionEssay, 20)
	_ = w2.SetFeedback("Revised after review.")
	if _, err := w2.Save(ctx, "instructor-2"); err != nil {
		t.Fatal(err)
	}

	// The later save is the only surviving state. Selecting the graded
	// submission reconstructed 40 as 4+8+12+16; lowering the essay to 20
	// makes the new total 44.
	sub, err := f.GetSubmission(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Score == nil || *sub.Score != 44 {
		t.Fatalf("unexpected stored score: %+v", sub.Score)
	}
	if sub.GradedBy != "instructor-2" || sub.Feedback != "Revised after review." {
		t.Errorf("overwrite incomplete: %+v", sub)
	}
	if f.saves != 2 {
		t.Errorf("saves = %d, want 2", f.saves)
	}
}
