package course

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func rosterFixture() *fakeStore {
	f := newFakeStore()
	f.enrollments = []Enrollment{
		{CourseID: "c1", StudentID: "s1", FullName: "Ada Lovelace", Email: "ada@example.edu", Status: "enrolled"},
		{CourseID: "c1", StudentID: "s2", FullName: "Blaise Pascal", Email: "blaise@example.edu", Status: "enrolled"},
		{CourseID: "c1", StudentID: "s3", FullName: "Clara Schumann", Email: "clara@example.edu", Status: "enrolled"},
	}
	f.journals["s1"] = []float64{18, 18}
	f.journals["s2"] = []float64{10}
	f.midterms["s1"] = MidtermSubmission{ID: "m1", StudentID: "s1", Score: fptr(81), Submitted: true}
	return f
}

func newTestService(f *fakeStore) *RosterService {
	return NewRosterService(f, NewCache(), zerolog.Nop(), 4)
}

func TestRosterSortedByCurrentPercent(t *testing.T) {
	f := rosterFixture()
	svc := newTestService(f)

	rows, err := svc.Roster(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	// s1 is at 90% (36/40 journals + 90/100 midterm), s2 at 50%, s3 at 0.
	if rows[0].StudentID != "s1" || rows[1].StudentID != "s2" || rows[2].StudentID != "s3" {
		t.Errorf("order = %s, %s, %s", rows[0].StudentID, rows[1].StudentID, rows[2].StudentID)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Aggregate.CurrentPercent > rows[i-1].Aggregate.CurrentPercent {
			t.Errorf("rows not descending at %d", i)
		}
	}
}

func TestRosterTieKeepsEnrollmentOrder(t *testing.T) {
	f := newFakeStore()
	f.enrollments = []Enrollment{
		{CourseID: "c1", StudentID: "s1", FullName: "First"},
		{CourseID: "c1", StudentID: "s2", FullName: "Second"},
		{CourseID: "c1", StudentID: "s3", FullName: "Third"},
	}
	svc := newTestService(f)

	rows, err := svc.Roster(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if rows[i].StudentID != want {
			t.Fatalf("tied rows reordered: got %s at %d, want %s", rows[i].StudentID, i, want)
		}
	}
}

func TestRosterDegradesFailingCategory(t *testing.T) {
	f := rosterFixture()
	f.fail["submissions:s2"] = errors.New("submissions table locked")
	svc := newTestService(f)

	rows, err := svc.Roster(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	var row RosterRow
	for _, r := range rows {
		if r.StudentID == "s2" {
			row = r
		}
	}
	if row.StudentID != "s2" {
		t.Fatal("s2 row dropped")
	}
	// Both name-matching providers read submissions, so both degrade.
	want := []Category{CategoryFinalEssay, CategoryGroupProject}
	if len(row.Unavailable) != len(want) {
		t.Fatalf("Unavailable = %v, want %v", row.Unavailable, want)
	}
	for i := range want {
		if row.Unavailable[i] != want[i] {
			t.Fatalf("Unavailable = %v, want %v", row.Unavailable, want)
		}
	}
	if row.Scores[CategoryGroupProject].Possible != 0 {
		t.Errorf("degraded category should score zero")
	}
	// The journal category was unaffected.
	if row.Scores[CategoryJournals].Earned != 10 {
		t.Errorf("journals = %v, want 10", row.Scores[CategoryJournals].Earned)
	}
}

func TestRosterCacheHitAndVersionBump(t *testing.T) {
	f := rosterFixture()
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	warm := f.readCount()

	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if got := f.readCount(); got != warm {
		t.Errorf("cached roster re-read the store: %d reads, want %d", got, warm)
	}

	f.setVersion(2)
	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if got := f.readCount(); got == warm {
		t.Error("version bump did not recompute rows")
	}
}

func TestRosterInvalidateRecomputesOneStudent(t *testing.T) {
	f := rosterFixture()
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	warm := f.readCount()

	svc.Cache().Invalidate("s1")
	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	delta := f.readCount() - warm
	if delta == 0 {
		t.Fatal("invalidated student was not recomputed")
	}
	// s1 has a participation-less profile: 5 category reads.
	if delta != 5 {
		t.Errorf("recompute touched %d reads, want 5 (one student)", delta)
	}
}

func TestRosterUnavailableRowsNotCached(t *testing.T) {
	f := rosterFixture()
	f.fail["submissions:s2"] = errors.New("transient")
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	delete(f.fail, "submissions:s2")

	rows, err := svc.Roster(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.StudentID == "s2" && len(r.Unavailable) != 0 {
			t.Error("recovered row still served from a degraded cache entry")
		}
	}
}

func TestRosterVersionErrorBypassesCache(t *testing.T) {
	f := rosterFixture()
	f.versionErr = errors.New("event log offline")
	svc := newTestService(f)
	ctx := context.Background()

	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	warm := f.readCount()
	if _, err := svc.Roster(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if got := f.readCount(); got == warm {
		t.Error("cache should be bypassed when the data version is unavailable")
	}
}

func TestGetRosterRow(t *testing.T) {
	f := rosterFixture()
	svc := newTestService(f)
	ctx := context.Background()

	row, err := svc.GetRosterRow(ctx, "c1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if row.StudentID != "s1" || row.Aggregate.LetterGrade != "A-" {
		t.Errorf("got %s %q, want s1 A-", row.StudentID, row.Aggregate.LetterGrade)
	}

	_, err = svc.GetRosterRow(ctx, "c1", "ghost")
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestFilterRows(t *testing.T) {
	rows := []RosterRow{
		{StudentID: "s1", FullName: "Ada Lovelace", Email: "ada@example.edu"},
		{StudentID: "s2", FullName: "Blaise Pascal", Email: "blaise@example.edu"},
	}
	if got := FilterRows(rows, ""); len(got) != 2 {
		t.Errorf("empty term: len = %d, want 2", len(got))
	}
	if got := FilterRows(rows, "LOVE"); len(got) != 1 || got[0].StudentID != "s1" {
		t.Errorf("name match failed: %+v", got)
	}
	if got := FilterRows(rows, "blaise@"); len(got) != 1 || got[0].StudentID != "s2" {
		t.Errorf("email match failed: %+v", got)
	}
	if got := FilterRows(rows, "zzz"); len(got) != 0 {
		t.Errorf("no match: len = %d, want 0", len(got))
	}
}
