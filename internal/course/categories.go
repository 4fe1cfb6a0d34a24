package course

// Category is one of the five independently scored components of a course
// grade.
type Category string

const (
	CategoryJournals      Category = "journals"
	CategoryGroupProject  Category = "group_project"
	CategoryMidterm       Category = "midterm"
	CategoryParticipation Category = "participation"
	CategoryFinalEssay    Category = "final_essay"
)

// Categories in display order.
var Categories = []Category{
	CategoryJournals,
	CategoryGroupProject,
	CategoryMidterm,
	CategoryParticipation,
	CategoryFinalEssay,
}

// CourseTotalPoints is the fixed denominator for grade projection.
const CourseTotalPoints = 600.0

// Max points each category contributes toward the course total.
const (
	journalsMaxPoints      = 200.0
	groupProjectMaxPoints  = 250.0
	midtermMaxPoints       = 100.0
	participationMaxPoints = 50.0
	finalEssayMaxPoints    = 50.0
)

// Normalization constants.
const (
	journalMaxScore = 20.0 // each journal is scored out of 20

	// The stored midterm score is on a 90-point basis; the roster rescales it
	// to the category's 100-point weight. The rubric workflow writes totals on
	// a 100-point basis into the same record.
	midtermRawBasis = 90.0

	participationDefaultPossible = 75.0
	participationPointsWeight    = 0.7
	participationPollWeight      = 0.3
)

// Submission-name patterns, matched case-insensitively as substrings.
var (
	groupProjectPatterns = []string{"research", "ai", "group"}
	finalEssayPatterns   = []string{"final", "reflection"}
)

func MaxPoints(c Category) float64 {
	switch c {
	case CategoryJournals:
		return journalsMaxPoints
	case CategoryGroupProject:
		return groupProjectMaxPoints
	case CategoryMidterm:
		return midtermMaxPoints
	case CategoryParticipation:
		return participationMaxPoints
	case CategoryFinalEssay:
		return finalEssayMaxPoints
	}
	return 0
}
